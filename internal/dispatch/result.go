package dispatch

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/jask/tradedesk/internal/api"
)

// Result is a settled response body. It is one of RawText, Validated,
// Evaluated or Unknown.
type Result interface{ result() }

// RawText is a body that was not JSON, or was a bare JSON string.
type RawText string

// Validated is a JSON reply to a validate request.
type Validated struct {
	Legality api.Legality
	Doc      any
}

// Evaluated is a JSON reply to an evaluate request.
type Evaluated struct {
	Evaluation api.Evaluation
	Doc        any
}

// Unknown is JSON that does not match the shape expected for its mode.
type Unknown struct {
	Doc any
}

func (RawText) result()   {}
func (Validated) result() {}
func (Evaluated) result() {}
func (Unknown) result()   {}

// Classify turns a response body into a Result. Bodies that do not parse are
// kept as text; a non-JSON reply is never an error.
func Classify(mode Mode, body string) Result {
	if !json.Valid([]byte(body)) {
		return RawText(body)
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return RawText(body)
	}
	if s, ok := doc.(string); ok {
		return RawText(s)
	}
	if _, ok := doc.(map[string]any); !ok {
		return Unknown{Doc: doc}
	}

	switch mode {
	case Validate:
		var l api.Legality
		if err := json.Unmarshal([]byte(body), &l); err != nil {
			return Unknown{Doc: doc}
		}
		return Validated{Legality: l, Doc: doc}
	case Evaluate:
		var e api.Evaluation
		if err := json.Unmarshal([]byte(body), &e); err != nil {
			return Unknown{Doc: doc}
		}
		return Evaluated{Evaluation: e, Doc: doc}
	default:
		return Unknown{Doc: doc}
	}
}
