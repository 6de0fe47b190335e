package trade

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrMalformedPayload marks a textual proposal that could not be parsed.
var ErrMalformedPayload = errors.New("malformed payload")

// MalformedPayloadError carries the parser or schema diagnostic.
type MalformedPayloadError struct {
	Diagnostic string
}

func (e *MalformedPayloadError) Error() string {
	return "invalid JSON: " + e.Diagnostic
}

func (e *MalformedPayloadError) Is(target error) bool { return target == ErrMalformedPayload }

const proposalSchemaURL = "tradedesk://proposal.schema.json"

const proposalSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["sides"],
  "additionalProperties": false,
  "properties": {
    "sides": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "team": {"type": "string"},
          "players_out": {"$ref": "#/definitions/tokens"},
          "players_in": {"$ref": "#/definitions/tokens"},
          "picks_out": {"$ref": "#/definitions/tokens"},
          "picks_in": {"$ref": "#/definitions/tokens"}
        }
      }
    }
  },
  "definitions": {
    "tokens": {"type": "array", "items": {"type": "string"}}
  }
}`

var compiledSchema = jsonschema.MustCompileString(proposalSchemaURL, proposalSchema)

// Encode renders p as indented JSON, the form shown in the text view.
func Encode(p Proposal) string {
	data, err := json.MarshalIndent(p.Clone(), "", "  ")
	if err != nil {
		// Proposal holds only strings; marshalling cannot fail.
		panic(fmt.Sprintf("encode proposal: %v", err))
	}
	return string(data)
}

// Decode parses text produced by Encode or typed by hand.
func Decode(text string) (Proposal, error) {
	if strings.TrimSpace(text) == "" {
		return Proposal{}, &MalformedPayloadError{Diagnostic: "empty document"}
	}

	var doc any
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Proposal{}, &MalformedPayloadError{Diagnostic: err.Error()}
	}
	if _, err := dec.Token(); err != io.EOF {
		return Proposal{}, &MalformedPayloadError{Diagnostic: "unexpected data after top-level value"}
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return Proposal{}, &MalformedPayloadError{Diagnostic: schemaDiagnostic(err)}
	}

	var p Proposal
	if err := json.NewDecoder(bytes.NewReader([]byte(text))).Decode(&p); err != nil {
		return Proposal{}, &MalformedPayloadError{Diagnostic: err.Error()}
	}
	return p.Clone(), nil
}

func schemaDiagnostic(err error) string {
	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		leaf := ve
		for len(leaf.Causes) > 0 {
			leaf = leaf.Causes[0]
		}
		loc := leaf.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return fmt.Sprintf("%s: %s", loc, leaf.Message)
	}
	return err.Error()
}
