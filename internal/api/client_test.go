package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/tradedesk/internal/trade"
)

func TestSubmitPostsJSON(t *testing.T) {
	t.Parallel()

	type captured struct {
		path, contentType, requestID string
		body                         trade.Proposal
	}
	seen := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		c := captured{path: r.URL.Path, contentType: r.Header.Get("Content-Type"), requestID: r.Header.Get("X-Request-ID")}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &c.body)
		seen <- c
		_, _ = w.Write([]byte(`{"legal":true,"issues":[]}`))
	}))
	t.Cleanup(srv.Close)

	p := trade.DefaultPresets()[1].Proposal
	c := NewClient(srv.URL+"/", 0)
	resp, err := c.Submit(context.Background(), ValidatePath, p, "req-1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.JSONEq(t, `{"legal":true,"issues":[]}`, resp.Body)

	got := <-seen
	require.Equal(t, "/trade/validate", got.path)
	require.Equal(t, "application/json", got.contentType)
	require.Equal(t, "req-1", got.requestID)
	require.True(t, got.body.Equal(p))
}

func TestSubmitReturnsNonJSONBodies(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Internal Server Error"))
	}))
	t.Cleanup(srv.Close)

	resp, err := NewClient(srv.URL, 0).Submit(context.Background(), EvaluatePath, trade.NewProposal(2), "")
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.Status)
	require.Equal(t, "Internal Server Error", resp.Body)
}

func TestSubmitTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 0).Submit(context.Background(), ValidatePath, trade.NewProposal(2), "")
	require.Error(t, err)

	_, err = NewClient("", 0).Submit(context.Background(), ValidatePath, trade.NewProposal(2), "")
	require.ErrorIs(t, err, ErrNoBaseURL)
}

func TestSubmitHonoursTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	_, err := NewClient(srv.URL, 50*time.Millisecond).Submit(context.Background(), ValidatePath, trade.NewProposal(2), "")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSearchPlayersAcceptsObjectsAndStrings(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/search", r.URL.Path)
		assert.Equal(t, "LeB", r.URL.Query().Get("q"))
		assert.Equal(t, "8", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"name":"LeBron James","team":"LAL"},"Bronny James"]`))
	}))
	t.Cleanup(srv.Close)

	got, err := NewClient(srv.URL, 0).SearchPlayers(context.Background(), "LeB", 8)
	require.NoError(t, err)
	require.Equal(t, []Player{{Name: "LeBron James", Team: "LAL"}, {Name: "Bronny James"}}, got)
	require.Equal(t, "LeBron James · LAL", got[0].Label())
	require.Equal(t, "Bronny James", got[1].Label())
}

func TestSearchPlayersErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "html" {
			_, _ = w.Write([]byte("<html>nope</html>"))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 0)
	_, err := c.SearchPlayers(context.Background(), "html", 8)
	require.ErrorContains(t, err, "decode players")

	_, err = c.SearchPlayers(context.Background(), "x", 8)
	require.ErrorContains(t, err, "status 502")
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(ok.Close)
	require.NoError(t, NewClient(ok.URL, 0).Health(context.Background()))

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": false}`))
	}))
	t.Cleanup(bad.Close)
	require.Error(t, NewClient(bad.URL, 0).Health(context.Background()))
}

func TestWithHTTPClientOverTLS(t *testing.T) {
	t.Parallel()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"legal":false,"issues":[]}`))
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, 0).Submit(context.Background(), ValidatePath, trade.NewProposal(2), "")
	require.Error(t, err, "the default client does not trust the test certificate")

	resp, err := NewClient(srv.URL, 0).WithHTTPClient(srv.Client()).Submit(context.Background(), ValidatePath, trade.NewProposal(2), "")
	require.NoError(t, err)
	require.JSONEq(t, `{"legal":false,"issues":[]}`, resp.Body)
}
