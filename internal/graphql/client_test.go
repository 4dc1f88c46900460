package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "filmpicker/internal/errors"
)

func newServer(t *testing.T, handler func(t *testing.T, req request, w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req request
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		handler(t, req, w)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient(t *testing.T) {
	c := NewClient(" http://example.test/graphql ")
	assert.Equal(t, "http://example.test/graphql", c.Endpoint())
	require.NotNil(t, c.httpClient)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}

func TestNewClientWithOptions(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	c := NewClient("http://x", WithHTTPClient(custom), WithTimeout(3*time.Second), WithUserAgent("test-agent"))
	assert.Same(t, custom, c.httpClient)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	assert.Equal(t, "test-agent", c.userAgent)
}

func TestQueryDecodesData(t *testing.T) {
	srv := newServer(t, func(t *testing.T, req request, w http.ResponseWriter) {
		assert.Equal(t, `{films(search: "%sta%", limit: 20) {id, title}}`, req.Query)
		_, _ = w.Write([]byte(`{"data":{"films":[{"id":"1","title":"Star Wars"}]}}`))
	})

	var out struct {
		Films []struct {
			Title string `json:"title"`
		} `json:"films"`
	}
	err := NewClient(srv.URL).Query(context.Background(), `{films(search: "%sta%", limit: 20) {id, title}}`, &out)
	require.NoError(t, err)
	require.Len(t, out.Films, 1)
	assert.Equal(t, "Star Wars", out.Films[0].Title)
}

func TestQueryNilOutChecksSuccessOnly(t *testing.T) {
	srv := newServer(t, func(t *testing.T, req request, w http.ResponseWriter) {
		assert.Equal(t, "{ping}", req.Query)
		_, _ = w.Write([]byte(`{"data":null}`))
	})
	err := NewClient(srv.URL).Query(context.Background(), "{ping}", nil)
	require.NoError(t, err)
}

func TestQueryErrorEnvelope(t *testing.T) {
	srv := newServer(t, func(t *testing.T, _ request, w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Cannot query field \"flims\""},{"message":"second"}]}`))
	})
	err := NewClient(srv.URL).Query(context.Background(), "{flims}", &struct{}{})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeGraphQL))
	assert.Contains(t, err.Error(), `Cannot query field "flims"`)
	assert.Contains(t, err.Error(), "second")
}

func TestQueryHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Query(context.Background(), "{films}", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeHTTPStatus, apperrors.CodeOf(err))
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestQueryMalformedJSON(t *testing.T) {
	srv := newServer(t, func(t *testing.T, _ request, w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"data":`))
	})
	err := NewClient(srv.URL).Query(context.Background(), "{films}", &struct{}{})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeDecode))
}

func TestQueryMissingData(t *testing.T) {
	srv := newServer(t, func(t *testing.T, _ request, w http.ResponseWriter) {
		_, _ = w.Write([]byte(`{"data":null}`))
	})
	err := NewClient(srv.URL).Query(context.Background(), "{films}", &struct{}{})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeDecode))
}

func TestQueryNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url).Query(context.Background(), "{films}", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNetwork, apperrors.CodeOf(err))
}

func TestQueryCancelledContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(srv.URL).Query(ctx, "{films}", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "cancellation should stay visible through the wrapper: %v", err)
}
