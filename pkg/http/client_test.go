package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTransport struct {
	calls int
	next  http.RoundTripper
}

func (t *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.calls++
	return t.next.RoundTrip(r)
}

func TestSendAndParseDecodesOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gearvalue-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "24h", r.URL.Query().Get("timestep"))
		_, _ = w.Write([]byte(`{"data":{"2":{"high":180}}}`))
	}))
	defer srv.Close()

	rt := &countingTransport{next: http.DefaultTransport}
	c := NewClient(
		WithTransport(rt),
		WithTimeout(time.Second),
		WithUserAgent("gearvalue-test"),
		WithHeader("Accept", "application/json"),
	)

	var out struct {
		Data map[string]struct {
			High int64 `json:"high"`
		} `json:"data"`
	}
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method:      MethodGet,
		URL:         srv.URL,
		QueryParams: map[string][]string{"timestep": {"24h"}},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(180), out.Data["2"].High)
	assert.Equal(t, 1, rt.calls)
}

func TestSendAndParseRejectsNonOK(t *testing.T) {
	for _, code := range []int{http.StatusNoContent, http.StatusAccepted, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(code)
		}))

		var out map[string]interface{}
		err := NewClient().SendAndParse(context.Background(), &RequestOptions{Method: MethodGet, URL: srv.URL}, &out)
		srv.Close()

		var se *StatusError
		require.True(t, errors.As(err, &se), "status %d", code)
		assert.Equal(t, code, se.StatusCode)
		assert.Nil(t, out)
	}
}

func TestSendAndParseTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient().SendAndParse(context.Background(), &RequestOptions{Method: MethodGet, URL: url}, nil)
	require.Error(t, err)

	var se *StatusError
	assert.False(t, errors.As(err, &se))
}
