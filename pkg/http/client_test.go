package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendAndParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, "3mo", r.URL.Query().Get("period"))
			_, _ = io.WriteString(w, `{"n":1}`)
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "upstream down")
		}
	}))
	defer srv.Close()

	c := NewClient(WithTimeout(5 * time.Second))
	ctx := context.Background()

	var raw []byte
	err := c.SendAndParse(ctx, &RequestOptions{
		Method:      MethodGet,
		URL:         srv.URL + "/ok",
		Headers:     map[string]string{"Accept": "application/json"},
		QueryParams: map[string][]string{"period": {"3mo"}},
	}, &raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(raw))

	var decoded struct{ N int }
	require.NoError(t, c.SendAndParse(ctx, &RequestOptions{
		Method:  MethodGet,
		URL:     srv.URL + "/ok?period=3mo",
		Headers: map[string]string{"Accept": "application/json"},
	}, &decoded))
	assert.Equal(t, 1, decoded.N)

	err = c.SendAndParse(ctx, &RequestOptions{Method: MethodGet, URL: srv.URL + "/fail"}, &raw)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, "upstream down", se.Body)
}

func TestWithHTTPClientLeavesCallerClientUntouched(t *testing.T) {
	tr := &http.Transport{}
	hc := &http.Client{Transport: tr, Timeout: time.Minute}
	c := NewClient(WithHTTPClient(hc), WithTimeout(3*time.Second))

	assert.NotSame(t, hc, c.client)
	assert.Same(t, tr, c.client.Transport)
	assert.Equal(t, 3*time.Second, c.client.Timeout)
	assert.Equal(t, time.Minute, hc.Timeout)
}

func TestWithHTTPClientDefaultClient(t *testing.T) {
	before := http.DefaultClient.Timeout
	c := NewClient(WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))

	assert.Equal(t, time.Second, c.client.Timeout)
	assert.Equal(t, before, http.DefaultClient.Timeout)
}
