package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_TransformsRunInRegistrationOrder(t *testing.T) {
	p := NewPipeline()
	p.Use(func(req *http.Request) { req.Header.Set("X-Stage", "first") })
	p.Use(func(req *http.Request) { req.Header.Set("X-Stage", "second") })

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	p.apply(req)

	assert.Equal(t, "second", req.Header.Get("X-Stage"))
}

func TestPipeline_AllFailureHandlersRun(t *testing.T) {
	var calls []string
	p := NewPipeline()
	p.OnFailure(func(resp *http.Response) { calls = append(calls, "a") })
	p.OnFailure(func(resp *http.Response) { calls = append(calls, "b") })

	p.handleFailure(&http.Response{StatusCode: http.StatusInternalServerError})
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestBearerToken_SkipsEmptyCredential(t *testing.T) {
	transform := BearerToken(func() string { return "" })
	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	transform(req)
	assert.Empty(t, req.Header.Get("Authorization"))

	transform = BearerToken(func() string { return "tok" })
	transform(req)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	transform := RequestID()

	a := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	b := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	transform(a)
	transform(b)

	require.NotEmpty(t, a.Header.Get("X-Request-Id"))
	assert.NotEqual(t, a.Header.Get("X-Request-Id"), b.Header.Get("X-Request-Id"))
}
