package client

import (
	"net/http"

	"github.com/dmitrijs2005/recipemanager/internal/client/navigation"
	"github.com/google/uuid"
)

// RequestTransform mutates an outbound request before it is sent.
type RequestTransform func(req *http.Request)

// ResponseHandler reacts to a failed (non-2xx) response. Handlers run once
// per failing response, after the body has been drained by the transport.
type ResponseHandler func(resp *http.Response)

// Pipeline is the ordered set of request transforms and failure handlers
// applied to every call the RESTClient issues. It has no state of its own;
// stages are registered once at process start.
type Pipeline struct {
	transforms []RequestTransform
	handlers   []ResponseHandler
}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Use appends a request transform. Transforms run in registration order.
func (p *Pipeline) Use(t RequestTransform) {
	p.transforms = append(p.transforms, t)
}

// OnFailure appends a handler invoked for every failing response.
func (p *Pipeline) OnFailure(h ResponseHandler) {
	p.handlers = append(p.handlers, h)
}

func (p *Pipeline) apply(req *http.Request) {
	for _, t := range p.transforms {
		t(req)
	}
}

func (p *Pipeline) handleFailure(resp *http.Response) {
	for _, h := range p.handlers {
		h(resp)
	}
}

// RequestID stamps each outbound request with a fresh X-Request-Id.
func RequestID() RequestTransform {
	return func(req *http.Request) {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
}

// BearerToken attaches the current credential as an Authorization header.
// Requests proceed unmodified while no credential exists, so the auth
// endpoints themselves pass through untouched.
func BearerToken(source func() string) RequestTransform {
	return func(req *http.Request) {
		if token := source(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
}

// SessionTerminator is the slice of the session manager the interceptor
// needs: forced, unconditional session teardown.
type SessionTerminator interface {
	EndSession()
}

// AuthFailure returns the cross-cutting handler for authorization failures:
//
//   - 401: the credential is no longer valid; the session is terminated and
//     the user is sent to the login view with an expiry notice and a hint of
//     where they were.
//   - 403: the session stays intact; the user is sent to the dashboard with
//     a permission notice.
//
// All other statuses are left for the caller to deal with.
func AuthFailure(sessions SessionTerminator, nav navigation.Navigator) ResponseHandler {
	return func(resp *http.Response) {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			sessions.EndSession()
			route := navigation.Route{Name: navigation.RouteLogin}.
				WithQuery(navigation.QueryMessage, navigation.NoticeSessionExpired)
			if resp.Request != nil && resp.Request.URL != nil {
				route = route.WithQuery(navigation.QueryRedirect, resp.Request.URL.Path)
			}
			nav.Push(route)

		case http.StatusForbidden:
			nav.Push(navigation.Route{Name: navigation.RouteDashboard}.
				WithQuery(navigation.QueryMessage, navigation.NoticePermissionDenied))
		}
	}
}
