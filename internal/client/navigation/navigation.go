// Package navigation models the client's view transitions: named routes,
// the Navigator sink that receives them, and the access rules deciding
// whether a transition is allowed for the current session.
package navigation

// RouteName identifies a view of the client.
type RouteName string

const (
	RouteDashboard RouteName = "dashboard"
	RouteLogin     RouteName = "login"
	RouteRegister  RouteName = "register"
	RouteCreate    RouteName = "create"
	RouteEdit      RouteName = "edit"
	RouteDetail    RouteName = "detail"
	RouteMyRecipes RouteName = "my-recipes"
)

// Query keys carried on redirects.
const (
	QueryMessage  = "message"
	QueryRedirect = "redirect"
)

// Notices shown to the user on forced redirects.
const (
	NoticeSessionExpired   = "Your session has expired. Please log in again."
	NoticePermissionDenied = "You do not have permission to access this resource."
)

// Route is a navigation target plus optional query parameters.
type Route struct {
	Name  RouteName
	Query map[string]string
}

// WithQuery returns a copy of r with the given key set.
func (r Route) WithQuery(key, value string) Route {
	q := make(map[string]string, len(r.Query)+1)
	for k, v := range r.Query {
		q[k] = v
	}
	q[key] = value
	return Route{Name: r.Name, Query: q}
}

// Navigator receives navigation events. The CLI renders them as prompts;
// tests record them.
type Navigator interface {
	Push(route Route)
}

// rule is the per-route access policy.
type rule struct {
	requiresAuth bool
	guestOnly    bool
}

var rules = map[RouteName]rule{
	RouteLogin:     {guestOnly: true},
	RouteRegister:  {guestOnly: true},
	RouteCreate:    {requiresAuth: true},
	RouteEdit:      {requiresAuth: true},
	RouteMyRecipes: {requiresAuth: true},
}

// Resolve applies the access rules to an intended transition and returns the
// route that should actually be pushed. Protected routes redirect
// unauthenticated visitors to login with a return-path hint; guest-only
// routes redirect authenticated users to the dashboard.
func Resolve(to Route, authenticated bool) Route {
	r := rules[to.Name]

	if r.requiresAuth && !authenticated {
		return Route{Name: RouteLogin}.WithQuery(QueryRedirect, string(to.Name))
	}
	if r.guestOnly && authenticated {
		return Route{Name: RouteDashboard}
	}
	return to
}
