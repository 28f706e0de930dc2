// Package guard decides which view may render for the current session and
// keeps the current route in step with session changes.
package guard

import (
	"path"
	"strings"
)

// Access is a route's authentication requirement.
type Access int

const (
	Public Access = iota
	AuthOnly
	AnonOnly
)

func (a Access) String() string {
	switch a {
	case AuthOnly:
		return "authenticated-only"
	case AnonOnly:
		return "anonymous-only"
	default:
		return "public"
	}
}

// Route is one navigable view.
type Route struct {
	Path   string
	Title  string
	Access Access
}

const (
	PathHome      = "/"
	PathDashboard = "/dashboard"
	PathProfile   = "/profile"
	PathDeveloper = "/developer"
	PathSignIn    = "/signin"
	PathSignUp    = "/signup"
	PathForgot    = "/forget-password"
	PathContact   = "/contact"
	PathBots      = "/bots"
	PathNotFound  = "/404"
)

var routes = []Route{
	{PathHome, "Home", Public},
	{PathDashboard, "Dashboard", AuthOnly},
	{PathProfile, "Profile", AuthOnly},
	{PathDeveloper, "Developer", AuthOnly},
	{PathSignIn, "Sign in", AnonOnly},
	{PathSignUp, "Sign up", AnonOnly},
	{PathForgot, "Forgot password", AnonOnly},
	{PathContact, "Contact", Public},
	{PathBots, "Bots", Public},
	{PathNotFound, "Not found", Public},
}

var byPath = func() map[string]Route {
	m := make(map[string]Route, len(routes))
	for _, r := range routes {
		m[r.Path] = r
	}
	return m
}()

// Routes returns the route table in display order.
func Routes() []Route {
	return append([]Route(nil), routes...)
}

// Normalize cleans a user-typed path: leading slash, no trailing slash,
// lower case.
func Normalize(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Lookup resolves p to a route. Unknown paths resolve to the not-found route
// with ok=false.
func Lookup(p string) (Route, bool) {
	r, ok := byPath[Normalize(p)]
	if !ok {
		return byPath[PathNotFound], false
	}
	return r, true
}
