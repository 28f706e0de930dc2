package guard

import "github.com/dmitrijs2005/linkkeeper/internal/client/models"

// State is the outcome of evaluating a route against a session.
type State int

const (
	// Unknown: the session is still loading; render a placeholder only.
	Unknown State = iota
	// Authorized: render the route.
	Authorized
	// Redirect: render nothing and go to Decision.Target.
	Redirect
)

func (s State) String() string {
	switch s {
	case Authorized:
		return "authorized"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is what the view should do for one route.
type Decision struct {
	State  State
	Target string
}

// Evaluate decides whether r may render for session s. Public routes always
// render. Guarded routes wait while the session loads, then either render
// or redirect: signed-out users go to /signin, signed-in users leave
// anonymous-only routes for /dashboard.
func Evaluate(s models.Session, r Route) Decision {
	if r.Access == Public {
		return Decision{State: Authorized}
	}
	if s.IsLoading {
		return Decision{State: Unknown}
	}

	signedIn := s.IsAuthenticated && s.User != nil && s.User.Email != ""
	switch {
	case r.Access == AuthOnly && !signedIn:
		return Decision{State: Redirect, Target: PathSignIn}
	case r.Access == AnonOnly && signedIn:
		return Decision{State: Redirect, Target: PathDashboard}
	default:
		return Decision{State: Authorized}
	}
}
