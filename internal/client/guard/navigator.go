package guard

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
	"github.com/dmitrijs2005/linkkeeper/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/linkkeeper/internal/logging"
)

// maxRedirects bounds redirect chains; the table never needs more than one hop.
const maxRedirects = 4

// SessionSource is what the navigator needs from the session store.
type SessionSource interface {
	Snapshot() models.Session
	Subscribe(fn func(models.Session)) (unsubscribe func())
}

// RouteStore persists the last valid route.
type RouteStore interface {
	Get(ctx context.Context, key preferences.Key) (string, bool, error)
	Set(ctx context.Context, key preferences.Key, value string) error
}

// Navigator holds the current route and re-evaluates it on every session
// change, following redirects. Every route it settles on other than /404 is
// recorded as the last valid route.
type Navigator struct {
	session SessionSource
	store   RouteStore
	log     logging.Logger

	mu          sync.Mutex
	ctx         context.Context
	current     Route
	decision    Decision
	lastValid   string
	unsubscribe func()
}

func NewNavigator(session SessionSource, store RouteStore, log logging.Logger) *Navigator {
	if log == nil {
		log = logging.Nop()
	}
	return &Navigator{
		session:   session,
		store:     store,
		log:       log.With("component", "navigator"),
		ctx:       context.Background(),
		current:   byPath[PathHome],
		lastValid: PathHome,
	}
}

// Start loads the persisted last valid route, subscribes to the session and
// navigates to initial. An empty initial means the last valid route.
func (n *Navigator) Start(ctx context.Context, initial string) Decision {
	n.mu.Lock()
	n.ctx = context.WithoutCancel(ctx)
	n.mu.Unlock()

	if n.store != nil {
		v, ok, err := n.store.Get(ctx, preferences.KeyLastValidRoute)
		switch {
		case err != nil:
			n.log.Warn(ctx, "last valid route unreadable", "err", err)
		case ok && v != "":
			if r, known := Lookup(v); known && r.Path != PathNotFound {
				n.mu.Lock()
				n.lastValid = r.Path
				n.mu.Unlock()
			}
		}
	}

	if initial == "" {
		initial = n.LastValid()
	}

	unsubscribe := n.session.Subscribe(func(s models.Session) { n.reevaluate(s) })
	n.mu.Lock()
	n.unsubscribe = unsubscribe
	n.mu.Unlock()

	return n.Go(ctx, initial)
}

// Stop unsubscribes from the session.
func (n *Navigator) Stop() {
	n.mu.Lock()
	unsubscribe := n.unsubscribe
	n.unsubscribe = nil
	n.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// Go navigates to p. Unknown paths land on /404.
func (n *Navigator) Go(ctx context.Context, p string) Decision {
	r, _ := Lookup(p)
	n.mu.Lock()
	n.current = r
	n.mu.Unlock()
	return n.settle(ctx, n.session.Snapshot())
}

// Back navigates to the last valid route.
func (n *Navigator) Back(ctx context.Context) Decision {
	return n.Go(ctx, n.LastValid())
}

// Current returns the current route and its decision.
func (n *Navigator) Current() (Route, Decision) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.decision
}

func (n *Navigator) LastValid() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastValid
}

func (n *Navigator) reevaluate(s models.Session) {
	n.mu.Lock()
	ctx := n.ctx
	n.mu.Unlock()
	n.settle(ctx, s)
}

// settle evaluates the current route for s and follows redirects.
func (n *Navigator) settle(ctx context.Context, s models.Session) Decision {
	n.mu.Lock()
	r := n.current
	n.mu.Unlock()

	d := Evaluate(s, r)
	for i := 0; d.State == Redirect && i < maxRedirects; i++ {
		n.log.Debug(ctx, "redirect", "from", r.Path, "to", d.Target)
		r, _ = Lookup(d.Target)
		d = Evaluate(s, r)
	}

	n.mu.Lock()
	n.current, n.decision = r, d
	record := r.Path != PathNotFound && r.Path != n.lastValid
	if record {
		n.lastValid = r.Path
	}
	n.mu.Unlock()

	if record && n.store != nil {
		if err := n.store.Set(ctx, preferences.KeyLastValidRoute, r.Path); err != nil {
			n.log.Warn(ctx, "last valid route not saved", "err", err)
		}
	}
	return d
}
