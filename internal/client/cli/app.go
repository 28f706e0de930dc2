package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/dmitrijs2005/linkkeeper/internal/client/guard"
	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
	"github.com/dmitrijs2005/linkkeeper/internal/client/repositories/preferences"
	"github.com/dmitrijs2005/linkkeeper/internal/client/services"
	"github.com/dmitrijs2005/linkkeeper/internal/logging"
)

// Deps are the collaborators an App is built from.
type Deps struct {
	Session  services.SessionStore
	Links    services.LinkStore
	Keys     services.APIKeyStore
	Resolver services.Resolver
	Prefs    services.PreferenceStore
	Logger   logging.Logger

	// ShortDomains are the selectable short-link hosts; DefaultDomain is used
	// until the user picks one.
	ShortDomains  []string
	DefaultDomain string

	// In and Out default to the process stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// App is the REPL view layer over the stores.
type App struct {
	session  services.SessionStore
	links    services.LinkStore
	keys     services.APIKeyStore
	resolver services.Resolver
	prefs    services.PreferenceStore
	nav      *guard.Navigator
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer
	view   *view

	commands map[string]command
	order    []command

	domains []string
	mu      sync.Mutex
	domain  string
	// owner identifies the user the link and key stores were filled for.
	owner       string
	unsubscribe func()
}

func NewApp(d Deps) *App {
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}

	a := &App{
		session:  d.Session,
		links:    d.Links,
		keys:     d.Keys,
		resolver: d.Resolver,
		prefs:    d.Prefs,
		log:      d.Logger.With("component", "cli"),
		reader:   bufio.NewReader(d.In),
		out:      d.Out,
		domains:  slices.Clone(d.ShortDomains),
		domain:   d.DefaultDomain,
	}
	if a.domain == "" && len(a.domains) > 0 {
		a.domain = a.domains[0]
	}
	a.nav = guard.NewNavigator(d.Session, d.Prefs, d.Logger)
	a.view = newView(d.Out, func() models.Theme { return a.session.Snapshot().Theme })
	a.registerCommands()
	return a
}

// Start restores preferences, starts the identity check in the background
// and lands on the last valid route. The returned channel closes when the
// first identity check has finished.
func (a *App) Start(ctx context.Context) <-chan struct{} {
	if a.prefs != nil {
		if v, ok, err := a.prefs.Get(ctx, preferences.KeyShortDomain); err != nil {
			a.log.Warn(ctx, "short domain preference unreadable", "err", err)
		} else if ok && slices.Contains(a.domains, v) {
			a.setDomain(v)
		}
	}

	unsubscribe := a.session.Subscribe(a.onSession)
	a.mu.Lock()
	a.unsubscribe = unsubscribe
	a.mu.Unlock()

	a.nav.Start(ctx, "")

	ready := make(chan struct{})
	go func() {
		defer close(ready)
		a.session.Init(ctx)
	}()
	return ready
}

// Run starts the app and blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.view.line("Welcome to linkkeeper (type 'help' for commands)")
	a.Start(ctx)
	a.renderCurrent(ctx)
	runREPL(ctx, a, a.reader)
}

// Close stops timers and the session subscriptions.
func (a *App) Close() {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	a.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
	a.nav.Stop()
	a.links.Close()
	a.keys.Close()
}

// onSession empties the link and key stores whenever the signed-in user
// changes or goes away, so nothing fetched for one user is shown to another.
func (a *App) onSession(s models.Session) {
	owner := ""
	if s.User != nil {
		owner = s.User.ID + "|" + s.User.Email
	}
	a.mu.Lock()
	changed := owner != a.owner
	a.owner = owner
	a.mu.Unlock()

	if changed {
		a.links.Reset()
		a.keys.Reset()
	}
}

func (a *App) currentDomain() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.domain
}

func (a *App) setDomain(d string) {
	a.mu.Lock()
	a.domain = d
	a.mu.Unlock()
}

// confirmer adapts the y/N prompt to services.Confirmer.
func (a *App) confirmer() services.Confirmer {
	return services.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
		return getConfirmation(a.reader, prompt, a.out)
	})
}
