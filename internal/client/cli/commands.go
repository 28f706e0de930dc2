package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linkkeeper/internal/client/guard"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errUsage          = errors.New("usage")
)

// command is one REPL verb. A command with a route only runs when the
// navigator authorizes that route; renders marks commands that draw the
// final route themselves.
type command struct {
	name    string
	usage   string
	summary string
	route   string
	renders bool
	run     func(ctx context.Context, args []string) error
}

func (a *App) registerCommands() {
	a.order = []command{
		{name: "home", usage: "home", summary: "Home page", route: guard.PathHome, run: a.cmdHome},
		{name: "signin", usage: "signin [email]", summary: "Sign in", route: guard.PathSignIn, run: a.cmdSignIn},
		{name: "signup", usage: "signup", summary: "Create an account", route: guard.PathSignUp, run: a.cmdSignUp},
		{name: "forgot", usage: "forgot [email]", summary: "Reset a forgotten password", route: guard.PathForgot, run: a.cmdForgot},
		{name: "signout", usage: "signout", summary: "Sign out", run: a.cmdSignOut},
		{name: "whoami", usage: "whoami", summary: "Show the session", run: a.cmdWhoAmI},
		{name: "profile", usage: "profile [edit]", summary: "Show or edit your profile", route: guard.PathProfile, run: a.cmdProfile},
		{name: "passwd", usage: "passwd", summary: "Change your password", route: guard.PathProfile, run: a.cmdPasswd},
		{name: "verify", usage: "verify send | verify <code>", summary: "Verify your email", route: guard.PathProfile, run: a.cmdVerify},
		{name: "links", usage: "links [page]", summary: "List your short URLs", route: guard.PathDashboard, run: a.cmdLinks},
		{name: "next", usage: "next", summary: "Next page of links", route: guard.PathDashboard, run: a.cmdNext},
		{name: "prev", usage: "prev", summary: "Previous page of links", route: guard.PathDashboard, run: a.cmdPrev},
		{name: "new", usage: "new", summary: "Create a short URL", route: guard.PathDashboard, run: a.cmdNew},
		{name: "edit", usage: "edit <n|id|alias>", summary: "Edit a short URL", route: guard.PathDashboard, run: a.cmdEdit},
		{name: "delete", usage: "delete <n|id|alias>", summary: "Delete a short URL", route: guard.PathDashboard, run: a.cmdDelete},
		{name: "apikey", usage: "apikey [create|regenerate|delete]", summary: "Manage your API key", route: guard.PathDeveloper, run: a.cmdAPIKey},
		{name: "open", usage: "open <slug>", summary: "Resolve a short URL", renders: true, run: a.cmdOpen},
		{name: "domain", usage: "domain [name]", summary: "Show or pick the short domain", run: a.cmdDomain},
		{name: "theme", usage: "theme", summary: "Toggle light/dark theme", run: a.cmdTheme},
		{name: "go", usage: "go <path>", summary: "Navigate to a page", renders: true, run: a.cmdGo},
		{name: "back", usage: "back", summary: "Return to the last valid page", renders: true, run: a.cmdBack},
	}
	a.commands = make(map[string]command, len(a.order))
	for _, c := range a.order {
		a.commands[c.name] = c
	}
}

// exec runs one command. Routed commands first navigate; if the session is
// still loading or the route redirects elsewhere, the command does not run.
func (a *App) exec(ctx context.Context, name string, args []string) error {
	c, ok := a.commands[name]
	if !ok {
		return errUnknownCommand
	}
	if c.route != "" && !a.enter(ctx, c.route) {
		return nil
	}

	before, _ := a.nav.Current()
	err := c.run(ctx, args)
	if errors.Is(err, errUsage) {
		a.view.info("Usage: %s", c.usage)
	} else if err != nil {
		a.showError(err)
	}

	if after, d := a.nav.Current(); after.Path != before.Path && !c.renders {
		a.render(ctx, after, d)
	}
	return err
}

// enter navigates to route and reports whether a command bound to it may run.
func (a *App) enter(ctx context.Context, route string) bool {
	d := a.nav.Go(ctx, route)
	r, _ := a.nav.Current()
	switch {
	case d.State == guard.Unknown:
		a.view.header(r)
		a.view.loading()
		return false
	case r.Path != route:
		a.render(ctx, r, d)
		return false
	}
	return true
}

func (a *App) prompt() string {
	s := a.session.Snapshot()
	r, _ := a.nav.Current()
	who := "guest"
	switch {
	case s.IsLoading:
		who = "..."
	case s.User != nil:
		who = s.User.Email
	}
	return fmt.Sprintf("lk (%s) %s>", who, r.Path)
}

func (a *App) help() {
	a.view.help(a.order)
	a.view.info("%-28s%s", "help", "Show this help")
	a.view.info("%-28s%s", "exit | quit", "Leave the program")
}

func (a *App) showError(err error) {
	a.view.error(err.Error())
}

func (a *App) renderCurrent(ctx context.Context) {
	r, d := a.nav.Current()
	a.render(ctx, r, d)
}

// render draws route r for decision d.
func (a *App) render(ctx context.Context, r guard.Route, d guard.Decision) {
	a.view.header(r)
	if d.State == guard.Unknown {
		a.view.loading()
		return
	}

	switch r.Path {
	case guard.PathHome:
		a.view.home(a.session.Snapshot())
	case guard.PathDashboard:
		if !a.links.Snapshot().Loaded {
			_ = a.links.FetchAll(ctx)
		}
		a.showLinks()
	case guard.PathProfile:
		if u := a.session.Snapshot().User; u != nil {
			a.view.profile(*u)
		}
	case guard.PathDeveloper:
		a.keys.Load(ctx)
		a.view.apiKey(a.keys.Snapshot())
	case guard.PathSignIn:
		a.view.line("Type 'signin' to sign in, 'signup' to register or 'forgot' to reset your password.")
	case guard.PathSignUp:
		a.view.line("Type 'signup' to create an account.")
	case guard.PathForgot:
		a.view.line("Type 'forgot' to receive a reset code by email.")
	case guard.PathContact:
		a.view.line("The contact form is only available on the website.")
	case guard.PathBots:
		a.view.line("Bot integrations are configured on the website.")
	case guard.PathNotFound:
		a.view.notFound(a.nav.LastValid())
	}
}
