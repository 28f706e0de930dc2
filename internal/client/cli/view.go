package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/linkkeeper/internal/client/guard"
	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
	"github.com/dmitrijs2005/linkkeeper/internal/client/services"
)

// palette is the set of styles for one theme.
type palette struct {
	title  lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	accent lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
}

func newPalette(r *lipgloss.Renderer, theme models.Theme) palette {
	fg, accent, muted := lipgloss.Color("#1e3a8a"), lipgloss.Color("#2563eb"), lipgloss.Color("#6b7280")
	okc, errc, warnc := lipgloss.Color("#15803d"), lipgloss.Color("#dc2626"), lipgloss.Color("#b45309")
	if theme == models.ThemeDark {
		fg, accent, muted = lipgloss.Color("#dbeafe"), lipgloss.Color("#60a5fa"), lipgloss.Color("#9ca3af")
		okc, errc, warnc = lipgloss.Color("#4ade80"), lipgloss.Color("#f87171"), lipgloss.Color("#fbbf24")
	}
	return palette{
		title:  r.NewStyle().Bold(true).Foreground(fg),
		label:  r.NewStyle().Bold(true).Foreground(muted),
		muted:  r.NewStyle().Foreground(muted),
		accent: r.NewStyle().Foreground(accent).Underline(true),
		ok:     r.NewStyle().Foreground(okc),
		err:    r.NewStyle().Bold(true).Foreground(errc),
		warn:   r.NewStyle().Foreground(warnc),
	}
}

// view renders store state to a writer with the palette of the current theme.
type view struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	theme    func() models.Theme
}

func newView(out io.Writer, theme func() models.Theme) *view {
	return &view{out: out, renderer: lipgloss.NewRenderer(out), theme: theme}
}

func (v *view) p() palette {
	return newPalette(v.renderer, v.theme())
}

func (v *view) line(s string) {
	fmt.Fprintln(v.out, s)
}

func (v *view) info(format string, args ...any) {
	v.line(fmt.Sprintf(format, args...))
}

func (v *view) success(msg string) {
	v.line(v.p().ok.Render(msg))
}

func (v *view) error(msg string) {
	v.line(v.p().err.Render("Error: " + msg))
}

func (v *view) loading() {
	v.line(v.p().muted.Render("Loading..."))
}

func (v *view) header(r guard.Route) {
	v.line(v.p().title.Render(r.Title) + " " + v.p().muted.Render(r.Path))
}

func (v *view) field(label, value string) {
	p := v.p()
	v.line(p.label.Width(12).Render(label) + value)
}

func (v *view) home(s models.Session) {
	p := v.p()
	v.line(p.title.Render("linkkeeper") + p.muted.Render(" - short links from your terminal"))
	switch {
	case s.IsLoading:
		v.line(p.muted.Render("Checking your session..."))
	case s.IsAuthenticated && s.User != nil:
		v.info("Welcome back, %s. Type 'links' to see your short URLs.", s.User.DisplayName())
	default:
		v.line("Type 'signin' or 'signup' to get started, 'help' for all commands.")
	}
}

func (v *view) whoami(s models.Session) {
	switch {
	case s.IsLoading:
		v.loading()
	case s.User == nil:
		v.line("Not signed in.")
	default:
		v.profile(*s.User)
	}
	v.field("Theme", string(s.Theme))
}

func (v *view) profile(u models.User) {
	p := v.p()
	v.field("Name", strings.TrimSpace(u.FirstName+" "+u.LastName))
	v.field("Username", u.Username)
	v.field("Email", u.Email)
	if u.Verified {
		v.field("Verified", p.ok.Render("yes"))
	} else {
		v.field("Verified", p.warn.Render("no")+p.muted.Render(" (run 'verify send')"))
	}
	if !u.CreatedAt.IsZero() {
		v.field("Member since", u.CreatedAt.Format("2006-01-02"))
	}
}

func (v *view) links(st services.LinkState, items []models.ShortLink, domain string, verified bool) {
	p := v.p()
	if !verified {
		v.line(p.warn.Render("Your email is not verified. Some features may be limited until you run 'verify send'."))
	}
	if st.Err != nil {
		v.error(st.Err.Message)
	}
	if st.Loading && !st.Loaded {
		v.loading()
		return
	}
	if len(st.Items) == 0 {
		v.line(p.muted.Render("No short URLs yet. Create one with 'new'."))
		return
	}

	offset := (st.Page - 1) * st.PageSize
	for i, l := range items {
		marker := "  "
		if st.EditDraft != nil && st.EditDraft.ID == l.ID {
			marker = p.warn.Render("* ")
		}
		v.line(fmt.Sprintf("%s%s %s %s %s",
			marker,
			p.muted.Width(4).Render(fmt.Sprintf("%d.", offset+i+1)),
			p.accent.Render(l.URL(domain)),
			p.muted.Render("->"),
			l.Full,
		))
		v.line(p.muted.Render(fmt.Sprintf("       %d clicks  id %s", l.Clicks, l.ID)))
	}
	v.line(p.muted.Render(fmt.Sprintf("Page %d of %d (%d links)", st.Page, st.PageCount, len(st.Items))))
}

func (v *view) apiKey(st services.APIKeyState) {
	p := v.p()
	switch {
	case st.Loading:
		v.loading()
	case st.Key == "":
		v.line("You have no API key. Create one with 'apikey create'.")
	default:
		v.field("API key", p.accent.Render(st.Key))
		v.line(p.muted.Render("Send it as ?apiKey=<key> on API requests."))
	}
	if st.Success != "" {
		v.success(st.Success)
	}
	if st.Err != nil {
		v.error(st.Err.Message)
	}
}

func (v *view) notFound(lastValid string) {
	p := v.p()
	v.line(p.title.Render("404"))
	v.line("Sorry, the page you are looking for does not exist.")
	v.line(p.muted.Render(fmt.Sprintf("Type 'back' to return to %s.", lastValid)))
}

func (v *view) domains(current string, all []string) {
	p := v.p()
	for _, d := range all {
		if d == current {
			v.line(p.ok.Render("* " + d))
		} else {
			v.line("  " + d)
		}
	}
}

func (v *view) help(cmds []command) {
	p := v.p()
	v.line(p.title.Render("Commands"))
	for _, c := range cmds {
		v.line(p.label.Width(28).Render(c.usage) + c.summary)
	}
}
