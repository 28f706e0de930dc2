package cli

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/linkkeeper/internal/client/guard"
	"github.com/dmitrijs2005/linkkeeper/internal/client/repositories/preferences"
)

func (a *App) cmdGo(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	a.nav.Go(ctx, args[0])
	a.renderCurrent(ctx)
	return nil
}

func (a *App) cmdBack(ctx context.Context, _ []string) error {
	a.nav.Back(ctx)
	a.renderCurrent(ctx)
	return nil
}

// cmdOpen resolves a slug and prints its target. Unknown slugs land on the
// not-found page.
func (a *App) cmdOpen(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	target, err := a.resolver.Resolve(ctx, args[0])
	if err != nil {
		a.view.error(err.Error())
		a.nav.Go(ctx, guard.PathNotFound)
		a.renderCurrent(ctx)
		return nil
	}
	a.view.field("Short URL", "https://"+a.currentDomain()+"/"+args[0])
	a.view.field("Redirects to", target)
	return nil
}

func (a *App) cmdDomain(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.view.domains(a.currentDomain(), a.domains)
		return nil
	}
	d := args[0]
	if !slices.Contains(a.domains, d) {
		a.view.error("Unknown short domain " + d + ".")
		a.view.domains(a.currentDomain(), a.domains)
		return nil
	}
	a.setDomain(d)
	if a.prefs != nil {
		if err := a.prefs.Set(ctx, preferences.KeyShortDomain, d); err != nil {
			a.log.Warn(ctx, "short domain not persisted", "err", err)
		}
	}
	a.view.success("Short links now use " + d)
	return nil
}
