package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/linkkeeper/internal/client/services"
)

func (a *App) showLinks() {
	verified := false
	if u := a.session.Snapshot().User; u != nil {
		verified = u.Verified
	}
	a.view.links(a.links.Snapshot(), a.links.PageItems(), a.currentDomain(), verified)
}

// linkResult renders the list after a failed mutation. Server-side failures
// are shown by the list's error banner; anything else goes back to exec.
func (a *App) linkResult(err error) error {
	switch services.KindOf(err) {
	case services.KindFetchFailed, services.KindCreateRejected,
		services.KindUpdateRejected, services.KindDeleteRejected:
		a.showLinks()
		return nil
	}
	return err
}

func (a *App) ensureLinks(ctx context.Context) {
	if !a.links.Snapshot().Loaded {
		_ = a.links.FetchAll(ctx)
	}
}

func (a *App) cmdLinks(ctx context.Context, args []string) error {
	page := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errUsage
		}
		page = n
	}

	_ = a.links.FetchAll(ctx)
	if page > 0 {
		a.links.SetPage(page)
	}
	a.showLinks()
	return nil
}

func (a *App) cmdNext(ctx context.Context, _ []string) error {
	return a.turnPage(ctx, 1)
}

func (a *App) cmdPrev(ctx context.Context, _ []string) error {
	return a.turnPage(ctx, -1)
}

func (a *App) turnPage(ctx context.Context, delta int) error {
	a.ensureLinks(ctx)
	cur := a.links.Snapshot().Page
	if a.links.SetPage(cur+delta) == cur {
		if delta > 0 {
			a.view.info("Already on the last page.")
		} else {
			a.view.info("Already on the first page.")
		}
	}
	a.showLinks()
	return nil
}

func (a *App) cmdNew(ctx context.Context, _ []string) error {
	d := a.links.OpenCreate()

	full, err := a.askDefault("Full URL", d.FullURL)
	if err != nil {
		return err
	}
	if full == "" {
		a.links.CloseCreate()
		a.view.info("Cancelled.")
		return nil
	}
	d.FullURL = full
	if d.ShortURL, err = a.askDefault("Custom alias (optional)", d.ShortURL); err != nil {
		return err
	}

	if err := a.links.Create(ctx, d); err != nil {
		return a.linkResult(err)
	}
	a.view.success("Short URL created successfully!")
	a.showLinks()
	return nil
}

func (a *App) cmdEdit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	id, err := a.resolveRef(ctx, args[0])
	if err != nil {
		return err
	}
	d, err := a.links.BeginEdit(id)
	if err != nil {
		return err
	}

	if d.FullURL, err = a.askDefault("Full URL", d.FullURL); err != nil {
		a.links.CancelEdit()
		return err
	}
	if d.ShortURL, err = a.askDefault("Alias", d.ShortURL); err != nil {
		a.links.CancelEdit()
		return err
	}
	ok, err := getConfirmation(a.reader, "Save changes?", a.out)
	if err != nil || !ok {
		a.links.CancelEdit()
		a.view.info("Edit cancelled.")
		return nil
	}

	if err := a.links.SaveEdit(ctx, id, d.LinkDraft); err != nil {
		return a.linkResult(err)
	}
	a.view.success("Short URL updated successfully!")
	a.showLinks()
	return nil
}

func (a *App) cmdDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	id, err := a.resolveRef(ctx, args[0])
	if err != nil {
		return err
	}

	removed, err := a.links.Remove(ctx, id, a.confirmer())
	if err != nil {
		return a.linkResult(err)
	}
	if !removed {
		a.view.info("Cancelled.")
		return nil
	}
	a.view.success("Short URL deleted successfully!")
	a.showLinks()
	return nil
}

// resolveRef maps a list row number, a link id or an alias to a link id.
func (a *App) resolveRef(ctx context.Context, ref string) (string, error) {
	a.ensureLinks(ctx)
	items := a.links.Snapshot().Items

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(items) {
		return items[n-1].ID, nil
	}
	for _, l := range items {
		if l.ID == ref || l.Short == ref {
			return l.ID, nil
		}
	}
	return "", fmt.Errorf("no short URL matches %q: %w", ref, services.ErrUnknownLink)
}
