package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
	"github.com/dmitrijs2005/linkkeeper/internal/client/services"
)

func (a *App) cmdProfile(ctx context.Context, args []string) error {
	u := a.session.Snapshot().User
	if u == nil {
		return services.ErrSignedOut
	}
	if len(args) == 0 {
		a.view.profile(*u)
		return nil
	}
	if args[0] != "edit" {
		return errUsage
	}

	var upd models.ProfileUpdate
	fields := []struct {
		prompt  string
		current string
		dst     **string
	}{
		{"First name", u.FirstName, &upd.FirstName},
		{"Last name", u.LastName, &upd.LastName},
		{"Username", u.Username, &upd.Username},
	}
	for _, f := range fields {
		v, err := a.askDefault(f.prompt, f.current)
		if err != nil {
			return err
		}
		if v != f.current {
			*f.dst = &v
		}
	}
	if upd.Empty() {
		a.view.info("Nothing to update.")
		return nil
	}

	if err := a.session.UpdateProfile(ctx, upd); err != nil {
		return err
	}
	a.view.success("Profile updated successfully!")
	if u := a.session.Snapshot().User; u != nil {
		a.view.profile(*u)
	}
	return nil
}

func (a *App) cmdPasswd(ctx context.Context, _ []string) error {
	var (
		req models.PasswordChange
		err error
	)
	if req.CurrentPassword, err = a.askPassword("Current password"); err != nil {
		return err
	}
	if req.NewPassword, err = a.askPassword("New password"); err != nil {
		return err
	}
	if req.ConfirmNewPassword, err = a.askPassword("Confirm new password"); err != nil {
		return err
	}
	if err := a.session.ChangePassword(ctx, req); err != nil {
		return err
	}
	a.view.success("Password changed successfully!")
	return nil
}

func (a *App) cmdVerify(ctx context.Context, args []string) error {
	if u := a.session.Snapshot().User; u != nil && u.Verified {
		a.view.info("Your email is already verified.")
		return nil
	}
	if len(args) == 0 {
		return errUsage
	}

	if args[0] == "send" {
		if err := a.session.SendVerification(ctx); err != nil {
			return err
		}
		a.view.success("Verification email sent. Run 'verify <code>' with the code you received.")
		return nil
	}

	if err := a.session.VerifyCode(ctx, strings.TrimSpace(args[0])); err != nil {
		return err
	}
	a.view.success("Email verified successfully!")
	return nil
}

// cmdAPIKey shows the key or runs one key action. Action outcomes are
// rendered from the store's notices.
func (a *App) cmdAPIKey(ctx context.Context, args []string) error {
	if !a.keys.Snapshot().Loaded {
		a.keys.Load(ctx)
	}

	var (
		done = true
		err  error
	)
	if len(args) > 0 {
		switch args[0] {
		case "create":
			err = a.keys.Create(ctx)
		case "regenerate":
			done, err = a.keys.Regenerate(ctx, a.confirmer())
		case "delete":
			done, err = a.keys.Delete(ctx, a.confirmer())
		default:
			return errUsage
		}
	}
	if err != nil && services.KindOf(err) != services.KindAPIKey {
		return err
	}
	if !done && err == nil {
		a.view.info("Cancelled.")
	}
	a.view.apiKey(a.keys.Snapshot())
	return nil
}
