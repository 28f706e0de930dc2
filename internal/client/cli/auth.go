package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/linkkeeper/internal/client/guard"
	"github.com/dmitrijs2005/linkkeeper/internal/client/models"
	"github.com/dmitrijs2005/linkkeeper/internal/common"
)

var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// askDefault prompts with current shown in brackets; an empty answer keeps it.
func (a *App) askDefault(prompt, current string) (string, error) {
	if current != "" {
		prompt += " [" + current + "]"
	}
	v, err := a.ask(prompt)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

// askPassword reads a secret and returns it as a string; the raw buffer is wiped.
func (a *App) askPassword(prompt string) (string, error) {
	b, err := getPassword(a.reader, prompt, a.out)
	defer common.WipeByteArray(b)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (a *App) cmdHome(_ context.Context, _ []string) error {
	a.view.home(a.session.Snapshot())
	return nil
}

func (a *App) cmdSignIn(ctx context.Context, args []string) error {
	var (
		req models.SignIn
		err error
	)
	if len(args) > 0 {
		req.Email = args[0]
	} else if req.Email, err = a.ask("Email"); err != nil {
		return err
	}
	if req.Password, err = a.askPassword("Password"); err != nil {
		return err
	}

	if err := a.session.SignIn(ctx, req); err != nil {
		return err
	}
	if u := a.session.Snapshot().User; u != nil {
		a.view.success("Signed in as " + u.Email)
	}
	return nil
}

func (a *App) cmdSignUp(ctx context.Context, _ []string) error {
	var (
		req models.SignUp
		err error
	)
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Username", &req.Username},
		{"First name", &req.FirstName},
		{"Last name", &req.LastName},
		{"Email", &req.Email},
	}
	for _, f := range fields {
		if *f.dst, err = a.ask(f.prompt); err != nil {
			return err
		}
	}
	if req.Password, err = a.askPassword("Password"); err != nil {
		return err
	}
	if req.ConfirmPassword, err = a.askPassword("Confirm password"); err != nil {
		return err
	}

	if err := a.session.SignUp(ctx, req); err != nil {
		return err
	}
	a.view.success("Account created. Check your email for a verification code, then sign in.")
	a.nav.Go(ctx, guard.PathSignIn)
	return nil
}

func (a *App) cmdSignOut(ctx context.Context, _ []string) error {
	if !a.session.Snapshot().IsAuthenticated {
		a.view.info("You are not signed in.")
		return nil
	}
	err := a.session.SignOut(ctx)
	a.view.success("Signed out.")
	if err != nil {
		a.log.Warn(ctx, "sign out request failed", "err", err)
	}
	return nil
}

// cmdForgot requests a reset code and, if the user has it at hand, completes
// the reset in the same step.
func (a *App) cmdForgot(ctx context.Context, args []string) error {
	var (
		email string
		err   error
	)
	if len(args) > 0 {
		email = args[0]
	} else if email, err = a.ask("Email"); err != nil {
		return err
	}
	if err := a.session.ForgotPassword(ctx, email); err != nil {
		return err
	}
	a.view.success("Password reset code sent. Check your email.")

	code, err := a.ask("Reset code (leave empty to finish later)")
	if err != nil || strings.TrimSpace(code) == "" {
		return nil
	}
	pw, err := a.askPassword("New password")
	if err != nil {
		return err
	}
	confirm, err := a.askPassword("Confirm new password")
	if err != nil {
		return err
	}
	if pw != confirm {
		return common.ErrPasswordMismatch
	}

	req := models.PasswordReset{Email: email, ProvidedCode: strings.TrimSpace(code), NewPassword: pw}
	if err := a.session.ResetPassword(ctx, req); err != nil {
		return err
	}
	a.view.success("Password has been reset. You can sign in now.")
	return nil
}

func (a *App) cmdWhoAmI(_ context.Context, _ []string) error {
	a.view.whoami(a.session.Snapshot())
	return nil
}

func (a *App) cmdTheme(ctx context.Context, _ []string) error {
	t := a.session.ToggleTheme(ctx)
	a.view.success("Theme: " + string(t))
	return nil
}
