package cli

import (
	"context"
	"os"

	"github.com/dspavlov/docshelf/internal/client/api"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, authenticates against the API and
// establishes a persisted session. On success the table is loaded
// immediately so the user lands on their documents.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	payload, err := a.client.Login(ctx, api.Credentials{Email: email, Password: string(password)})
	if err != nil {
		printlnFn("Login failed:", api.UserMessage(err))
		return err
	}

	if err := a.session.Establish(ctx, payload); err != nil {
		a.log.Warn(ctx, "failed to persist session", "err", err)
	}

	printlnFn("Logged in as", payload.User.Name)
	a.view.Init(ctx)
	return a.List(ctx)
}

// Logout ends the session server-side and locally. The server call is best
// effort: an expired token must not block logging out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil && !api.IsCancelled(err) {
		a.log.Debug(ctx, "server logout failed", "err", err)
	}
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}
