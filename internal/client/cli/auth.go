package cli

import (
	"context"
	"fmt"
	"os"
)

// Register prompts for credentials and a manifesto, creates the account and
// logs the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	manifesto, err := GetMultiline(a.reader, "Write your manifesto", os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.api.Register(ctx, username, password, manifesto)
	if err != nil {
		printlnFn("Registration failed:", err)
		return err
	}

	a.profile = res.Profile
	if err := saveSession(res.Token, res.Profile.ID); err != nil {
		printlnFn("Warning: could not save session:", err)
	}

	printlnFn(fmt.Sprintf("Welcome, %s. The Oracle judged you a %s.",
		res.Profile.DisplayName, res.Profile.Stats.Class))
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	res, err := a.api.Login(ctx, username, password)
	if err != nil {
		printlnFn("Login failed:", err)
		return err
	}

	a.profile = res.Profile
	if err := saveSession(res.Token, res.Profile.ID); err != nil {
		printlnFn("Warning: could not save session:", err)
	}

	printlnFn(fmt.Sprintf("Welcome back, %s (level %d %s).",
		res.Profile.DisplayName, res.Profile.Stats.Level, res.Profile.Stats.Class))
	return nil
}

// Logout forgets the session.
func (a *App) Logout(ctx context.Context) error {
	a.profile = nil
	a.api.SetToken("")
	clearSession()
	printlnFn("Logged out.")
	return nil
}
