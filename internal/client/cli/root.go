package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Quests(ctx context.Context) error
	Seek(ctx context.Context) error
	Complete(ctx context.Context, args []string) error
	Feed(ctx context.Context) error
	Post(ctx context.Context) error
	Like(ctx context.Context, args []string) error
	Board(ctx context.Context) error
	Notices(ctx context.Context) error
	Wisdom(ctx context.Context) error
	Name(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
}

// Name asks the oracle for a mysterious display name suggestion.
func (a *App) Name(ctx context.Context) error {
	name, err := a.api.MysteriousName(ctx)
	if err != nil {
		printlnFn("The Oracle is silent:", err)
		return err
	}
	printlnFn("The Oracle suggests:", name)
	return nil
}

// runREPL starts a simple read–eval–print loop for the Aletheia CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("aletheia %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, quests, seek, complete <id>, feed, post, like <id>, board, notices, wisdom, name, upload <avatar|cover> <path>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, wisdom, exit")
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "wisdom":
			_ = a.Wisdom(ctx)

		case "profile", "quests", "seek", "complete", "feed", "post", "like", "board", "notices", "name", "upload":
			if !a.isLoggedIn() {
				printlnFn("Log in first.")
				continue
			}
			switch cmd {
			case "profile":
				_ = a.Profile(ctx)
			case "quests":
				_ = a.Quests(ctx)
			case "seek":
				_ = a.Seek(ctx)
			case "complete":
				_ = a.Complete(ctx, args)
			case "feed":
				_ = a.Feed(ctx)
			case "post":
				_ = a.Post(ctx)
			case "like":
				_ = a.Like(ctx, args)
			case "board":
				_ = a.Board(ctx)
			case "notices":
				_ = a.Notices(ctx)
			case "name":
				_ = a.Name(ctx)
			case "upload":
				_ = a.Upload(ctx, args)
			}

		case "exit", "quit":
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) getStatus() string {
	if a.profile == nil {
		return ""
	}
	return fmt.Sprintf("(%s lvl %d)", a.profile.Username, a.profile.Stats.Level)
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Aletheia (type 'help' for commands)")

	if s := loadSession(); s != nil {
		a.api.SetToken(s.Token)
		if p, err := a.api.Profile(ctx, s.UserID); err == nil {
			a.profile = p
			printlnFn("Restored session for", p.Username)
		} else {
			a.api.SetToken("")
			clearSession()
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
