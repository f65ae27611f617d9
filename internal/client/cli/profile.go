package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aletheia-net/aletheia/internal/client/api"
	"github.com/aletheia-net/aletheia/internal/netx"
)

// Profile prints the logged-in user's character sheet.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.api.Profile(ctx, a.profile.ID)
	if err != nil {
		printlnFn("Could not load profile:", err)
		return err
	}
	a.profile = p

	s := p.Stats
	printlnFn(fmt.Sprintf("%s: level %d %s", p.DisplayName, s.Level, s.Class))
	printlnFn(fmt.Sprintf("XP %d/%d | INT %d PHY %d SPI %d SOC %d WLT %d",
		s.XP, s.XPToNextLevel, s.Intelligence, s.Physical, s.Spiritual, s.Social, s.Wealth))
	if p.Manifesto != "" {
		printlnFn("Manifesto:", p.Manifesto)
	}
	return nil
}

// Board prints the leaderboard.
func (a *App) Board(ctx context.Context) error {
	board, err := a.api.Leaderboard(ctx)
	if err != nil {
		printlnFn("Could not load leaderboard:", err)
		return err
	}
	for i, p := range board {
		printlnFn(fmt.Sprintf("%2d. %s, level %d %s", i+1, p.DisplayName, p.Stats.Level, p.Stats.Class))
	}
	return nil
}

// Notices prints the user's notifications.
func (a *App) Notices(ctx context.Context) error {
	ns, err := a.api.Notifications(ctx, a.profile.ID)
	if err != nil {
		printlnFn("Could not load notifications:", err)
		return err
	}
	if len(ns) == 0 {
		printlnFn("Nothing new.")
		return nil
	}
	for _, n := range ns {
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s [%d] %s %s", marker, n.ID, n.Type, n.Content))
	}
	return nil
}

// Wisdom prints the quote of the day.
func (a *App) Wisdom(ctx context.Context) error {
	text, author, err := a.api.Wisdom(ctx)
	if err != nil {
		printlnFn("The Council is silent:", err)
		return err
	}
	printlnFn(fmt.Sprintf("%q - %s", text, author))
	return nil
}

// Upload sends a local image to object storage via a presigned URL and sets
// it as the avatar or cover of the logged-in profile.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[0] != "avatar" && args[0] != "cover") {
		printlnFn("Usage: upload <avatar|cover> <path>")
		return nil
	}
	target := args[0]

	data, err := os.ReadFile(args[1])
	if err != nil {
		printlnFn("Could not read file:", err)
		return err
	}

	key, url, err := a.api.PresignUpload(ctx)
	if err != nil {
		printlnFn("Could not presign upload:", err)
		return err
	}

	if err := netx.UploadToPresignedURL(ctx, url, data); err != nil {
		printlnFn("Upload failed:", err)
		return err
	}

	upd := api.ProfileUpdate{}
	if target == "avatar" {
		upd.AvatarURL = &key
	} else {
		upd.CoverURL = &key
	}
	p, err := a.api.UpdateProfile(ctx, a.profile.ID, upd)
	if err != nil {
		printlnFn("Uploaded, but could not update profile:", err)
		return err
	}
	a.profile = p

	if display, err := a.api.ResolveUploadURL(ctx, key); err == nil {
		printlnFn("Set", target, "to", key)
		printlnFn("View it at:", display)
	} else {
		printlnFn("Set", target, "to", key)
	}
	return nil
}
