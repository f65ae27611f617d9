package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Feed shows the latest posts.
func (a *App) Feed(ctx context.Context) error {
	posts, err := a.api.Feed(ctx)
	if err != nil {
		printlnFn("Could not load the feed:", err)
		return err
	}

	if len(posts) == 0 {
		printlnFn("The feed is silent.")
		return nil
	}
	for _, p := range posts {
		author := "system"
		if p.AuthorID != nil {
			author = *p.AuthorID
		}
		printlnFn(fmt.Sprintf("[%d] %s (%d resonance)\n    %s", p.ID, author, p.Resonance, p.Content))
	}
	return nil
}

// Post publishes a new post.
func (a *App) Post(ctx context.Context) error {
	content, err := GetMultiline(a.reader, "Speak", os.Stdout)
	if err != nil {
		return err
	}

	post, err := a.api.CreatePost(ctx, content)
	if err != nil {
		printlnFn("Could not post:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Posted [%d].", post.ID))
	return nil
}

// Like toggles a like on a post.
func (a *App) Like(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: like <post id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Post id must be a number.")
		return nil
	}

	post, err := a.api.ToggleLike(ctx, id)
	if err != nil {
		printlnFn("Could not toggle like:", err)
		return err
	}
	printlnFn(fmt.Sprintf("Post [%d] now has %d resonance.", post.ID, post.Resonance))
	return nil
}
