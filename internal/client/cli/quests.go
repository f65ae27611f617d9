package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Quests lists the logged-in user's quests.
func (a *App) Quests(ctx context.Context) error {
	quests, err := a.api.Quests(ctx, a.profile.ID)
	if err != nil {
		printlnFn("Could not load quests:", err)
		return err
	}

	if len(quests) == 0 {
		printlnFn("No quests. Use 'seek' to ask the Oracle for trials.")
		return nil
	}

	now := time.Now()
	for _, q := range quests {
		state := "active"
		switch {
		case q.Completed:
			state = "done"
		case q.Expired(now):
			state = "expired"
		}
		printlnFn(fmt.Sprintf("[%d] (%s, %s) %s - %d XP", q.ID, q.Difficulty, state, q.Text, q.XPReward))
	}
	return nil
}

// Seek asks the Oracle for new quests based on stated goals.
func (a *App) Seek(ctx context.Context) error {
	goalsLine, err := GetSimpleText(a.reader, "Your goals (comma separated)", os.Stdout)
	if err != nil {
		return err
	}
	var goals []string
	for _, g := range strings.Split(goalsLine, ",") {
		if g = strings.TrimSpace(g); g != "" {
			goals = append(goals, g)
		}
	}

	res, err := a.api.GenerateQuests(ctx, goals)
	if err != nil {
		printlnFn("The Oracle is unreachable:", err)
		return err
	}
	if res.Message != "" {
		printlnFn(res.Message)
		return nil
	}
	for _, q := range res.Quests {
		printlnFn(fmt.Sprintf("[%d] (%s) %s - %d XP", q.ID, q.Difficulty, q.Text, q.XPReward))
	}
	return nil
}

// Complete marks a quest done and shows the updated stats.
func (a *App) Complete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: complete <quest id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Quest id must be a number.")
		return nil
	}

	res, err := a.api.CompleteQuest(ctx, id)
	if err != nil {
		printlnFn("Completion failed:", err)
		return err
	}

	if a.profile != nil {
		a.profile.Stats = res.Stats
	}
	printlnFn(fmt.Sprintf("Quest complete. Level %d, %d/%d XP.",
		res.Stats.Level, res.Stats.XP, res.Stats.XPToNextLevel))
	return nil
}
