package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aletheia-net/aletheia/internal/server/models"
)

// Prompt templates for every AI-backed feature. Each asks for strict JSON,
// but replies are still parsed leniently: the upstream routinely wraps the
// payload in prose or code fences.

// IdentityPrompt asks for initial level-1 stats and a class judged from the
// user's manifesto.
func IdentityPrompt(manifesto string) string {
	return fmt.Sprintf(`Analyze this manifesto: %q. Assign level 1 stats and a class. Be poetic.
Reply with a JSON object: {"reason": string, "class": string, "intelligence": int, "physical": int, "spiritual": int, "social": int, "wealth": int} with each attribute between 1 and 10.`, manifesto)
}

// NamePrompt asks for a single mysterious RPG-style display name.
func NamePrompt() string {
	return "Generate a single mysterious RPG-style name (e.g., Kaelen, Vyr, Sylas). Just the name."
}

// QuestBatchPrompt asks for a batch of real-world quests for the given
// class, level and stated goals.
func QuestBatchPrompt(class string, level, count int, goals []string) string {
	return fmt.Sprintf(`Propose %d real-world quests for a %s at level %d. Goals: %s.
Reply with a JSON array of objects: {"text": string, "difficulty": one of "E","D","C","B","A","S", "xpReward": int, "statReward": object mapping of "intelligence","physical","spiritual","social","wealth" to int, "durationHours": int}.`,
		count, class, level, strings.Join(goals, ", "))
}

// FeatPrompt asks the oracle to score a claimed real-world feat.
func FeatPrompt(feat string, stats models.Stats) string {
	b, _ := json.Marshal(stats)
	return fmt.Sprintf(`Feat: %q. Stats: %s. Calculate XP and stat gains.
Reply with a JSON object: {"xpGained": int, "statsIncreased": object mapping attribute names to int, "systemMessage": string}.`, feat, b)
}

// MirrorScenarioPrompt asks for a psychological dilemma tuned to the stats.
func MirrorScenarioPrompt(stats models.Stats) string {
	b, _ := json.Marshal(stats)
	return fmt.Sprintf(`Create a psychological dilemma for a user with these stats: %s.
Reply with a JSON object: {"situation": string, "choiceA": string, "choiceB": string, "context": string, "testedStat": string}.`, b)
}

// MirrorEvaluatePrompt asks for the outcome of a dilemma choice. The
// statChange map may be negative.
func MirrorEvaluatePrompt(situation, choice, testedStat string) string {
	return fmt.Sprintf(`Scenario: %q. Choice: %q. Tested stat: %q. Evaluator result.
Reply with a JSON object: {"outcome": string, "xp": int, "statChange": object mapping attribute names to int (may be negative)}.`,
		situation, choice, testedStat)
}

// WisdomPrompt asks for a short philosophical quote.
func WisdomPrompt() string {
	return `Generate a profound short philosophical quote.
Reply with a JSON object: {"text": string, "author": string}.`
}

// VerdictPrompt asks for a moderation verdict on a reported user or post.
func VerdictPrompt(reason, reportedContent string) string {
	return fmt.Sprintf(`A user was reported. Reason: %q. Reported content: %q.
Decide a moderation action. Reply with a JSON object: {"action": one of "WARN","BAN","DELETE","NONE", "explanation": string}.`,
		reason, reportedContent)
}
