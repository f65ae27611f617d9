package oracle

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aletheia-net/aletheia/internal/jsonx"
)

// TryText asks the oracle for free text. ok is false on any failure; the
// caller substitutes its own fallback.
func TryText(ctx context.Context, c Client, prompt string) (string, bool) {
	raw, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", false
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	return text, true
}

// TryObject asks the oracle for a JSON object and leniently extracts the
// first balanced {...} from the reply. ok is false when the call failed,
// nothing was found, or the candidate was not valid JSON. Never returns an
// error: every call site owns its fallback literal.
func TryObject(ctx context.Context, c Client, prompt string) (json.RawMessage, bool) {
	raw, err := c.Generate(ctx, prompt)
	if err != nil {
		return nil, false
	}
	return jsonx.ExtractObject(raw)
}

// TryArray is TryObject for a top-level JSON array.
func TryArray(ctx context.Context, c Client, prompt string) (json.RawMessage, bool) {
	raw, err := c.Generate(ctx, prompt)
	if err != nil {
		return nil, false
	}
	return jsonx.ExtractArray(raw)
}
