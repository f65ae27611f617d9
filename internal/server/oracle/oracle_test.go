package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newOracleServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NotEmpty(t, r.Header.Get("x-goog-api-key"))
		w.WriteHeader(status)
		if status == http.StatusOK {
			resp := map[string]any{
				"candidates": []any{
					map[string]any{
						"content": map[string]any{
							"parts": []any{map[string]any{"text": reply}},
						},
					},
				},
			}
			_ = json.NewEncoder(w).Encode(resp)
		} else {
			fmt.Fprint(w, `{"error":"upstream sad"}`)
		}
	}))
}

func TestHTTPClient_Generate_Success(t *testing.T) {
	ts := newOracleServer(t, "The void stares back.", http.StatusOK)
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "test-model", "key", 0)
	got, err := c.Generate(context.Background(), "say something")
	require.NoError(t, err)
	require.Equal(t, "The void stares back.", got)
}

func TestHTTPClient_Generate_NoAPIKey(t *testing.T) {
	c := NewHTTPClient("http://unused", "test-model", "", 0)
	_, err := c.Generate(context.Background(), "anything")
	require.ErrorIs(t, err, ErrNoAPIKey)
}

func TestHTTPClient_Generate_UpstreamError(t *testing.T) {
	ts := newOracleServer(t, "", http.StatusServiceUnavailable)
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "test-model", "key", 0)
	_, err := c.Generate(context.Background(), "anything")
	require.Error(t, err)
}

func TestHTTPClient_Generate_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "test-model", "key", 20*time.Millisecond)
	_, err := c.Generate(context.Background(), "anything")
	require.Error(t, err)
}

// stubClient returns a canned reply or error.
type stubClient struct {
	reply string
	err   error
}

func (s *stubClient) Generate(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func TestTryObject_ExtractsFromProse(t *testing.T) {
	c := &stubClient{reply: "Here you go:\n```json\n{\"text\":\"Run 5k\"}\n```"}
	got, ok := TryObject(context.Background(), c, "prompt")
	require.True(t, ok)
	require.JSONEq(t, `{"text":"Run 5k"}`, string(got))
}

func TestTryObject_NoObjectInReply(t *testing.T) {
	c := &stubClient{reply: "I have nothing structured to offer."}
	_, ok := TryObject(context.Background(), c, "prompt")
	require.False(t, ok)
}

func TestTryObject_InvalidJSON(t *testing.T) {
	c := &stubClient{reply: `{not json at all}`}
	_, ok := TryObject(context.Background(), c, "prompt")
	require.False(t, ok)
}

func TestTryObject_ClientError(t *testing.T) {
	c := &stubClient{err: errors.New("network down")}
	_, ok := TryObject(context.Background(), c, "prompt")
	require.False(t, ok)
}

func TestTryArray_Batch(t *testing.T) {
	c := &stubClient{reply: `[{"text":"a"},{"text":"b"}]`}
	got, ok := TryArray(context.Background(), c, "prompt")
	require.True(t, ok)
	require.JSONEq(t, `[{"text":"a"},{"text":"b"}]`, string(got))
}

func TestTryText_TrimsAndFallsBack(t *testing.T) {
	c := &stubClient{reply: "  Kaelen \n"}
	got, ok := TryText(context.Background(), c, "prompt")
	require.True(t, ok)
	require.Equal(t, "Kaelen", got)

	c = &stubClient{reply: "   "}
	_, ok = TryText(context.Background(), c, "prompt")
	require.False(t, ok)
}

func TestMemoryCache_DailyKeyRollover(t *testing.T) {
	cache := NewMemoryCache()

	day1 := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 0, 1, 0, 0, time.UTC)

	cache.Set(DailyKey("Seeker", day1), "scenario-1")

	got, ok := cache.Get(DailyKey("Seeker", day1))
	require.True(t, ok)
	require.Equal(t, "scenario-1", got)

	_, ok = cache.Get(DailyKey("Seeker", day2))
	require.False(t, ok, "new day must miss")

	_, ok = cache.Get(DailyKey("Warden", day1))
	require.False(t, ok, "other class must miss")
}
