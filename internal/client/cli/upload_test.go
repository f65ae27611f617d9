package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aletheia-net/aletheia/internal/client/api"
	"github.com/aletheia-net/aletheia/internal/server/models"
)

// uploadServer fakes the presign/PUT/update/resolve round trip.
type uploadServer struct {
	putBody       []byte
	updatedFields map[string]any
}

func (u *uploadServer) handler(t *testing.T, baseURL func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/uploads/presign":
			fmt.Fprintf(w, `{"key":"images/u1/pic","url":"%s/storage/images/u1/pic"}`, baseURL())
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/storage/"):
			b, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			u.putBody = b
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPost && r.URL.Path == "/profile/u1/update":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&u.updatedFields))
			fmt.Fprint(w, `{"id":"u1","username":"Zeus","avatarUrl":"images/u1/pic"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/uploads/url":
			fmt.Fprint(w, `{"url":"https://storage.local/signed"}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestUpload_SetsAvatarOnProfile(t *testing.T) {
	captureOutput(t)

	u := &uploadServer{}
	var ts *httptest.Server
	ts = httptest.NewServer(u.handler(t, func() string { return ts.URL }))
	defer ts.Close()

	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o600))

	a := &App{
		api:     api.New(ts.URL, nil),
		profile: &models.Profile{ID: "u1", Username: "Zeus"},
	}

	require.NoError(t, a.Upload(context.Background(), []string{"avatar", path}))

	assert.Equal(t, []byte("png-bytes"), u.putBody)
	assert.Equal(t, "images/u1/pic", u.updatedFields["avatarUrl"], "upload must attach the key to the profile")
	assert.NotContains(t, u.updatedFields, "coverUrl")
	assert.Equal(t, "images/u1/pic", a.profile.AvatarURL)
}

func TestUpload_UsageErrors(t *testing.T) {
	out := captureOutput(t)
	a := &App{profile: &models.Profile{ID: "u1"}}

	require.NoError(t, a.Upload(context.Background(), []string{"pic.png"}))
	require.NoError(t, a.Upload(context.Background(), []string{"banner", "pic.png"}))

	joined := strings.Join(*out, "")
	assert.Contains(t, joined, "Usage: upload <avatar|cover> <path>")
}
