package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", dir)
		return
	}
	t.Setenv("HOME", dir)
}

func TestEnsureHomeDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	withHome(t, tmp)

	got, err := EnsureHomeDir(".aletheia")
	require.NoError(t, err)

	want := filepath.Join(tmp, ".aletheia")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")
}

func TestEnsureHomeDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	withHome(t, tmp)

	first, err := EnsureHomeDir(".aletheia")
	require.NoError(t, err)

	second, err := EnsureHomeDir(".aletheia")
	require.NoError(t, err)

	require.Equal(t, first, second)
	fi, err := os.Stat(second)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureHomeDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	withHome(t, tmp)

	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".aletheia"), []byte("x"), 0o660))

	_, err := EnsureHomeDir(".aletheia")
	require.Error(t, err, "should fail when a file exists with the same name")
}
