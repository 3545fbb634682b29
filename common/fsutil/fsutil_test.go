package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/shed-tools/shed/common/fsutil"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirIdempotent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "models")

	require.NoError(t, fsutil.EnsureDir(path))
	require.NoError(t, fsutil.EnsureDir(path))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
	assert.Equal(t, "models", entries[0].Name())
}

func TestEnsureDirOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	err := fsutil.EnsureDir(path)
	assert.True(t, errors.Is(err, fsutil.ErrNotDirectory))
}

func TestAddExtension(t *testing.T) {
	assert.Equal(t, "a.txt", fsutil.AddExtension("a.txt", ".txt"))
	assert.Equal(t, "a.txt", fsutil.AddExtension("a", ".txt"))
	assert.Equal(t, "a.TXT.txt", fsutil.AddExtension("a.TXT", ".txt"))
	assert.Equal(t, "a", fsutil.AddExtension("a", ""))
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"UserData", true},
		{"demo data", true},
		{".hidden", true},
		{"", false},
		{"   ", false},
		{".", false},
		{"..", false},
		{"a/b", false},
		{"a\\b", false},
		{"a\x00b", false},
	}

	for _, tt := range tests {
		err := fsutil.ValidateName(tt.name)
		if tt.valid {
			assert.NoError(t, err, tt.name)
		} else {
			assert.True(t, errors.Is(err, fsutil.ErrInvalidName), tt.name)
		}
	}
}

func TestSubDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "b"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(root, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.txt"), nil, 0o644))

	dirs, err := fsutil.SubDirs(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, dirs)

	_, err = fsutil.SubDirs(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deeper"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.json"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "y.json"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "deeper", "w.json"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "z.txt"), nil, 0o644))

	files, err := fsutil.FindFiles(root, ".json", nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"x.json", "y.json", "w.json"}, files)

	files, err = fsutil.FindFiles(root, ".csv", nil)
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestFindFilesSkipsDirectoryLinks(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "real"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "real", "a.json"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.json"), nil, 0o644))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link.json")))
	require.NoError(t, os.Symlink(filepath.Join(root, "b.json"), filepath.Join(root, "alias.json")))

	files, err := fsutil.FindFiles(root, ".json", nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.json", "alias.json", "b.json"}, files)
}

func TestFindFilesSkipsUnreadableDirs(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(locked, "hidden.json"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "x.json"), nil, 0o644))
	require.NoError(t, os.Chmod(locked, 0o000))
	defer os.Chmod(locked, 0o755)

	logger, hook := logtest.NewNullLogger()
	files, err := fsutil.FindFiles(root, ".json", logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.json"}, files)
	assert.NotEmpty(t, hook.Entries)
}

func TestFindFilesMissingRoot(t *testing.T) {
	_, err := fsutil.FindFiles(filepath.Join(t.TempDir(), "missing"), ".json", nil)
	assert.Error(t, err)
}
