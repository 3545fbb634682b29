package project_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shed-tools/shed/common"
	"github.com/shed-tools/shed/project"
	"github.com/shed-tools/shed/storage"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Player string `json:"player"`
	Level  int    `json:"level"`
}

func newProject(t *testing.T) (*project.Project, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	p, err := project.NewProject(t.TempDir(), "demo", common.LogOption{Logger: logger})
	require.NoError(t, err)
	return p, hook
}

func TestNewProject(t *testing.T) {
	p, _ := newProject(t)

	assert.Equal(t, "demo", p.Name())
	assert.Equal(t, project.DefaultUserDataFolder, p.UserDataFolder())
	assert.Equal(t, project.DefaultExtension, p.Extension())
	assert.Equal(t, "demo data", p.DataFolder().Name())
	assert.DirExists(t, filepath.Join(p.Root(), "demo data"))
	assert.Equal(t, []string{"demo data"}, p.Registry().Folders())
}

func TestNewProjectInvalidConfig(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name   string
		config project.Config
	}{
		{"missing root", project.DefaultConfig("", "demo")},
		{"missing name", project.DefaultConfig(root, "")},
		{"name with separator", project.DefaultConfig(root, "a/b")},
		{"extension without dot", project.Config{Root: root, Name: "demo", UserDataFolder: "UserData", Extension: "txt"}},
		{"bad user folder", project.Config{Root: root, Name: "demo", UserDataFolder: "..", Extension: ".txt"}},
		{"negative cache", project.Config{Root: root, Name: "demo", UserDataFolder: "UserData", Extension: ".txt", CacheSize: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := project.New(tt.config)
			assert.Error(t, err)
		})
	}
}

func TestProjectFolders(t *testing.T) {
	p, hook := newProject(t)

	folder, err := p.AddFolder("levels")
	require.NoError(t, err)

	got, ok := p.GetFolder("levels")
	require.True(t, ok)
	assert.Same(t, folder, got)
	assert.Empty(t, hook.Entries)

	got, ok = p.GetFolder("unknown")
	assert.False(t, ok)
	assert.Nil(t, got)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "unknown", hook.LastEntry().Data["folder"])
}

func TestSaveUserData(t *testing.T) {
	p, _ := newProject(t)

	userDir := filepath.Join(p.Root(), project.DefaultUserDataFolder)
	assert.NoDirExists(t, userDir)

	original := profile{Player: "ada", Level: 7}
	path, err := p.SaveUserData("profile", original)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userDir, "profile.txt"), path)
	assert.FileExists(t, path)

	// the extension is not doubled
	path, err = p.SaveUserData("profile.txt", original)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userDir, "profile.txt"), path)

	var decoded profile
	require.NoError(t, p.LoadUserData("profile", &decoded))
	assert.Equal(t, original, decoded)

	err = p.LoadUserData("other", &decoded)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestFindAllFiles(t *testing.T) {
	p, _ := newProject(t)

	_, err := p.SaveUserData("a", 1)
	require.NoError(t, err)
	require.NoError(t, p.Registry().WriteText("notes", "b", ".txt", "hello", storage.TextOverwrite))
	_, err = p.Registry().SaveObject("levels", "c.json", map[string]int{"x": 1})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(p.Root(), "d.txt"), []byte("root"), 0o644))

	files, err := p.FindAllUserFiles()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.txt", "d.txt"}, files)

	files, err = p.FindAllFiles(".json")
	require.NoError(t, err)
	assert.Equal(t, []string{"c.json"}, files)
}

func TestProjectWithCompressionAndCache(t *testing.T) {
	config := project.DefaultConfig(t.TempDir(), "demo")
	config.Compress = true
	config.CacheSize = 4
	config.CacheExpiry = time.Minute

	p, err := project.New(config)
	require.NoError(t, err)

	_, err = p.SaveUserData("profile", profile{Player: "lin", Level: 2})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		var decoded profile
		require.NoError(t, p.LoadUserData("profile", &decoded))
		assert.Equal(t, profile{Player: "lin", Level: 2}, decoded)
	}
}

func TestReopenProject(t *testing.T) {
	p, _ := newProject(t)

	_, err := p.SaveUserData("profile", profile{Player: "ada"})
	require.NoError(t, err)

	reopened, err := project.NewProject(p.Root(), "demo")
	require.NoError(t, err)
	assert.Equal(t, []string{project.DefaultUserDataFolder, "demo data"}, reopened.Registry().Folders())

	var decoded profile
	require.NoError(t, reopened.LoadUserData("profile", &decoded))
	assert.Equal(t, "ada", decoded.Player)
}
