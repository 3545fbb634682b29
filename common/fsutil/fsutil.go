// Package fsutil holds the filesystem primitives shared by the storage layer: directory
// creation, existence checks, file name extensions, folder name validation and recursive
// file search.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/pkg/errors"
	"github.com/shed-tools/shed/common"
	"github.com/sirupsen/logrus"
)

// DirPerm is the permission used for every directory created by SHED.
const DirPerm = 0o755

var (
	// ErrInvalidName is returned when a folder name cannot be used as a single path element.
	ErrInvalidName = errors.New("invalid folder name")

	// ErrNotDirectory is returned when a directory was expected at an existing path.
	ErrNotDirectory = errors.New("not a directory")
)

// EnsureDir creates the directory at path if absent. An existing directory is not an error.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return errors.WithMessagef(ErrNotDirectory, "failed to create folder %s", path)
		}
		return nil
	}

	if !os.IsNotExist(err) {
		return errors.WithMessagef(err, "failed to stat folder %s", path)
	}

	if err = os.MkdirAll(path, DirPerm); err != nil {
		return errors.WithMessagef(err, "failed to create folder %s", path)
	}

	return nil
}

// AddExtension appends extension to fileName unless fileName already ends with it.
// The suffix match is case-sensitive.
func AddExtension(fileName, extension string) string {
	if strings.HasSuffix(fileName, extension) {
		return fileName
	}
	return fileName + extension
}

// ValidateName checks that name is usable as a single directory entry below a root.
func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) == 0 {
		return errors.WithMessage(ErrInvalidName, "name is empty")
	}

	if name == "." || name == ".." {
		return errors.WithMessagef(ErrInvalidName, "'%s' refers to a relative directory", name)
	}

	if strings.ContainsAny(name, "/\\\x00") {
		return errors.WithMessagef(ErrInvalidName, "'%s' contains a path separator", name)
	}

	return nil
}

// SubDirs returns the names of the directories directly below path, sorted by name.
func SubDirs(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to read directory %s", path)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// FindFiles walks root recursively and returns the base names of all files whose name
// ends with extension. The result is sorted and never nil. Sub-directories that cannot be
// read are logged and skipped; a nil logger skips them silently.
func FindFiles(root, extension string, logger logrus.FieldLogger) ([]string, error) {
	if logger == nil {
		logger = common.NewLogger()
	}

	var mu sync.Mutex
	results := []string{}

	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if filepath.Clean(path) == filepath.Clean(root) {
				return err
			}
			logger.WithError(err).WithField("path", path).Warn("Skipping unreadable entry")
			return nil
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), extension) {
			return nil
		}

		// directory links are not followed, but they are not files either
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err == nil && info.IsDir() {
				return nil
			}
		}

		// callbacks run on several goroutines
		mu.Lock()
		results = append(results, filepath.Base(path))
		mu.Unlock()

		return nil
	})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to search files in %s", root)
	}

	sort.Strings(results)

	return results, nil
}
