package storage

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shed-tools/shed/codec"
	"github.com/shed-tools/shed/common"
	"github.com/shed-tools/shed/common/fsutil"
	"github.com/sirupsen/logrus"
)

// FilePerm is the permission used for every file written by SHED.
const FilePerm = 0o644

// Options is shared by all folders of a registry.
type Options struct {
	Codec codec.Options
	Cache *ObjectCache
}

// Folder is a managed directory at root/name.
type Folder struct {
	root   string
	name   string
	path   string
	opts   Options
	logger *logrus.Logger
}

// NewFolder creates the directory root/name if absent and returns a Folder for it.
// A nil logger discards all output.
func NewFolder(root, name string, opts Options, logger *logrus.Logger) (*Folder, error) {
	if err := fsutil.ValidateName(name); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = common.NewLogger()
	}

	path := filepath.Join(root, name)
	if err := fsutil.EnsureDir(path); err != nil {
		return nil, err
	}

	return &Folder{
		root:   root,
		name:   name,
		path:   path,
		opts:   opts,
		logger: logger,
	}, nil
}

// Name returns the folder name.
func (f *Folder) Name() string { return f.name }

// Root returns the directory the folder lives in.
func (f *Folder) Root() string { return f.root }

// Path returns the full folder path.
func (f *Folder) Path() string { return f.path }

func (f *Folder) filePath(fileName string) (string, error) {
	if err := fsutil.ValidateName(fileName); err != nil {
		return "", errors.WithMessagef(err, "bad file name in folder %s", f.name)
	}
	return filepath.Join(f.path, fileName), nil
}

// WriteObject encodes value into the file fileName of this folder, replacing any existing
// file, and returns the written path.
func (f *Folder) WriteObject(fileName string, value interface{}) (string, error) {
	path, err := f.filePath(fileName)
	if err != nil {
		return "", err
	}

	f.logger.WithField("file", path).Debug("Dumping object")

	data, err := codec.Marshal(value, f.opts.Codec)
	if err != nil {
		return "", errors.WithMessagef(err, "failed to encode object %s", path)
	}

	// drop the cached copy first, mtime granularity may hide the rewrite
	f.opts.Cache.remove(path)

	if err = os.WriteFile(path, data, FilePerm); err != nil {
		return "", errors.WithMessagef(err, "failed to write object %s", path)
	}

	return path, nil
}

// ReadObject decodes the file fileName of this folder into out. A missing or unreadable file
// is logged and reported as a *ReadError.
func (f *Folder) ReadObject(fileName string, out interface{}) error {
	path, err := f.filePath(fileName)
	if err != nil {
		return f.readFailed(fileName, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return f.readFailed(path, err)
	}

	if obj, ok := f.opts.Cache.get(path, info); ok {
		if err = obj.Decode(out); err != nil {
			return f.readFailed(path, err)
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return f.readFailed(path, err)
	}

	obj, err := codec.Unmarshal(data)
	if err != nil {
		return f.readFailed(path, err)
	}

	if err = obj.Decode(out); err != nil {
		return f.readFailed(path, err)
	}

	f.opts.Cache.add(path, info, obj)

	return nil
}

// WriteText writes content into fileName, with extension appended when missing.
func (f *Folder) WriteText(fileName, extension, content string, mode TextMode) error {
	path, err := f.filePath(fsutil.AddExtension(fileName, extension))
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, mode.openFlags(), FilePerm)
	if err != nil {
		return errors.WithMessagef(err, "failed to open text file %s", path)
	}

	if _, err = file.WriteString(content); err != nil {
		file.Close()
		return errors.WithMessagef(err, "failed to write text file %s", path)
	}

	if err = file.Close(); err != nil {
		return errors.WithMessagef(err, "failed to close text file %s", path)
	}

	return nil
}

// ReadText returns the whole content of the text file fileName. An open failure is logged
// and reported as a *ReadError.
func (f *Folder) ReadText(fileName string) (string, error) {
	path, err := f.filePath(fileName)
	if err != nil {
		return "", f.readFailed(fileName, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		f.logger.WithError(err).WithField("file", path).Warn("Error opening file")
		return "", &ReadError{Path: path, Err: err}
	}

	return string(content), nil
}

// FindFiles recursively lists the names of all files below this folder ending with
// extension. Only base names are returned, not paths.
func (f *Folder) FindFiles(extension string) ([]string, error) {
	return fsutil.FindFiles(f.path, extension, f.logger)
}

func (f *Folder) readFailed(path string, err error) error {
	f.logger.WithError(err).WithField("file", path).Warn("No content found")
	return &ReadError{Path: path, Err: err}
}
