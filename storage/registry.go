package storage

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shed-tools/shed/common"
	"github.com/shed-tools/shed/common/fsutil"
	"github.com/sirupsen/logrus"
)

// Registry owns the managed folders below one root directory.
type Registry struct {
	root    string
	primary *Folder
	folders map[string]*Folder
	opts    Options
	logger  *logrus.Logger
}

// NewRegistry creates the primary folder root/dataFolder and registers every directory that
// already exists below root.
func NewRegistry(root, dataFolder string, opts Options, logOpts ...common.LogOption) (*Registry, error) {
	logger := common.NewLogger(logOpts...)

	primary, err := NewFolder(root, dataFolder, opts, logger)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create data folder")
	}

	registry := &Registry{
		root:    root,
		primary: primary,
		folders: make(map[string]*Folder),
		opts:    opts,
		logger:  logger,
	}

	if err = registry.scan(); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"root":    root,
		"folders": len(registry.folders),
	}).Debug("Data registry initialized")

	return registry, nil
}

// scan registers the existing sub-directories of the registry root.
func (r *Registry) scan() error {
	names, err := fsutil.SubDirs(r.root)
	if err != nil {
		return errors.WithMessage(err, "failed to scan sub folders")
	}

	for _, name := range names {
		if name == r.primary.Name() {
			r.folders[name] = r.primary
			continue
		}

		if err = fsutil.ValidateName(name); err != nil {
			r.logger.WithError(err).WithField("folder", name).Warn("Skipping sub folder")
			continue
		}

		if _, err = r.AddFolder(name); err != nil {
			return err
		}
	}

	return nil
}

// Root returns the registry root directory.
func (r *Registry) Root() string { return r.root }

// Primary returns the registry's own data folder.
func (r *Registry) Primary() *Folder { return r.primary }

// AddFolder creates the folder name below the root and registers it, replacing any
// previously registered folder of the same name.
func (r *Registry) AddFolder(name string) (*Folder, error) {
	folder, err := NewFolder(r.root, name, r.opts, r.logger)
	if err != nil {
		return nil, err
	}

	r.folders[name] = folder

	return folder, nil
}

// Folder returns the registered folder name.
func (r *Registry) Folder(name string) (*Folder, bool) {
	folder, ok := r.folders[name]
	return folder, ok
}

// Folders returns the sorted names of all registered folders.
func (r *Registry) Folders() []string {
	names := make([]string, 0, len(r.folders))
	for name := range r.folders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SaveObject writes value into fileName of the named folder, registering the folder first
// when it is unknown. It returns the written path.
func (r *Registry) SaveObject(folderName, fileName string, value interface{}) (string, error) {
	folder, err := r.folderForWrite(folderName)
	if err != nil {
		return "", err
	}
	return folder.WriteObject(fileName, value)
}

// LoadObject reads fileName of the named folder into out. An unknown folder is reported as
// a *ReadError without logging and without creating the folder.
func (r *Registry) LoadObject(folderName, fileName string, out interface{}) error {
	folder, ok := r.folders[folderName]
	if !ok {
		return &ReadError{Path: folderName, Err: ErrFolderNotRegistered}
	}
	return folder.ReadObject(fileName, out)
}

// WriteText writes a text file into the named folder, registering the folder first when it
// is unknown.
func (r *Registry) WriteText(folderName, fileName, extension, content string, mode TextMode) error {
	folder, err := r.folderForWrite(folderName)
	if err != nil {
		return err
	}
	return folder.WriteText(fileName, extension, content, mode)
}

// ReadText reads a text file from the named folder with the same rules as LoadObject.
func (r *Registry) ReadText(folderName, fileName string) (string, error) {
	folder, ok := r.folders[folderName]
	if !ok {
		return "", &ReadError{Path: folderName, Err: ErrFolderNotRegistered}
	}
	return folder.ReadText(fileName)
}

func (r *Registry) folderForWrite(name string) (*Folder, error) {
	if folder, ok := r.folders[name]; ok {
		return folder, nil
	}

	r.logger.WithField("folder", name).Debug("Registering folder on first write")

	return r.AddFolder(name)
}
