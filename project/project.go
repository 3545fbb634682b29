// Package project is the top level of SHED storage: a named project rooted at a directory,
// owning the registry of its folders and the conventions used for user data.
package project

import (
	"github.com/pkg/errors"
	"github.com/shed-tools/shed/codec"
	"github.com/shed-tools/shed/common"
	"github.com/shed-tools/shed/common/fsutil"
	"github.com/shed-tools/shed/storage"
	"github.com/sirupsen/logrus"
)

// Project manages all folders and files of one SHED project.
type Project struct {
	config   Config
	registry *storage.Registry
	logger   *logrus.Logger
}

// NewProject opens the project name at root with default settings.
func NewProject(root, name string, opts ...common.LogOption) (*Project, error) {
	return New(DefaultConfig(root, name), opts...)
}

// New opens the project described by config, creating its data folder when absent.
func New(config Config, opts ...common.LogOption) (*Project, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := common.NewLogger(opts...)

	options := storage.Options{
		Codec: codec.Options{Compress: config.Compress},
		Cache: storage.NewObjectCache(config.CacheSize, config.CacheExpiry),
	}

	registry, err := storage.NewRegistry(config.Root, config.DataFolderName(), options, common.LogOption{Logger: logger})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to open project %s", config.Name)
	}

	logger.WithFields(logrus.Fields{
		"project": config.Name,
		"root":    config.Root,
	}).Debug("Project opened")

	return &Project{
		config:   config,
		registry: registry,
		logger:   logger,
	}, nil
}

func (p *Project) Name() string                { return p.config.Name }
func (p *Project) Root() string                { return p.config.Root }
func (p *Project) UserDataFolder() string      { return p.config.UserDataFolder }
func (p *Project) Extension() string           { return p.config.Extension }
func (p *Project) Registry() *storage.Registry { return p.registry }

// DataFolder returns the project's own "<name> data" folder.
func (p *Project) DataFolder() *storage.Folder {
	return p.registry.Primary()
}

// AddFolder creates and registers a folder below the project root.
func (p *Project) AddFolder(name string) (*storage.Folder, error) {
	return p.registry.AddFolder(name)
}

// GetFolder returns the registered folder name. Unknown names are logged and reported with
// ok set to false.
func (p *Project) GetFolder(name string) (*storage.Folder, bool) {
	folder, ok := p.registry.Folder(name)
	if !ok {
		p.logger.WithField("folder", name).Warn("Could not find folder")
	}
	return folder, ok
}

// UserFileName returns the name user data fileName is stored under.
func (p *Project) UserFileName(fileName string) string {
	return fsutil.AddExtension(fileName, p.config.Extension)
}

// SaveUserData saves value into the user data folder as fileName with the project extension,
// creating the folder on first use. It returns the written path.
func (p *Project) SaveUserData(fileName string, value interface{}) (string, error) {
	return p.registry.SaveObject(p.config.UserDataFolder, p.UserFileName(fileName), value)
}

// LoadUserData reads user data saved by SaveUserData into out.
func (p *Project) LoadUserData(fileName string, out interface{}) error {
	return p.registry.LoadObject(p.config.UserDataFolder, p.UserFileName(fileName), out)
}

// FindAllFiles recursively lists the names of all files below the project root ending with
// extension.
func (p *Project) FindAllFiles(extension string) ([]string, error) {
	return fsutil.FindFiles(p.config.Root, extension, p.logger)
}

// FindAllUserFiles is FindAllFiles with the project extension.
func (p *Project) FindAllUserFiles() ([]string, error) {
	return p.FindAllFiles(p.config.Extension)
}
