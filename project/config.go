package project

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shed-tools/shed/common/fsutil"
)

const (
	// DefaultUserDataFolder is the folder user data is saved into.
	DefaultUserDataFolder = "UserData"

	// DefaultExtension is appended to user data file names.
	DefaultExtension = ".txt"

	dataFolderSuffix = " data"
)

// Config describes a project.
type Config struct {
	Root           string `validate:"required"`
	Name           string `validate:"required,foldername"`
	UserDataFolder string `validate:"required,foldername"`
	Extension      string `validate:"required,startswith=."`

	Compress    bool          // zstd compress saved objects
	CacheSize   int           `validate:"gte=0"` // decoded objects kept in memory, 0 disables the cache
	CacheExpiry time.Duration `validate:"gte=0"`
}

// DefaultConfig returns the configuration of a project called name rooted at root.
func DefaultConfig(root, name string) Config {
	return Config{
		Root:           root,
		Name:           name,
		UserDataFolder: DefaultUserDataFolder,
		Extension:      DefaultExtension,
	}
}

// DataFolderName returns the name of the project's own data folder.
func (config *Config) DataFolderName() string {
	return config.Name + dataFolderSuffix
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("foldername", func(fl validator.FieldLevel) bool {
		return fsutil.ValidateName(fl.Field().String()) == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the configuration.
func (config *Config) Validate() error {
	if err := validate.Struct(config); err != nil {
		return errors.WithMessage(err, "invalid project config")
	}
	return nil
}
