package cmd

import (
	"fmt"
	"os"

	"github.com/shed-tools/shed/common"
	"github.com/shed-tools/shed/project"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel         string
	logColorDisabled bool

	projectArgs struct {
		root       string
		name       string
		compress   bool
		cacheSize  int
		userFolder string
		extension  string
	}

	rootCmd = &cobra.Command{
		Use:   "shed",
		Short: "Manage the folders and saved data of a SHED project",
		PersistentPreRun: func(*cobra.Command, []string) {
			initLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logrus.InfoLevel.String(), "Log level")
	rootCmd.PersistentFlags().BoolVar(&logColorDisabled, "log-color-disabled", false, "Force to disable colorful logs")

	rootCmd.PersistentFlags().StringVar(&projectArgs.root, "root", "", "Project root directory, defaults to the working directory")
	rootCmd.PersistentFlags().StringVar(&projectArgs.name, "project", "shed", "Project name")
	rootCmd.PersistentFlags().StringVar(&projectArgs.userFolder, "user-folder", project.DefaultUserDataFolder, "Folder user data is saved into")
	rootCmd.PersistentFlags().StringVar(&projectArgs.extension, "extension", project.DefaultExtension, "Extension of user data files")
	rootCmd.PersistentFlags().BoolVar(&projectArgs.compress, "compress", false, "Compress saved objects")
	rootCmd.PersistentFlags().IntVar(&projectArgs.cacheSize, "cache-size", 0, "Number of decoded objects to keep in memory, 0 to disable")
}

func initLog() {
	formatter := logrus.TextFormatter{
		FullTimestamp: true,
	}

	if logColorDisabled {
		formatter.DisableColors = true
	} else {
		formatter.ForceColors = true
	}

	logrus.SetFormatter(&formatter)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.WithError(err).WithField("level", logLevel).Fatal("Failed to parse log level")
	}

	logrus.SetLevel(level)
}

// openProject opens the project selected by the global flags, exiting on failure.
func openProject() *project.Project {
	root := projectArgs.root
	if len(root) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			logrus.WithError(err).Fatal("Failed to get working directory")
		}
		root = wd
	}

	config := project.DefaultConfig(root, projectArgs.name)
	config.UserDataFolder = projectArgs.userFolder
	config.Extension = projectArgs.extension
	config.Compress = projectArgs.compress
	config.CacheSize = projectArgs.cacheSize

	p, err := project.New(config, common.LogOption{Logger: logrus.StandardLogger()})
	if err != nil {
		logrus.WithError(err).WithField("root", root).Fatal("Failed to open project")
	}

	return p
}

// Execute is the command line entrypoint.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
