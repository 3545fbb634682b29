package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	foldersCmd = &cobra.Command{
		Use:   "folders",
		Short: "List the registered folders of the project",
		Args:  cobra.NoArgs,
		Run:   listFolders,
	}

	addFolderCmd = &cobra.Command{
		Use:   "add-folder <name>",
		Short: "Create a folder below the project root",
		Args:  cobra.ExactArgs(1),
		Run:   addFolder,
	}
)

func init() {
	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(addFolderCmd)
}

func listFolders(*cobra.Command, []string) {
	p := openProject()

	for _, name := range p.Registry().Folders() {
		fmt.Println(name)
	}
}

func addFolder(_ *cobra.Command, args []string) {
	p := openProject()

	folder, err := p.AddFolder(args[0])
	if err != nil {
		logrus.WithError(err).WithField("folder", args[0]).Fatal("Failed to add folder")
	}

	logrus.WithField("path", folder.Path()).Info("Folder ready")
}
