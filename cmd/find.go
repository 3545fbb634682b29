package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/shed-tools/shed/project"
	"github.com/shed-tools/shed/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	findArgs struct {
		extension string
		folder    string
	}

	findCmd = &cobra.Command{
		Use:   "find",
		Short: "Recursively list files with the given extension",
		Run:   find,
	}

	findUserCmd = &cobra.Command{
		Use:   "find-user",
		Short: "Recursively list files with the user data extension",
		Args:  cobra.NoArgs,
		Run:   findUser,
	}
)

func init() {
	findCmd.Flags().StringVar(&findArgs.extension, "ext", "", "File extension to match, e.g. .json")
	findCmd.MarkFlagRequired("ext")
	findCmd.Flags().StringVar(&findArgs.folder, "folder", "", "Only search the given folder instead of the project root")
	rootCmd.AddCommand(findCmd)

	rootCmd.AddCommand(findUserCmd)
}

func find(*cobra.Command, []string) {
	files, err := findFiles(openProject(), findArgs.folder, findArgs.extension)
	if errors.Is(err, storage.ErrFolderNotRegistered) {
		logrus.WithField("folder", findArgs.folder).Error("Folder not registered")
		os.Exit(2)
	}
	if err != nil {
		logrus.WithError(err).Fatal("Failed to find files")
	}

	printFiles(files)
}

// findFiles searches the named folder, or the whole project when folderName is empty.
func findFiles(p *project.Project, folderName, extension string) ([]string, error) {
	if len(folderName) == 0 {
		return p.FindAllFiles(extension)
	}

	folder, ok := p.GetFolder(folderName)
	if !ok {
		return nil, errors.WithMessage(storage.ErrFolderNotRegistered, folderName)
	}

	return folder.FindFiles(extension)
}

func findUser(*cobra.Command, []string) {
	files, err := openProject().FindAllUserFiles()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to find user files")
	}

	printFiles(files)
}

func printFiles(files []string) {
	for _, file := range files {
		fmt.Println(file)
	}
}
