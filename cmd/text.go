package cmd

import (
	"fmt"

	"github.com/shed-tools/shed/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	writeTextArgs struct {
		folder    string
		file      string
		extension string
		content   string
		mode      string
	}

	readTextArgs struct {
		folder string
		file   string
	}

	writeTextCmd = &cobra.Command{
		Use:   "write-text",
		Short: "Write plain text into a folder",
		Run:   writeText,
	}

	readTextCmd = &cobra.Command{
		Use:   "read-text",
		Short: "Print a plain text file of a folder",
		Run:   readText,
	}
)

func init() {
	writeTextCmd.Flags().StringVar(&writeTextArgs.folder, "folder", "", "Folder name")
	writeTextCmd.MarkFlagRequired("folder")
	writeTextCmd.Flags().StringVar(&writeTextArgs.file, "file", "", "File name inside the folder")
	writeTextCmd.MarkFlagRequired("file")
	writeTextCmd.Flags().StringVar(&writeTextArgs.extension, "ext", ".txt", "Extension appended to the file name when missing")
	writeTextCmd.Flags().StringVar(&writeTextArgs.content, "content", "", "Text to write")
	writeTextCmd.Flags().StringVar(&writeTextArgs.mode, "mode", storage.TextOverwrite.String(), "Write mode, overwrite or append")
	rootCmd.AddCommand(writeTextCmd)

	readTextCmd.Flags().StringVar(&readTextArgs.folder, "folder", "", "Folder name")
	readTextCmd.MarkFlagRequired("folder")
	readTextCmd.Flags().StringVar(&readTextArgs.file, "file", "", "File name inside the folder")
	readTextCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(readTextCmd)
}

func writeText(*cobra.Command, []string) {
	mode, err := storage.ParseTextMode(writeTextArgs.mode)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to parse write mode")
	}

	p := openProject()

	err = p.Registry().WriteText(writeTextArgs.folder, writeTextArgs.file, writeTextArgs.extension, writeTextArgs.content, mode)
	if err != nil {
		logrus.WithError(err).WithField("folder", writeTextArgs.folder).Fatal("Failed to write text")
	}
}

func readText(*cobra.Command, []string) {
	p := openProject()

	content, err := p.Registry().ReadText(readTextArgs.folder, readTextArgs.file)
	if err != nil {
		exitOnLoadError(err, logrus.Fields{"folder": readTextArgs.folder, "file": readTextArgs.file})
	}

	fmt.Print(content)
}
