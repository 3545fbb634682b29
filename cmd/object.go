package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/shed-tools/shed/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type objectArgument struct {
	folder string
	file   string
	value  string
	input  string
	pretty bool
}

var (
	saveArgs     objectArgument
	loadArgs     objectArgument
	saveUserArgs objectArgument
	loadUserArgs objectArgument

	saveCmd = &cobra.Command{
		Use:   "save",
		Short: "Save a JSON value as an object into a folder",
		Run:   save,
	}

	loadCmd = &cobra.Command{
		Use:   "load",
		Short: "Load an object from a folder and print it as JSON",
		Run:   load,
	}

	saveUserCmd = &cobra.Command{
		Use:   "save-user",
		Short: "Save a JSON value as user data",
		Run:   saveUser,
	}

	loadUserCmd = &cobra.Command{
		Use:   "load-user",
		Short: "Load user data and print it as JSON",
		Run:   loadUser,
	}
)

func bindFolderFlag(cmd *cobra.Command, args *objectArgument) {
	cmd.Flags().StringVar(&args.folder, "folder", "", "Folder name")
	cmd.MarkFlagRequired("folder")
}

func bindFileFlag(cmd *cobra.Command, args *objectArgument) {
	cmd.Flags().StringVar(&args.file, "file", "", "File name inside the folder")
	cmd.MarkFlagRequired("file")
}

func bindValueFlags(cmd *cobra.Command, args *objectArgument) {
	cmd.Flags().StringVar(&args.value, "value", "", "JSON value to save")
	cmd.Flags().StringVar(&args.input, "input", "", "File containing the JSON value to save")
	cmd.MarkFlagsOneRequired("value", "input")
	cmd.MarkFlagsMutuallyExclusive("value", "input")
}

func bindPrettyFlag(cmd *cobra.Command, args *objectArgument) {
	cmd.Flags().BoolVar(&args.pretty, "pretty", false, "Indent the printed JSON")
}

func init() {
	bindFolderFlag(saveCmd, &saveArgs)
	bindFileFlag(saveCmd, &saveArgs)
	bindValueFlags(saveCmd, &saveArgs)
	rootCmd.AddCommand(saveCmd)

	bindFolderFlag(loadCmd, &loadArgs)
	bindFileFlag(loadCmd, &loadArgs)
	bindPrettyFlag(loadCmd, &loadArgs)
	rootCmd.AddCommand(loadCmd)

	bindFileFlag(saveUserCmd, &saveUserArgs)
	bindValueFlags(saveUserCmd, &saveUserArgs)
	rootCmd.AddCommand(saveUserCmd)

	bindFileFlag(loadUserCmd, &loadUserArgs)
	bindPrettyFlag(loadUserCmd, &loadUserArgs)
	rootCmd.AddCommand(loadUserCmd)
}

// parseValue decodes the JSON value given on the command line.
func parseValue(args objectArgument) (interface{}, error) {
	raw := []byte(args.value)
	if len(args.input) > 0 {
		content, err := os.ReadFile(args.input)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to read input file %s", args.input)
		}
		raw = content
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, errors.WithMessage(err, "value is not valid JSON")
	}

	return value, nil
}

func printValue(value interface{}, pretty bool) {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(value, "", "  ")
	} else {
		out, err = json.Marshal(value)
	}
	if err != nil {
		logrus.WithError(err).Fatal("Failed to print value")
	}
	fmt.Println(string(out))
}

// exitOnLoadError reports a failed load. Missing content exits with status 2, other
// failures are fatal.
func exitOnLoadError(err error, fields logrus.Fields) {
	if storage.StatusOf(err) == storage.StatusNotFound {
		logrus.WithError(err).WithFields(fields).Error("No content found")
		os.Exit(2)
	}
	logrus.WithError(err).WithFields(fields).Fatal("Failed to read content")
}

func save(*cobra.Command, []string) {
	value, err := parseValue(saveArgs)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to parse value")
	}

	p := openProject()

	path, err := p.Registry().SaveObject(saveArgs.folder, saveArgs.file, value)
	if err != nil {
		logrus.WithError(err).WithField("folder", saveArgs.folder).Fatal("Failed to save object")
	}

	logrus.WithField("path", path).Info("Object saved")
}

func load(*cobra.Command, []string) {
	p := openProject()

	var value interface{}
	if err := p.Registry().LoadObject(loadArgs.folder, loadArgs.file, &value); err != nil {
		exitOnLoadError(err, logrus.Fields{"folder": loadArgs.folder, "file": loadArgs.file})
	}

	printValue(value, loadArgs.pretty)
}

func saveUser(*cobra.Command, []string) {
	value, err := parseValue(saveUserArgs)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to parse value")
	}

	p := openProject()

	path, err := p.SaveUserData(saveUserArgs.file, value)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to save user data")
	}

	logrus.WithField("path", path).Info("User data saved")
}

func loadUser(*cobra.Command, []string) {
	p := openProject()

	var value interface{}
	if err := p.LoadUserData(loadUserArgs.file, &value); err != nil {
		exitOnLoadError(err, logrus.Fields{"file": loadUserArgs.file})
	}

	printValue(value, loadUserArgs.pretty)
}
