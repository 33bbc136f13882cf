package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stobind/internal/keybind"
)

var (
	keysCheck         string
	errInvalidKeyName = errors.New("invalid key name")
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List recognized key names in canonical bind-file order",
	Long: `List every key name the format recognizes, in the order the
exporter writes them. Use --check to test a single name, including
modifier combinations like Ctrl+Alt+F1.`,
	Args: cobra.NoArgs,
	RunE: runKeys,
}

func init() {
	keysCmd.Flags().StringVar(&keysCheck, "check", "",
		"check whether a single key name is valid")

	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	if keysCheck != "" {
		if keybind.IsValidKeyName(keysCheck) {
			cmd.Printf("%s is valid (canonical: %s)\n", keysCheck, keybind.CanonicalKeyName(keysCheck))
			return nil
		}
		cmd.Printf("%s is not a recognized key name\n", keysCheck)
		cmd.SilenceUsage = true
		return errInvalidKeyName
	}

	for _, name := range keybind.AllKeyNames() {
		cmd.Println(name)
	}
	return nil
}
