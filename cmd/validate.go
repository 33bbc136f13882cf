package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stobind/internal/keybind"
)

var errValidationFailed = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse a keybind file and report every malformed line",
	Long: `Parse a keybind file without importing it. Reports each line the
parser rejects along with the reason; good lines are counted. Exits
non-zero when any line fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	result := keybind.ParseFile(string(content))

	cmd.Printf("%s: %d bindings, %d aliases, %d comments\n",
		args[0], len(result.Bindings), len(result.Aliases), len(result.Comments))

	// Flag bound key names the catalog does not recognize. The game
	// ignores them silently; surfacing them here is the whole point.
	for key := range result.Bindings {
		if !keybind.IsValidKeyName(key) {
			cmd.Printf("  warning: unrecognized key name %q\n", key)
		}
	}

	if len(result.Errors) == 0 {
		return nil
	}
	for _, e := range result.Errors {
		cmd.Printf("  line %d: %s: %s\n", e.Line, e.Reason, e.Content)
	}
	cmd.SilenceUsage = true
	return fmt.Errorf("%w: %d bad line(s)", errValidationFailed, len(result.Errors))
}
