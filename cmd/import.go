package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stobind/internal/keybind"
	"github.com/zjrosen/stobind/internal/profile"
	"github.com/zjrosen/stobind/internal/ui"
)

// importOutcome pairs an import result with a short label for output.
type importOutcome struct {
	*profile.ImportResult
	what string
}

func (o *importOutcome) report(cmd *cobra.Command) {
	cmd.Printf("Imported %d %s (%d skipped, %d overwritten, %d cleared)\n",
		o.Imported, o.what, o.Skipped, o.Overwritten, o.Cleared)
	for _, e := range o.LineErrors {
		cmd.Printf("  line %d: %s: %s\n", e.Line, e.Reason, e.Content)
	}
	for _, e := range o.EntryErrors {
		cmd.Printf("  %s: %s\n", e.Name, e.Reason)
	}
}

var (
	importStrategy string
	importAliases  bool
	importPreview  bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a keybind or alias file into a profile",
	Long: `Import a keybind file into a profile's bindset.

Merge strategies:
  keep       keep existing bindings on collision (default)
  overwrite  incoming bindings win on collision
  clear      drop the whole bindset, then import

Examples:
  # Merge space binds into the active profile
  stobind import keybinds.txt

  # Replace the ground bindset of a named profile
  stobind import ground.txt --profile Alts --env ground --strategy clear

  # Import alias declarations
  stobind import aliases.txt --aliases

  # See what would change without writing anything
  stobind import keybinds.txt --preview`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importStrategy, "strategy", "s", "keep",
		"merge strategy: keep, overwrite or clear")
	importCmd.Flags().BoolVar(&importAliases, "aliases", false,
		"treat the file as alias declarations")
	importCmd.Flags().BoolVar(&importPreview, "preview", false,
		"show a diff of what would change, write nothing")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	strategy, ok := keybind.ParseMergeStrategy(importStrategy)
	if !ok {
		return fmt.Errorf("unknown merge strategy %q (want keep, overwrite or clear)", importStrategy)
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	name, err := profileName(cmd)
	if err != nil {
		return err
	}
	env := environment(cmd)
	ctx := cmd.Context()

	if importPreview {
		return previewImport(cmd, svc, name, string(content), strategy)
	}

	var result *importOutcome
	if importAliases {
		r, err := svc.Service.ImportAliasFile(ctx, name, string(content), strategy)
		if err != nil {
			return err
		}
		result = &importOutcome{ImportResult: r, what: "aliases"}
	} else {
		r, err := svc.Service.ImportKeybindFile(ctx, name, env, string(content), strategy)
		if err != nil {
			return err
		}
		result = &importOutcome{ImportResult: r, what: fmt.Sprintf("%s binds", env)}
	}

	result.report(cmd)
	return nil
}

// previewImport diffs the current export against the export an import
// would produce, without touching the repository.
func previewImport(cmd *cobra.Command, svc *services, name, content string, strategy keybind.MergeStrategy) error {
	prof, err := svc.Repo.FindByName(name)
	if err != nil {
		return err
	}
	env := environment(cmd)

	parsed := keybind.ParseFile(content)
	var current, proposed string
	if importAliases {
		merged, _, _ := keybind.ResolveMerge(prof.Aliases, parsed.Aliases, strategy, keybind.KindAlias)
		current = keybind.ExportBindings(nil, nil, prof.Aliases, nil)
		proposed = keybind.ExportBindings(nil, nil, merged, nil)
	} else {
		flags := prof.StabilizationFlags(env)
		merged, _, _ := keybind.ResolveMerge(prof.Bindings(env), parsed.Bindings, strategy, keybind.KindKey)
		current = keybind.ExportBindings(prof.Bindings(env), flags, nil, nil)
		proposed = keybind.ExportBindings(merged, flags, nil, nil)
	}

	if !ui.HasChanges(current, proposed) {
		cmd.Println("No changes.")
		return nil
	}
	cmd.Print(ui.ImportPreview(current, proposed))
	return nil
}
