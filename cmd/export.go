package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a profile's bindset as a game-loadable keybind file",
	Long: `Export a profile's bindset as keybind file text.

Chains flagged for execution-order stabilization are written in their
mirrored form. The output loads directly with /bind_load_file.

Examples:
  # Print the active profile's space binds
  stobind export

  # Write ground binds of a named profile to a file
  stobind export --profile Alts --env ground -o ground.txt`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"write to this file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	name, err := profileName(cmd)
	if err != nil {
		return err
	}

	out, err := svc.Service.ExportProfile(cmd.Context(), name, environment(cmd), time.Now())
	if err != nil {
		return err
	}

	if exportOutput == "" {
		cmd.Print(out)
		return nil
	}
	if err := os.WriteFile(exportOutput, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	cmd.Printf("Wrote %s\n", exportOutput)
	return nil
}
