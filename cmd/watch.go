package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stobind/internal/keybind"
	"github.com/zjrosen/stobind/internal/log"
	"github.com/zjrosen/stobind/internal/watcher"
)

var watchStrategy string

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-import a keybind file whenever it changes",
	Long: `Watch a keybind file and re-import it into a profile on every save.
Pair it with /bind_save_file in the game client to keep a profile in
sync while you tune binds in-game. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchStrategy, "strategy", "s", "overwrite",
		"merge strategy applied on each change: keep, overwrite or clear")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	strategy, ok := keybind.ParseMergeStrategy(watchStrategy)
	if !ok {
		return fmt.Errorf("unknown merge strategy %q (want keep, overwrite or clear)", watchStrategy)
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

	w, err := watcher.New(watcher.Config{
		FilePath:    args[0],
		DebounceDur: time.Duration(cfg.WatchDebounceMS) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	if err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	cmd.Printf("Watching %s (profile %q, env %s, strategy %s)\n", args[0], name, env, strategy)

	for {
		select {
		case <-onChange:
			content, err := os.ReadFile(args[0])
			if err != nil {
				log.ErrorErr(log.CatWatcher, "Reading changed file failed", err, "path", args[0])
				cmd.Printf("read error: %v\n", err)
				continue
			}
			result, err := svc.Service.ImportKeybindFile(cmd.Context(), name, env, string(content), strategy)
			if err != nil {
				log.ErrorErr(log.CatWatcher, "Re-import failed", err, "path", args[0])
				cmd.Printf("import error: %v\n", err)
				continue
			}
			cmd.Printf("%s  imported %d, skipped %d, overwritten %d\n",
				time.Now().Format("15:04:05"), result.Imported, result.Skipped, result.Overwritten)

		case <-sigs:
			cmd.Println("Stopping.")
			return nil
		}
	}
}
