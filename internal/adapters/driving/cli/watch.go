package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driving"
	"github.com/custodia-labs/seedmerge/internal/logger"
)

// watchSettle is how long a file must stay unchanged before it is imported.
var watchSettle = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Import files as they arrive in a directory",
	Long: `Watches a directory tree and imports each CSV file once it has stopped
changing. Runs until interrupted.

Examples:
  seedmerge watch ./incoming
  seedmerge watch ./incoming --kind taxlot --merge`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addImportFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}
	if newWatcher == nil {
		return errNotConfigured("watch")
	}

	opts, err := importOptions()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := newWatcher(args[0])
	defer watcher.Close()

	changes, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for new files (Ctrl+C to stop)\n", args[0])
	watchLoop(ctx, cmd, changes, opts)
	return nil
}

// watchLoop imports each changed file after it settles. Pending files
// are imported when the change stream ends.
func watchLoop(ctx context.Context, cmd *cobra.Command, changes <-chan domain.FileChange, opts driving.ImportOptions) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pending := make(map[string]*time.Timer)
	ready := make(chan string)

	for {
		select {
		case <-ctx.Done():
			for _, t := range pending {
				t.Stop()
			}
			return

		case change, ok := <-changes:
			if !ok {
				for path, t := range pending {
					t.Stop()
					importWatched(ctx, cmd, path, opts)
				}
				return
			}

			path := change.Path
			if change.Type == domain.ChangeDeleted {
				if t, found := pending[path]; found {
					t.Stop()
					delete(pending, path)
				}
				logger.Debug("watch: %s removed", path)
				continue
			}

			if t, found := pending[path]; found {
				t.Reset(watchSettle)
				continue
			}
			pending[path] = time.AfterFunc(watchSettle, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			if _, found := pending[path]; !found {
				continue
			}
			delete(pending, path)
			importWatched(ctx, cmd, path, opts)
		}
	}
}

func importWatched(ctx context.Context, cmd *cobra.Command, path string, opts driving.ImportOptions) {
	result, err := importService.Import(ctx, path, opts)
	if err != nil {
		logger.Error("import %s: %v", path, err)
		return
	}
	if wantJSON(cmd) {
		if err := printJSON(cmd, result); err != nil {
			logger.Error("print result: %v", err)
		}
		return
	}
	printImportResult(cmd, result)
}
