// Command seedmerge maps, matches and merges building energy records.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/seedmerge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/seedmerge/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/seedmerge/internal/adapters/driving/cli"
	"github.com/custodia-labs/seedmerge/internal/connectors/filesystem"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
	"github.com/custodia-labs/seedmerge/internal/core/services"
	"github.com/custodia-labs/seedmerge/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters into the core services.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	store, err := sqlite.NewStore(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("database at %s, config at %s", store.Path(), configStore.Path())

	source := filesystem.NewCSVSource()
	states := store.StateStore()

	settings := services.NewSettingsService(configStore)
	mapping := services.NewMappingService(source, store.ColumnMappingStore(), settings)
	match := services.NewMatchService(states, settings)
	merge := services.NewMergeService(states, settings)

	return &cli.Services{
		Settings: settings,
		Mapping:  mapping,
		Import:   services.NewImportService(source, states, mapping, match, merge),
		Match:    match,
		Merge:    merge,
		Watcher: func(root string) driven.FileWatcher {
			return filesystem.New(root)
		},
		Close: store.Close,
	}, nil
}
