package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seedmerge/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/seedmerge/internal/connectors/filesystem"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
	"github.com/custodia-labs/seedmerge/internal/core/services"
)

// testEnv holds the stores behind the services a test runs against.
type testEnv struct {
	states   *memory.StateStore
	mappings *memory.ColumnMappingStore
	config   *memory.ConfigStore
}

// setupServices wires real services over in-memory stores and a CSV
// source, and restores the previous services when the test ends.
func setupServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		states:   memory.NewStateStore(),
		mappings: memory.NewColumnMappingStore(),
		config:   memory.NewConfigStore(),
	}
	source := filesystem.NewCSVSource()
	settings := services.NewSettingsService(env.config)
	mapping := services.NewMappingService(source, env.mappings, settings)
	match := services.NewMatchService(env.states, settings)
	merge := services.NewMergeService(env.states, settings)

	old := &Services{
		Settings: settingsService,
		Mapping:  mappingService,
		Import:   importService,
		Match:    matchService,
		Merge:    mergeService,
		Watcher:  newWatcher,
		Close:    closeServices,
	}
	t.Cleanup(func() { SetServices(old) })

	SetServices(&Services{
		Settings: settings,
		Mapping:  mapping,
		Import:   services.NewImportService(source, env.states, mapping, match, merge),
		Match:    match,
		Merge:    merge,
		Watcher:  func(root string) driven.FileWatcher { return filesystem.New(root) },
	})
	return env
}

// execute runs the root command with args and returns its output.
// Flag variables are reset afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	verbose, jsonOutput = false, false
	dataDir, configDir = "", ""
	mappingKind, mappingOutput, mappingFormat = "property", "", ""
	importKind, importMapping, importMerge = "", "", false
	matchKind, mergeKind = "property", "property"
	settingsExtra, settingsOff = false, false
	mcpPort = 0
}

// writeCSV writes content to name in a temporary directory.
func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const buildingsCSV = "Address 1,City,Site EUI (kBtu/ft²),Qqq\n" +
	"123 Main Street,Denver,\"1,200.5\",retrofit\n" +
	"500 Oak Ave,Boulder,Not Available,\n"
