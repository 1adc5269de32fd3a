// Package cli implements the seedmerge command line.
//
// Commands run against the driving ports held in package variables. The
// binary installs a bootstrap function that builds them from the global
// flags. Tests assign them directly.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seedmerge/internal/core/ports/driven"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driving"
	"github.com/custodia-labs/seedmerge/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose    bool
	dataDir    string
	configDir  string
	jsonOutput bool
)

// Services used by commands.
var (
	settingsService driving.SettingsService
	mappingService  driving.MappingService
	importService   driving.ImportService
	matchService    driving.MatchService
	mergeService    driving.MergeService
	newWatcher      func(root string) driven.FileWatcher
)

// Services bundles the driving ports the commands run against.
type Services struct {
	Settings driving.SettingsService
	Mapping  driving.MappingService
	Import   driving.ImportService
	Match    driving.MatchService
	Merge    driving.MergeService

	// Watcher creates a file watcher for the watch command.
	Watcher func(root string) driven.FileWatcher

	// Close releases stores. May be nil.
	Close func() error
}

// Options carries the global flag values to the bootstrap function.
type Options struct {
	DataDir   string
	ConfigDir string
	Verbose   bool
}

var (
	bootstrap     func(Options) (*Services, error)
	closeServices func() error
)

var rootCmd = &cobra.Command{
	Use:   "seedmerge",
	Short: "Map, match and merge building energy records",
	Long: `seedmerge imports building and tax-lot spreadsheets, maps their columns
onto a canonical schema, finds records that describe the same building and
merges them using configurable per-field priorities.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&dataDir, "data-dir", "", "database directory (default ~/.seedmerge/data)")
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.seedmerge)")
	flags.BoolVar(&jsonOutput, "json", false, "output as JSON")
}

// Execute runs the root command. Services are closed even when the
// command fails.
func Execute() error {
	err := rootCmd.Execute()
	if closeErr := teardown(rootCmd, nil); err == nil {
		err = closeErr
	}
	return err
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that builds services from the
// global flags before a command runs.
func SetBootstrap(fn func(Options) (*Services, error)) {
	bootstrap = fn
}

// SetServices assigns the services used by commands.
func SetServices(s *Services) {
	settingsService = s.Settings
	mappingService = s.Mapping
	importService = s.Import
	matchService = s.Match
	mergeService = s.Merge
	newWatcher = s.Watcher
	closeServices = s.Close
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	s, err := bootstrap(Options{
		DataDir:   dataDir,
		ConfigDir: configDir,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}
	SetServices(s)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// errNotConfigured builds the error returned when a command's service is missing.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
