package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
	"github.com/custodia-labs/seedmerge/internal/core/ports/driving"
)

var (
	importKind    string
	importMapping string
	importMerge   bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an energy data file",
	Long: `Maps every row of an import file onto the canonical schema and stores
the resulting states. Without --mapping a mapping is proposed from the
header. With --merge each new state is merged into its best existing match.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	addImportFlags(importCmd)
	rootCmd.AddCommand(importCmd)
}

// addImportFlags registers the flags shared by import and watch.
func addImportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&importKind, "kind", "k", "", "record kind (property or taxlot; default from mapping or property)")
	cmd.Flags().StringVarP(&importMapping, "mapping", "m", "", "reviewed mapping file (.yaml or .json)")
	cmd.Flags().BoolVar(&importMerge, "merge", false, "merge each state into its best existing match")
}

// importOptions builds import options from the import flags.
func importOptions() (driving.ImportOptions, error) {
	opts := driving.ImportOptions{Merge: importMerge}

	if importMapping != "" {
		mf, err := readMappingFile(importMapping)
		if err != nil {
			return opts, err
		}
		opts.Mapping = mf
	}

	switch {
	case importKind != "":
		kind, err := domain.ParseRecordKind(importKind)
		if err != nil {
			return opts, err
		}
		opts.Kind = kind
	case opts.Mapping == nil || opts.Mapping.Kind == "":
		opts.Kind = domain.KindProperty
	}

	return opts, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}

	opts, err := importOptions()
	if err != nil {
		return err
	}

	result, err := importService.Import(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if wantJSON(cmd) {
		return printJSON(cmd, result)
	}

	printImportResult(cmd, result)
	return nil
}

func printImportResult(cmd *cobra.Command, result *domain.ImportResult) {
	cmd.Printf("Imported %d %s states from %s", len(result.StateIDs), result.Kind, result.File)
	if result.Merged > 0 {
		cmd.Printf(" (%d merged)", result.Merged)
	}
	cmd.Println()
}
