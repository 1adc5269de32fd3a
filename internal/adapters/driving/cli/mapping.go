package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

var (
	mappingKind   string
	mappingOutput string
	mappingFormat string
)

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Propose and inspect column mappings",
	Long: `Column mappings connect the headers of an import file to canonical
fields. Propose a mapping, review it in an editor, then pass it to import.`,
}

var mappingProposeCmd = &cobra.Command{
	Use:   "propose <file>",
	Short: "Propose a column mapping for an import file",
	Long: `Reads the header of an import file and proposes a destination field for
every column. Known Portfolio Manager headers and previously saved mappings
take precedence over fuzzy matches.

Examples:
  seedmerge mapping propose buildings.csv
  seedmerge mapping propose lots.csv --kind taxlot -o lots.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runMappingPropose,
}

var mappingShowCmd = &cobra.Command{
	Use:   "show [kind]",
	Short: "Show the saved column mapping of a record kind",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMappingShow,
}

func init() {
	mappingProposeCmd.Flags().StringVarP(&mappingKind, "kind", "k", "property", "record kind (property or taxlot)")
	mappingProposeCmd.Flags().StringVarP(&mappingOutput, "output", "o", "", "write the mapping to a file (.yaml or .json)")
	mappingProposeCmd.Flags().StringVar(&mappingFormat, "format", "", "print the mapping as yaml or json")
	mappingShowCmd.Flags().StringVar(&mappingFormat, "format", "", "print the mapping as yaml or json")
	mappingCmd.AddCommand(mappingProposeCmd)
	mappingCmd.AddCommand(mappingShowCmd)
	rootCmd.AddCommand(mappingCmd)
}

func runMappingPropose(cmd *cobra.Command, args []string) error {
	if mappingService == nil {
		return errNotConfigured("mapping")
	}

	kind, err := domain.ParseRecordKind(mappingKind)
	if err != nil {
		return err
	}

	mf, err := mappingService.Propose(cmd.Context(), args[0], kind)
	if err != nil {
		return fmt.Errorf("propose mapping: %w", err)
	}

	if mappingOutput != "" {
		if err := writeMappingFile(mappingOutput, mf); err != nil {
			return err
		}
		cmd.Printf("Wrote mapping for %d columns to %s\n", len(mf.Mapping), mappingOutput)
		return nil
	}

	return outputMapping(cmd, mf)
}

func runMappingShow(cmd *cobra.Command, args []string) error {
	if mappingService == nil {
		return errNotConfigured("mapping")
	}

	kind := domain.KindProperty
	if len(args) > 0 {
		var err error
		if kind, err = domain.ParseRecordKind(args[0]); err != nil {
			return err
		}
	}

	mapping, err := mappingService.Show(cmd.Context(), kind)
	if err != nil {
		return fmt.Errorf("show mapping: %w", err)
	}

	return outputMapping(cmd, &domain.MappingFile{Kind: kind, Mapping: mapping})
}

func outputMapping(cmd *cobra.Command, mf *domain.MappingFile) error {
	format := mappingFormat
	if format == "" && wantJSON(cmd) {
		format = formatJSON
	}
	if format != "" {
		return encodeMappingFile(cmd.OutOrStdout(), mf, format)
	}

	cmd.Printf("Column mapping (%s)\n", mf.Kind)
	printMappingTable(cmd, mf.Mapping)
	return nil
}

func writeMappingFile(path string, mf *domain.MappingFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mapping file: %w", err)
	}
	if err := encodeMappingFile(f, mf, formatForPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
