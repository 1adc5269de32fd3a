package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

var mergeKind string

var mergeCmd = &cobra.Command{
	Use:   "merge <existing-id> <new-id>",
	Short: "Merge two stored states",
	Long: `Merges two stored states into a new state. Conflicts are decided by the
configured merge priorities; fields without a priority favour the new state.
Both input states are removed.`,
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeKind, "kind", "k", "property", "record kind (property or taxlot)")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if mergeService == nil {
		return errNotConfigured("merge")
	}

	kind, err := domain.ParseRecordKind(mergeKind)
	if err != nil {
		return err
	}

	merged, err := mergeService.Merge(cmd.Context(), kind, args[0], args[1])
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	if wantJSON(cmd) {
		return printJSON(cmd, toStateJSON(merged))
	}

	cmd.Printf("Merged %s and %s\n", args[0], args[1])
	printState(cmd, merged)
	return nil
}
