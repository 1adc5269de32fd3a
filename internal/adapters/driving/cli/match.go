package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

var matchKind string

var matchCmd = &cobra.Command{
	Use:   "match <state-id>",
	Short: "Find the best existing match for a state",
	Long: `Searches stored states of the same kind by address, postal code and
identifiers and reports the candidate with the highest confidence.`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchKind, "kind", "k", "property", "record kind (property or taxlot)")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	if matchService == nil {
		return errNotConfigured("match")
	}

	kind, err := domain.ParseRecordKind(matchKind)
	if err != nil {
		return err
	}

	result, err := matchService.FindMatch(cmd.Context(), kind, args[0])
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if wantJSON(cmd) {
		return printJSON(cmd, result)
	}

	if result.MatchID == "" {
		cmd.Printf("No match found for %s (%d candidates)\n", result.StateID, result.Candidates)
		return nil
	}
	cmd.Printf("Best match for %s: %s (confidence %.3f, %d candidates)\n",
		result.StateID, result.MatchID, result.Confidence, result.Candidates)
	return nil
}
