package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// wantJSON reports whether output should be JSON: --json was given or
// stdout is a file or pipe rather than a terminal.
func wantJSON(cmd *cobra.Command) bool {
	if jsonOutput {
		return true
	}
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return !term.IsTerminal(int(f.Fd()))
	}
	return false
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printMappingTable prints one line per raw column in sorted order.
func printMappingTable(cmd *cobra.Command, mapping domain.ColumnMapping) {
	if len(mapping) == 0 {
		cmd.Println("No columns mapped.")
		return
	}

	width := 0
	for col := range mapping {
		width = max(width, len(col))
	}

	for _, col := range domain.SortedKeys(mapping) {
		e := mapping[col]
		dest := "(none)"
		if e.Mapped {
			dest = e.Field
		}
		cmd.Printf("  %-*s  ->  %s (%.0f)\n", width, col, dest, e.Confidence)
	}
}

// printState prints the populated fields and extra data of a state.
func printState(cmd *cobra.Command, rec domain.Record) {
	cmd.Printf("State %s (%s)\n", rec.ID(), rec.Kind())

	fields := domain.PopulatedFields(rec)
	for _, name := range domain.SortedKeys(fields) {
		cmd.Printf("  %s: %v\n", name, fields[name])
	}

	extra := rec.ExtraData()
	if len(extra) == 0 {
		return
	}
	cmd.Println("  extra_data:")
	for _, k := range domain.SortedKeys(extra) {
		cmd.Printf("    %s: %v\n", k, extra[k])
	}
}

// stateJSON is the JSON shape of a state in command output.
type stateJSON struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Fields    map[string]any `json:"fields"`
	ExtraData map[string]any `json:"extra_data"`
}

func toStateJSON(rec domain.Record) stateJSON {
	return stateJSON{
		ID:        rec.ID(),
		Kind:      rec.Kind().String(),
		Fields:    domain.PopulatedFields(rec),
		ExtraData: rec.ExtraData(),
	}
}
