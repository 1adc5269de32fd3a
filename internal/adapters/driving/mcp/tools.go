package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// BuildColumnMappingInput is the input schema for the build_column_mapping tool.
type BuildColumnMappingInput struct {
	Kind        string   `json:"kind" jsonschema:"record kind: property or taxlot"`
	RawColumns  []string `json:"raw_columns" jsonschema:"column headers from the import file"`
	DestColumns []string `json:"dest_columns,omitempty" jsonschema:"candidate destination fields (default: all fields of the kind)"`
}

// BuildColumnMappingOutput is the output schema for the build_column_mapping tool.
type BuildColumnMappingOutput struct {
	Columns []ColumnMatch `json:"columns"`
}

// ColumnMatch is the proposed destination of one raw column.
type ColumnMatch struct {
	Column      string  `json:"column"`
	Destination string  `json:"destination,omitempty"`
	Mapped      bool    `json:"mapped"`
	Confidence  float64 `json:"confidence"`
}

// CleanValueInput is the input schema for the clean_value tool.
type CleanValueInput struct {
	Kind   string `json:"kind" jsonschema:"record kind: property or taxlot"`
	Column string `json:"column" jsonschema:"destination field the value is written to"`
	Value  string `json:"value" jsonschema:"raw cell value"`
}

// CleanValueOutput is the output schema for the clean_value tool.
type CleanValueOutput struct {
	Value any  `json:"value"`
	Empty bool `json:"empty"`
}

// StateInput identifies a stored state.
type StateInput struct {
	Kind    string `json:"kind" jsonschema:"record kind: property or taxlot"`
	StateID string `json:"state_id" jsonschema:"identifier of the stored state"`
}

// MergeStatesInput is the input schema for the merge_states tool.
type MergeStatesInput struct {
	Kind       string `json:"kind" jsonschema:"record kind: property or taxlot"`
	ExistingID string `json:"existing_id" jsonschema:"the stored state that loses conflicts by default"`
	NewID      string `json:"new_id" jsonschema:"the incoming state that wins conflicts by default"`
}

// StateOutput describes a state returned by a tool.
type StateOutput struct {
	StateID   string         `json:"state_id"`
	Kind      string         `json:"kind"`
	Fields    map[string]any `json:"fields"`
	ExtraData map[string]any `json:"extra_data"`
}

// MatchOutput is the output schema for the find_best_match tool.
type MatchOutput struct {
	StateID    string  `json:"state_id"`
	MatchID    string  `json:"match_id,omitempty"`
	Confidence float64 `json:"confidence"`
	Candidates int     `json:"candidates"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_column_mapping",
		Description: "Propose destination fields for the columns of an import file",
	}, s.handleBuildColumnMapping)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clean_value",
		Description: "Convert a raw cell value to the declared type of its destination field",
	}, s.handleCleanValue)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "merge_states",
		Description: "Merge two stored states into a new state using the configured priorities",
	}, s.handleMergeStates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_best_match",
		Description: "Find the stored state that best matches a given state",
	}, s.handleFindBestMatch)
}

func (s *Server) handleBuildColumnMapping(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BuildColumnMappingInput,
) (*mcp.CallToolResult, BuildColumnMappingOutput, error) {
	kind, err := domain.ParseRecordKind(input.Kind)
	if err != nil {
		return nil, BuildColumnMappingOutput{}, err
	}

	mapping, err := s.ports.Mapping.ProposeColumns(ctx, kind, input.RawColumns, input.DestColumns)
	if err != nil {
		return nil, BuildColumnMappingOutput{}, fmt.Errorf("proposing mapping: %w", err)
	}

	output := BuildColumnMappingOutput{Columns: make([]ColumnMatch, 0, len(mapping))}
	for _, col := range domain.SortedKeys(mapping) {
		e := mapping[col]
		output.Columns = append(output.Columns, ColumnMatch{
			Column:      col,
			Destination: e.Field,
			Mapped:      e.Mapped,
			Confidence:  e.Confidence,
		})
	}

	return nil, output, nil
}

func (s *Server) handleCleanValue(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CleanValueInput,
) (*mcp.CallToolResult, CleanValueOutput, error) {
	kind, err := domain.ParseRecordKind(input.Kind)
	if err != nil {
		return nil, CleanValueOutput{}, err
	}

	v, err := s.ports.Mapping.Clean(kind, input.Column, input.Value)
	if err != nil {
		return nil, CleanValueOutput{}, fmt.Errorf("cleaning value: %w", err)
	}

	return nil, CleanValueOutput{Value: v, Empty: v == nil}, nil
}

func (s *Server) handleMergeStates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MergeStatesInput,
) (*mcp.CallToolResult, StateOutput, error) {
	if s.ports.Merge == nil {
		return nil, StateOutput{}, errServiceUnavailable
	}

	kind, err := domain.ParseRecordKind(input.Kind)
	if err != nil {
		return nil, StateOutput{}, err
	}

	merged, err := s.ports.Merge.Merge(ctx, kind, input.ExistingID, input.NewID)
	if err != nil {
		return nil, StateOutput{}, fmt.Errorf("merging states: %w", err)
	}

	return nil, stateOutput(merged), nil
}

func (s *Server) handleFindBestMatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StateInput,
) (*mcp.CallToolResult, MatchOutput, error) {
	if s.ports.Match == nil {
		return nil, MatchOutput{}, errServiceUnavailable
	}

	kind, err := domain.ParseRecordKind(input.Kind)
	if err != nil {
		return nil, MatchOutput{}, err
	}

	result, err := s.ports.Match.FindMatch(ctx, kind, input.StateID)
	if err != nil {
		return nil, MatchOutput{}, fmt.Errorf("finding match: %w", err)
	}

	return nil, MatchOutput{
		StateID:    result.StateID,
		MatchID:    result.MatchID,
		Confidence: result.Confidence,
		Candidates: result.Candidates,
	}, nil
}

func stateOutput(rec domain.Record) StateOutput {
	return StateOutput{
		StateID:   rec.ID(),
		Kind:      rec.Kind().String(),
		Fields:    domain.PopulatedFields(rec),
		ExtraData: rec.ExtraData(),
	}
}
