package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for seedmerge resources.
	uriScheme = "seedmerge://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Merge priorities, mapping threshold and match confidence",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "mappings/{kind}",
		Name:        "column-mapping",
		Description: "The saved column mapping of a record kind",
		MIMEType:    "application/json",
	}, s.handleMappingResource)
}

// settingsView is the JSON shape of the settings resource.
type settingsView struct {
	Priorities              domain.PriorityConfig `json:"priorities"`
	RecognizeEmpty          []string              `json:"recognize_empty"`
	RecognizeEmptyExtraData []string              `json:"recognize_empty_extra_data"`
	IgnoreMergeProtection   bool                  `json:"ignore_merge_protection"`
	MappingThreshold        int                   `json:"mapping_threshold"`
	MatchMinimumConfidence  float64               `json:"match_min_confidence"`
}

// handleSettingsResource returns the current settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	view := settingsView{
		Priorities:              settings.Merge.Priorities,
		RecognizeEmpty:          domain.SortedKeys(settings.Merge.RecognizeEmpty.Fields),
		RecognizeEmptyExtraData: domain.SortedKeys(settings.Merge.RecognizeEmpty.ExtraData),
		IgnoreMergeProtection:   settings.Merge.IgnoreMergeProtection,
		MappingThreshold:        settings.Mapping.Threshold,
		MatchMinimumConfidence:  settings.Match.MinConfidence,
	}

	return jsonResource(req.Params.URI, view)
}

// handleMappingResource returns the saved mapping of a kind.
func (s *Server) handleMappingResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind, err := domain.ParseRecordKind(extractKind(req.Params.URI))
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	mapping, err := s.ports.Mapping.Show(ctx, kind)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting mapping: %w", err)
	}

	return jsonResource(req.Params.URI, domain.MappingFile{Kind: kind, Mapping: mapping})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractKind extracts the kind from a URI like seedmerge://mappings/{kind}.
func extractKind(uri string) string {
	const prefix = uriScheme + "mappings/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
