package mcp

import (
	"github.com/custodia-labs/seedmerge/internal/core/ports/driving"
)

// Ports are the services the MCP tools call into. Mapping is mandatory;
// a tool whose service is nil answers with errServiceUnavailable.
type Ports struct {
	Mapping  driving.MappingService
	Match    driving.MatchService
	Merge    driving.MergeService
	Settings driving.SettingsService
}

// Validate reports a missing mapping service.
func (p *Ports) Validate() error {
	if p == nil || p.Mapping == nil {
		return ErrMissingMappingService
	}
	return nil
}
