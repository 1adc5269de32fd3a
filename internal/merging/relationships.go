package merging

import (
	"errors"

	"github.com/google/uuid"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// relationships holds both states' lists, read before merged is touched
// so that merging into one of the inputs copies nothing twice.
type relationships struct {
	measures1, measures2       []domain.Measure
	scenarios1, scenarios2     []domain.Scenario
	files1, files2             []domain.BuildingFile
	simulations1, simulations2 []domain.Simulation
}

func snapshotRelationships(state1, state2 domain.Record) *relationships {
	h1, ok1 := state1.(domain.RelationshipHolder)
	h2, ok2 := state2.(domain.RelationshipHolder)
	if !ok1 || !ok2 {
		return nil
	}
	return &relationships{
		measures1:    append([]domain.Measure(nil), h1.MeasureList()...),
		measures2:    append([]domain.Measure(nil), h2.MeasureList()...),
		scenarios1:   append([]domain.Scenario(nil), h1.ScenarioList()...),
		scenarios2:   append([]domain.Scenario(nil), h2.ScenarioList()...),
		files1:       append([]domain.BuildingFile(nil), h1.BuildingFileList()...),
		files2:       append([]domain.BuildingFile(nil), h2.BuildingFileList()...),
		simulations1: append([]domain.Simulation(nil), h1.SimulationList()...),
		simulations2: append([]domain.Simulation(nil), h2.SimulationList()...),
	}
}

// copyRelationships re-parents relationships onto merged with fresh IDs.
// Timestamps are kept. Measures that duplicate an already copied measure
// are not copied again; unique-key collisions are logged and skipped.
func copyRelationships(merged domain.RelationshipHolder, rels *relationships) {
	merged.ResetRelationships()

	measureIDs := make(map[string]string)
	var copied []domain.Measure

	for _, list := range [][]domain.Measure{rels.measures1, rels.measures2} {
		for _, m := range list {
			if id, ok := equivalentMeasure(copied, m); ok {
				measureIDs[m.ID] = id
				continue
			}

			c := m
			c.ID = uuid.NewString()
			if err := merged.AddMeasure(c); err != nil {
				if errors.Is(err, domain.ErrAlreadyExists) {
					log.Warn("skipping duplicate %v", err)
					if id, ok := sameKeyMeasure(copied, m); ok {
						measureIDs[m.ID] = id
					}
					continue
				}
				log.Error("copy measure %s: %v", m.MeasureID, err)
				continue
			}
			copied = append(copied, c)
			measureIDs[m.ID] = c.ID
		}
	}

	scenarioIDs := make(map[string]string)
	copyScenario := func(s domain.Scenario) {
		c := s
		c.ID = uuid.NewString()
		c.MeasureIDs = nil
		seen := make(map[string]struct{})
		for _, id := range s.MeasureIDs {
			newID, ok := measureIDs[id]
			if !ok {
				continue
			}
			if _, dup := seen[newID]; dup {
				continue
			}
			seen[newID] = struct{}{}
			c.MeasureIDs = append(c.MeasureIDs, newID)
		}
		merged.AddScenario(c)
		scenarioIDs[s.ID] = c.ID
	}

	for _, s := range rels.scenarios2 {
		if !s.HasMeasures() {
			copyScenario(s)
		}
	}
	for _, list := range [][]domain.Scenario{rels.scenarios1, rels.scenarios2} {
		for _, s := range list {
			if !s.HasMeasures() {
				continue
			}
			if _, done := scenarioIDs[s.ID]; done {
				continue
			}
			copyScenario(s)
		}
	}

	for _, list := range [][]domain.BuildingFile{rels.files1, rels.files2} {
		for _, f := range list {
			c := f
			c.ID = uuid.NewString()
			merged.AddBuildingFile(c)
		}
	}

	for _, list := range [][]domain.Simulation{rels.simulations1, rels.simulations2} {
		for _, s := range list {
			c := s
			c.ID = uuid.NewString()
			c.ScenarioID = scenarioIDs[s.ScenarioID]
			merged.AddSimulation(c)
		}
	}
}

func equivalentMeasure(copied []domain.Measure, m domain.Measure) (string, bool) {
	for _, c := range copied {
		if c.Equivalent(m) {
			return c.ID, true
		}
	}
	return "", false
}

func sameKeyMeasure(copied []domain.Measure, m domain.Measure) (string, bool) {
	for _, c := range copied {
		if c.UniqueKey() == m.UniqueKey() {
			return c.ID, true
		}
	}
	return "", false
}
