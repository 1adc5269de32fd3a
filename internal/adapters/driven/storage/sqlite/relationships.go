package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

var relationshipTables = []string{"measures", "scenarios", "simulations", "building_files"}

func deleteRelationships(ctx context.Context, tx *sql.Tx, stateID string) error {
	for _, table := range relationshipTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE state_id = ?", stateID); err != nil {
			return fmt.Errorf("deleting %s: %w", table, err)
		}
	}
	return nil
}

// saveRelationships replaces the stored relationships of a state with
// its current lists. List order is kept through the position column.
func saveRelationships(ctx context.Context, tx *sql.Tx, holder domain.RelationshipHolder) error {
	stateID := holder.ID()
	if err := deleteRelationships(ctx, tx, stateID); err != nil {
		return err
	}

	for i, m := range holder.MeasureList() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO measures (state_id, id, position, measure_id, name, description,
				application_scale, implementation_status, cost_total_first, annual_savings,
				created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, stateID, m.ID, i, m.MeasureID, m.Name, m.Description,
			m.ApplicationScale, m.ImplementationStatus, m.CostTotalFirst, m.AnnualSavings,
			formatTime(m.Created), formatTime(m.Modified))
		if err != nil {
			return fmt.Errorf("saving measure %s: %w", m.ID, err)
		}
	}

	for i, sc := range holder.ScenarioList() {
		ids, err := json.Marshal(sc.MeasureIDs)
		if err != nil {
			return fmt.Errorf("marshalling scenario measures: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO scenarios (state_id, id, position, name, description, temporal_status,
				measure_ids, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, stateID, sc.ID, i, sc.Name, sc.Description, sc.TemporalStatus,
			string(ids), formatTime(sc.Created), formatTime(sc.Modified))
		if err != nil {
			return fmt.Errorf("saving scenario %s: %w", sc.ID, err)
		}
	}

	for i, sim := range holder.SimulationList() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO simulations (state_id, id, position, scenario_id, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, stateID, sim.ID, i, sim.ScenarioID, formatTime(sim.Created), formatTime(sim.Modified))
		if err != nil {
			return fmt.Errorf("saving simulation %s: %w", sim.ID, err)
		}
	}

	for i, f := range holder.BuildingFileList() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO building_files (state_id, id, position, filename, file_type, created_at, modified_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, stateID, f.ID, i, f.Filename, f.FileType, formatTime(f.Created), formatTime(f.Modified))
		if err != nil {
			return fmt.Errorf("saving building file %s: %w", f.ID, err)
		}
	}

	return nil
}

// loadRelationships attaches stored relationships to rec when its kind carries them.
func (s *stateStore) loadRelationships(ctx context.Context, rec domain.Record) error {
	holder, ok := rec.(domain.RelationshipHolder)
	if !ok {
		return nil
	}
	holder.ResetRelationships()

	loaders := []func(context.Context, domain.RelationshipHolder) error{
		s.loadMeasures,
		s.loadScenarios,
		s.loadSimulations,
		s.loadBuildingFiles,
	}
	for _, load := range loaders {
		if err := load(ctx, holder); err != nil {
			return err
		}
	}
	return nil
}

func (s *stateStore) loadMeasures(ctx context.Context, holder domain.RelationshipHolder) error {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, measure_id, name, description, application_scale, implementation_status,
			cost_total_first, annual_savings, created_at, modified_at
		FROM measures WHERE state_id = ? ORDER BY position
	`, holder.ID())
	if err != nil {
		return fmt.Errorf("querying measures: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.Measure
		var created, modified string
		if err := rows.Scan(&m.ID, &m.MeasureID, &m.Name, &m.Description,
			&m.ApplicationScale, &m.ImplementationStatus,
			&m.CostTotalFirst, &m.AnnualSavings, &created, &modified); err != nil {
			return fmt.Errorf("scanning measure: %w", err)
		}
		if m.Created, err = parseTime(created); err != nil {
			return err
		}
		if m.Modified, err = parseTime(modified); err != nil {
			return err
		}
		if err := holder.AddMeasure(m); err != nil {
			return fmt.Errorf("loading measure %s: %w", m.ID, err)
		}
	}
	return rows.Err()
}

func (s *stateStore) loadScenarios(ctx context.Context, holder domain.RelationshipHolder) error {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, description, temporal_status, measure_ids, created_at, modified_at
		FROM scenarios WHERE state_id = ? ORDER BY position
	`, holder.ID())
	if err != nil {
		return fmt.Errorf("querying scenarios: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc domain.Scenario
		var ids, created, modified string
		if err := rows.Scan(&sc.ID, &sc.Name, &sc.Description, &sc.TemporalStatus,
			&ids, &created, &modified); err != nil {
			return fmt.Errorf("scanning scenario: %w", err)
		}
		if err := json.Unmarshal([]byte(ids), &sc.MeasureIDs); err != nil {
			return fmt.Errorf("unmarshalling scenario measures: %w", err)
		}
		if sc.Created, err = parseTime(created); err != nil {
			return err
		}
		if sc.Modified, err = parseTime(modified); err != nil {
			return err
		}
		holder.AddScenario(sc)
	}
	return rows.Err()
}

func (s *stateStore) loadSimulations(ctx context.Context, holder domain.RelationshipHolder) error {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, scenario_id, created_at, modified_at
		FROM simulations WHERE state_id = ? ORDER BY position
	`, holder.ID())
	if err != nil {
		return fmt.Errorf("querying simulations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sim domain.Simulation
		var created, modified string
		if err := rows.Scan(&sim.ID, &sim.ScenarioID, &created, &modified); err != nil {
			return fmt.Errorf("scanning simulation: %w", err)
		}
		if sim.Created, err = parseTime(created); err != nil {
			return err
		}
		if sim.Modified, err = parseTime(modified); err != nil {
			return err
		}
		holder.AddSimulation(sim)
	}
	return rows.Err()
}

func (s *stateStore) loadBuildingFiles(ctx context.Context, holder domain.RelationshipHolder) error {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, filename, file_type, created_at, modified_at
		FROM building_files WHERE state_id = ? ORDER BY position
	`, holder.ID())
	if err != nil {
		return fmt.Errorf("querying building files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f domain.BuildingFile
		var created, modified string
		if err := rows.Scan(&f.ID, &f.Filename, &f.FileType, &created, &modified); err != nil {
			return fmt.Errorf("scanning building file: %w", err)
		}
		if f.Created, err = parseTime(created); err != nil {
			return err
		}
		if f.Modified, err = parseTime(modified); err != nil {
			return err
		}
		holder.AddBuildingFile(f)
	}
	return rows.Err()
}
