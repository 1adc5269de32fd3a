package domain

import (
	"fmt"
	"time"
)

// Measure is an energy conservation measure attached to a property state.
type Measure struct {
	// ID is the identity of this measure row.
	ID string

	// MeasureID references the measure catalogue entry (e.g. "lighting.retrofit_with_light_emitting_diode_technologies").
	MeasureID string

	// Name is the display name of the measure on this property.
	Name string

	// Description is free text.
	Description string

	// ApplicationScale is where the measure applies (e.g. "Entire facility").
	ApplicationScale string

	// ImplementationStatus is the lifecycle status (e.g. "Proposed", "Completed").
	ImplementationStatus string

	// CostTotalFirst is the first cost of the measure.
	CostTotalFirst float64

	// AnnualSavings is the expected annual cost savings.
	AnnualSavings float64

	// Created is when the measure was first recorded.
	Created time.Time

	// Modified is when the measure was last changed.
	Modified time.Time
}

// UniqueKey is the per-state uniqueness key of a measure.
func (m Measure) UniqueKey() string {
	return m.MeasureID + "\x00" + m.ApplicationScale + "\x00" + m.ImplementationStatus
}

// Equivalent reports whether two measures carry the same field set,
// ignoring identity.
func (m Measure) Equivalent(o Measure) bool {
	return m.MeasureID == o.MeasureID &&
		m.Name == o.Name &&
		m.Description == o.Description &&
		m.ApplicationScale == o.ApplicationScale &&
		m.ImplementationStatus == o.ImplementationStatus &&
		m.CostTotalFirst == o.CostTotalFirst &&
		m.AnnualSavings == o.AnnualSavings &&
		m.Created.Equal(o.Created) &&
		m.Modified.Equal(o.Modified)
}

// Scenario groups measures of a property into a package.
type Scenario struct {
	ID          string
	Name        string
	Description string

	// TemporalStatus is e.g. "Current" or "Post retrofit".
	TemporalStatus string

	// MeasureIDs references Measure.ID values of the owning state.
	MeasureIDs []string

	Created  time.Time
	Modified time.Time
}

// HasMeasures reports whether the scenario references any measure.
func (s Scenario) HasMeasures() bool {
	return len(s.MeasureIDs) > 0
}

// Simulation is a modelled run of a scenario.
type Simulation struct {
	ID         string
	ScenarioID string
	Created    time.Time
	Modified   time.Time
}

// BuildingFile is a source file (e.g. BuildingSync XML) that produced a state.
type BuildingFile struct {
	ID       string
	Filename string
	FileType string
	Created  time.Time
	Modified time.Time
}

// RelationshipHolder is implemented by record kinds that carry
// measures, scenarios, simulations and building files.
type RelationshipHolder interface {
	Record

	// AddMeasure attaches a measure. Returns ErrAlreadyExists if a
	// measure with the same unique key is already attached.
	AddMeasure(m Measure) error

	// AddScenario attaches a scenario.
	AddScenario(s Scenario)

	// AddSimulation attaches a simulation.
	AddSimulation(s Simulation)

	// AddBuildingFile attaches a building file.
	AddBuildingFile(f BuildingFile)

	// MeasureList returns the attached measures.
	MeasureList() []Measure

	// ScenarioList returns the attached scenarios.
	ScenarioList() []Scenario

	// SimulationList returns the attached simulations.
	SimulationList() []Simulation

	// BuildingFileList returns the attached building files.
	BuildingFileList() []BuildingFile

	// ResetRelationships detaches everything.
	ResetRelationships()
}

var _ RelationshipHolder = (*PropertyState)(nil)

// AddMeasure attaches a measure, enforcing the per-state unique key.
func (p *PropertyState) AddMeasure(m Measure) error {
	for _, existing := range p.Measures {
		if existing.UniqueKey() == m.UniqueKey() {
			return fmt.Errorf("measure %s (%s, %s): %w",
				m.MeasureID, m.ApplicationScale, m.ImplementationStatus, ErrAlreadyExists)
		}
	}
	p.Measures = append(p.Measures, m)
	return nil
}

// AddScenario attaches a scenario.
func (p *PropertyState) AddScenario(s Scenario) {
	p.Scenarios = append(p.Scenarios, s)
}

// AddSimulation attaches a simulation.
func (p *PropertyState) AddSimulation(s Simulation) {
	p.Simulations = append(p.Simulations, s)
}

// AddBuildingFile attaches a building file.
func (p *PropertyState) AddBuildingFile(f BuildingFile) {
	p.BuildingFiles = append(p.BuildingFiles, f)
}

// MeasureList returns the attached measures.
func (p *PropertyState) MeasureList() []Measure { return p.Measures }

// ScenarioList returns the attached scenarios.
func (p *PropertyState) ScenarioList() []Scenario { return p.Scenarios }

// SimulationList returns the attached simulations.
func (p *PropertyState) SimulationList() []Simulation { return p.Simulations }

// BuildingFileList returns the attached building files.
func (p *PropertyState) BuildingFileList() []BuildingFile { return p.BuildingFiles }

// ResetRelationships detaches all measures, scenarios, simulations and building files.
func (p *PropertyState) ResetRelationships() {
	p.Measures = nil
	p.Scenarios = nil
	p.Simulations = nil
	p.BuildingFiles = nil
}
