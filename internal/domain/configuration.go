package domain

import "fmt"

// Scenario is one named plan inside a configuration file
type Scenario struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Plan        PlanConfiguration `yaml:"plan" json:"plan"`
}

// Configuration is the top-level structure of a scenario file
type Configuration struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// FindScenario returns the scenario with the given name
func (c *Configuration) FindScenario(name string) (*Scenario, error) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %q not found", name)
}

// ScenarioNames lists scenario names in file order
func (c *Configuration) ScenarioNames() []string {
	names := make([]string, 0, len(c.Scenarios))
	for _, s := range c.Scenarios {
		names = append(names, s.Name)
	}
	return names
}

// DeepCopy returns a copy of the scenario that can be mutated freely
func (s Scenario) DeepCopy() Scenario {
	cp := s
	cp.Plan = s.Plan.DeepCopy()
	return cp
}
