package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/morsezoo/internal/store"
)

// Scenario is a dataset with the selection cases run against it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Dataset is loaded into a fresh store before the cases run.
	Dataset store.Dataset `yaml:"dataset"`

	// Cases run in order against the same store.
	Cases []Case `yaml:"cases"`
}

// Case is one selection and its expected outcome.
type Case struct {
	Name string `yaml:"name"`

	// Radio holds "<status>:<symbol>" tokens.
	Radio []string `yaml:"radio"`

	// Permutation scopes the query when set.
	Permutation string `yaml:"permutation,omitempty"`

	Expect Expect `yaml:"expect"`
}

// Expect is the expected outcome of a case.
type Expect struct {
	// IDs are the matching graph ids in ascending order. Required; use
	// an empty list for no matches.
	IDs []int64 `yaml:"ids"`

	// Skipped lists the malformed tokens. Checked only when present.
	Skipped []string `yaml:"skipped,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Dataset.Symbols) == 0 {
		return fmt.Errorf("dataset.symbols is required and must be non-empty")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	names := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if names[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		names[c.Name] = true
		if c.Expect.IDs == nil {
			return fmt.Errorf("cases[%d]: expect.ids is required (use [] for no matches)", i)
		}
	}
	return nil
}
