package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario is a cart behavior scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is an optional CUE catalog used to fill in add steps that
	// only name an id. Resolved relative to the scenario file.
	Catalog string `yaml:"catalog,omitempty"`

	// Shop is the recipient used by message assertions.
	Shop string `yaml:"shop,omitempty"`

	// Initial is stored under the cart key before the first load.
	// It may be malformed on purpose.
	Initial *string `yaml:"initial,omitempty"`

	// Steps are executed in order against one store.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final cart and backend.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one operation on the store or backend.
type Step struct {
	Op    string `yaml:"op"`
	ID    string `yaml:"id,omitempty"`
	Name  string `yaml:"name,omitempty"`
	Image string `yaml:"image,omitempty"`
	Qty   int    `yaml:"qty,omitempty"`
	Delta int    `yaml:"delta,omitempty"`

	// Price overrides the catalog price when set, including to 0.
	Price *int64 `yaml:"price,omitempty"`

	// Expect checks the step outcome. If nil the step must not fail.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect is the expected outcome of a step.
type Expect struct {
	// Panel is keep, open or close. Empty skips the check.
	Panel string `yaml:"panel,omitempty"`

	// Error is the expected cart error code, e.g. PERSIST_FAILED.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the final state.
type Assertion struct {
	Type string `yaml:"type"`

	// Items is the expected cart, in order (items).
	Items []ItemExpect `yaml:"items,omitempty"`

	// Value is the expected number (total, item_count).
	Value *int64 `yaml:"value,omitempty"`

	// Empty is the expected IsEmpty result (empty).
	Empty *bool `yaml:"empty,omitempty"`

	// Lines are the expected message lines (message).
	Lines []string `yaml:"lines,omitempty"`
}

// ItemExpect is one expected line item. An empty Name or nil Price is not
// checked.
type ItemExpect struct {
	ID    string `yaml:"id"`
	Qty   int    `yaml:"qty"`
	Name  string `yaml:"name,omitempty"`
	Price *int64 `yaml:"price,omitempty"`
}

func (w ItemExpect) String() string {
	s := fmt.Sprintf("%s x%d", w.ID, w.Qty)
	if w.Price != nil {
		s += fmt.Sprintf(" @%d", *w.Price)
	}
	if w.Name != "" {
		s += fmt.Sprintf(" %q", w.Name)
	}
	return s
}

// Step operation names.
const (
	OpAdd           = "add"
	OpChange        = "change"
	OpRemove        = "remove"
	OpClear         = "clear"
	OpReload        = "reload"
	OpFailWrites    = "fail_writes"
	OpRestoreWrites = "restore_writes"
)

// Assertion type names.
const (
	AssertItems     = "items"
	AssertTotal     = "total"
	AssertItemCount = "item_count"
	AssertEmpty     = "empty"
	AssertMessage   = "message"
	AssertPersisted = "persisted"
)

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if s.Catalog != "" && !filepath.IsAbs(s.Catalog) {
		s.Catalog = filepath.Join(filepath.Dir(path), s.Catalog)
	}
	return s, nil
}

// ParseScenario decodes and validates a scenario.
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
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion %d: %w", i, err)
		}
	}
	return nil
}

func validateStep(step Step) error {
	switch step.Op {
	case OpAdd, OpChange, OpRemove:
		if step.ID == "" {
			return fmt.Errorf("%s requires id", step.Op)
		}
	case OpClear, OpReload, OpFailWrites, OpRestoreWrites:
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertItems, AssertMessage, AssertPersisted:
	case AssertTotal, AssertItemCount:
		if a.Value == nil {
			return fmt.Errorf("%s requires value", a.Type)
		}
	case AssertEmpty:
		if a.Empty == nil {
			return fmt.Errorf("empty requires empty: true|false")
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
