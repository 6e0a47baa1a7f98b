// Package application loads and validates the evaluation configuration and
// drives corpus evaluation.
package application

// RulesConfig is the YAML schema for the scenario rule table.
// Scenario order in the file is preserved into the rule table; the
// corpus-scoped prediction strategy depends on it.
type RulesConfig struct {
	// Version identifies the configuration schema revision.
	Version string `yaml:"version" validate:"required"`

	// Scenarios lists the spoken-command test cases in evaluation order.
	Scenarios []ScenarioConfig `yaml:"scenarios" validate:"required,min=1,dive"`
}

// ScenarioConfig is the YAML schema for one scenario rule.
type ScenarioConfig struct {
	// ID is the scenario identifier, unique across the file.
	ID int `yaml:"id" validate:"required,min=1"`

	// Intent is the expected intent label.
	Intent string `yaml:"intent" validate:"required,min=1"`

	// Keywords must all match the transcript for the intent to be
	// predicted. At least one is required.
	Keywords []string `yaml:"keywords" validate:"required,min=1,dive,min=1"`

	// Slots are the expected slot values, in file order.
	Slots []SlotConfig `yaml:"slots" validate:"dive"`
}

// SlotConfig is the YAML schema for one expected slot value.
type SlotConfig struct {
	// Key names the slot.
	Key string `yaml:"key" validate:"required,min=1"`

	// Value is the expected spoken value in normalized form.
	Value string `yaml:"value" validate:"required,min=1"`
}

// referenceEntry is the JSON schema for one ground-truth record.
type referenceEntry struct {
	// ID is the scenario id as a string, matching the dataset's id field.
	ID string `json:"id"`

	// Text is the ground-truth sentence. Blank text is a configuration
	// error rejected at load time.
	Text string `json:"text"`
}
