package config

import (
	"fmt"
	"strings"
)

// FieldIssue is a single strict-validation failure
type FieldIssue struct {
	Scenario string `json:"scenario,omitempty"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (fi FieldIssue) String() string {
	if fi.Scenario == "" {
		return fmt.Sprintf("%s: %s", fi.Field, fi.Message)
	}
	return fmt.Sprintf("scenario %q: %s: %s", fi.Scenario, fi.Field, fi.Message)
}

// ConfigurationError collects every issue found by strict validation
type ConfigurationError struct {
	Issues []FieldIssue
}

func (e *ConfigurationError) Error() string {
	switch len(e.Issues) {
	case 0:
		return "invalid configuration"
	case 1:
		return "invalid configuration: " + e.Issues[0].String()
	}
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, "  - "+issue.String())
	}
	return fmt.Sprintf("invalid configuration (%d issues):\n%s", len(e.Issues), strings.Join(lines, "\n"))
}
