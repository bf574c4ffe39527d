package tui

import (
	"github.com/rgehrsitz/sipcalc/internal/compare"
	"github.com/rgehrsitz/sipcalc/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneScenarios Scene = iota
	SceneExplorer
	SceneResults
	SceneCompare
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneScenarios:
		return "Scenarios"
	case SceneExplorer:
		return "Explorer"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals the scenario file has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ComparisonCompleteMsg signals a template comparison has finished
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
