package ai

import (
	"sort"
	"strings"
)

// DefaultModel is used when no model is configured or the configured one is unknown.
const DefaultModel = "gemini-2.5-flash"

// ModelInfo describes a supported Gemini model.
type ModelInfo struct {
	ID          string
	DisplayName string
	Description string
}

var supportedModels = map[string]ModelInfo{
	"gemini-2.5-flash": {
		ID:          "gemini-2.5-flash",
		DisplayName: "Gemini 2.5 Flash",
		Description: "Fast general purpose model",
	},
	"gemini-2.5-flash-lite": {
		ID:          "gemini-2.5-flash-lite",
		DisplayName: "Gemini 2.5 Flash-Lite",
		Description: "Lowest latency and cost",
	},
	"gemini-2.5-pro": {
		ID:          "gemini-2.5-pro",
		DisplayName: "Gemini 2.5 Pro",
		Description: "Most capable reasoning model",
	},
	"gemini-2.0-flash": {
		ID:          "gemini-2.0-flash",
		DisplayName: "Gemini 2.0 Flash",
		Description: "Previous generation flash model",
	},
	"gemini-3-flash-preview": {
		ID:          "gemini-3-flash-preview",
		DisplayName: "Gemini 3 Flash",
		Description: "Preview of the next flash model",
	},
}

// SupportedModels returns the known models sorted by ID.
func SupportedModels() []ModelInfo {
	models := make([]ModelInfo, 0, len(supportedModels))
	for _, info := range supportedModels {
		models = append(models, info)
	}
	sort.Slice(models, func(i, j int) bool {
		return models[i].ID < models[j].ID
	})
	return models
}

// ResolveModel maps a configured model name to a supported model. The
// "models/" prefix used by the API is accepted. Unknown names resolve to
// DefaultModel and ok is false.
func ResolveModel(name string) (info ModelInfo, ok bool) {
	id := strings.TrimPrefix(strings.TrimSpace(name), "models/")
	if info, found := supportedModels[id]; found {
		return info, true
	}
	return supportedModels[DefaultModel], false
}

// DisplayName returns the human readable name for a model ID.
func DisplayName(name string) string {
	info, _ := ResolveModel(name)
	return info.DisplayName
}
