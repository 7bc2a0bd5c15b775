package speech

import "strings"

// MergeOptions layers override on top of base. Only fields whose Set flag is
// raised in override replace the base value.
func MergeOptions(base, override Options) Options {
	result := base

	if override.LanguageSet {
		result.Language = override.Language
		result.LanguageSet = true
	}
	if override.ThreadsSet {
		result.Threads = override.Threads
		result.ThreadsSet = true
	}
	if override.InitialPromptSet {
		result.InitialPrompt = override.InitialPrompt
		result.InitialPromptSet = true
	}
	if override.TemperatureSet {
		result.Temperature = override.Temperature
		result.TemperatureSet = true
	}
	if override.TemperatureFloorSet {
		result.TemperatureFloor = override.TemperatureFloor
		result.TemperatureFloorSet = true
	}

	return result
}

// NormalizeDefaults trims string fields and raises the Set flags for any
// default option that carries a value, so backends can treat defaults and
// overrides uniformly.
func NormalizeDefaults(o Options) Options {
	if strings.TrimSpace(o.Language) != "" {
		o.Language = strings.TrimSpace(o.Language)
		o.LanguageSet = true
	}
	if o.ThreadsSet || o.Threads > 0 {
		o.ThreadsSet = true
	}
	if strings.TrimSpace(o.InitialPrompt) != "" {
		o.InitialPrompt = strings.TrimSpace(o.InitialPrompt)
		o.InitialPromptSet = true
	}
	return o
}
