package config

import (
	"fmt"
	"strings"
)

const (
	KeyAgentCommand      = "agent.command"
	KeyAgentArgs         = "agent.args"
	KeyExecutorMaxWorker = "executor.max-workers"
	KeyTemplatesDir      = "templates.dir"
	KeyUIMode            = "ui.mode"
	KeyLogLevel          = "log.level"
	KeyLogFormat         = "log.format"
	KeyLogFile           = "log.file"
)

type KeyDescription struct {
	Key         string
	Type        string
	Description string
	Example     string
	Default     string
}

var keyDescriptions = []KeyDescription{
	{
		Key:         KeyAgentCommand,
		Type:        "String (executable name or path)",
		Description: "The agent executable every task is sent to. It is resolved against PATH.",
		Example:     "codex-swarm config set agent.command codex",
		Default:     "codex",
	},
	{
		Key:         KeyAgentArgs,
		Type:        "List of strings",
		Description: "Arguments placed before the task description when the agent is launched.",
		Example:     "codex-swarm config set agent.args \"exec --full-auto\"",
	},
	{
		Key:         KeyExecutorMaxWorker,
		Type:        "Integer",
		Description: "Maximum number of agents running at the same time. 0 runs every task at once.",
		Example:     "codex-swarm config set executor.max-workers 4",
		Default:     "0",
	},
	{
		Key:         KeyTemplatesDir,
		Type:        "String (directory)",
		Description: "Directory holding prompt templates, one sub directory with a PROMPT.txt per\n  template. Relative paths are resolved against the working directory.",
		Example:     "codex-swarm config set templates.dir ~/.swarm",
		Default:     ".swarm",
	},
	{
		Key:         KeyUIMode,
		Type:        "String (auto, menu, line)",
		Description: "How menus are rendered. auto picks the menu UI when stdin is a terminal.",
		Example:     "codex-swarm config set ui.mode line",
		Default:     "auto",
	},
	{
		Key:         KeyLogLevel,
		Type:        "String (debug, info, warn, error)",
		Description: "Minimum level of log records.",
		Example:     "codex-swarm config set log.level debug",
		Default:     "warn",
	},
	{
		Key:         KeyLogFormat,
		Type:        "String (text, json)",
		Description: "Encoding of log records.",
		Example:     "codex-swarm config set log.format json",
		Default:     "text",
	},
	{
		Key:         KeyLogFile,
		Type:        "String (file path)",
		Description: "Write logs to this file instead of stderr. The file is rotated at 10 MB.",
		Example:     "codex-swarm config set log.file /tmp/codex-swarm.log",
	},
}

func SupportedKeys() []string {
	keys := make([]string, 0, len(keyDescriptions))
	for _, description := range keyDescriptions {
		keys = append(keys, description.Key)
	}
	return keys
}

// IsSupportedKey reports whether key names a supported setting or one of its
// parent sections.
func IsSupportedKey(key string) bool {
	for _, description := range keyDescriptions {
		if description.Key == key || strings.HasPrefix(description.Key, key+".") {
			return true
		}
	}
	return false
}

func Describe(key string) KeyDescription {
	for _, description := range keyDescriptions {
		if description.Key == key {
			return description
		}
	}
	return KeyDescription{}
}

func getNestedValue(data map[string]any, key string) (any, bool) {
	keys := strings.Split(key, ".")
	current := data

	for i, k := range keys {
		if value, exists := current[k]; exists {
			if i == len(keys)-1 {
				return value, true
			}

			if nested, ok := value.(map[string]any); ok {
				current = nested
			} else {
				return nil, false
			}
		} else {
			return nil, false
		}
	}

	return nil, false
}

func setNestedValue(data map[string]any, key string, value any) error {
	keys := strings.Split(key, ".")
	for i, k := range keys {
		if k == "" {
			return fmt.Errorf("invalid key: empty path segment at position %d", i)
		}
	}
	current := data

	for i := 0; i < len(keys)-1; i++ {
		k := keys[i]
		if existing, exists := current[k]; exists {
			if nested, ok := existing.(map[string]any); ok {
				current = nested
			} else {
				return fmt.Errorf("key '%s' already exists as a non-object value", strings.Join(keys[:i+1], "."))
			}
		} else {
			newMap := make(map[string]any)
			current[k] = newMap
			current = newMap
		}
	}

	finalKey := keys[len(keys)-1]
	current[finalKey] = value

	return nil
}

func unsetNestedValue(data map[string]any, key string) error {
	keys := strings.Split(key, ".")
	current := data

	for i := 0; i < len(keys)-1; i++ {
		k := keys[i]
		if existing, exists := current[k]; exists {
			if nested, ok := existing.(map[string]any); ok {
				current = nested
			} else {
				return nil
			}
		} else {
			return nil
		}
	}

	finalKey := keys[len(keys)-1]
	delete(current, finalKey)

	cleanupEmptyMaps(data, keys[:len(keys)-1])
	return nil
}

func cleanupEmptyMaps(data map[string]any, keyPath []string) {
	if len(keyPath) == 0 {
		return
	}

	current := data
	for i := 0; i < len(keyPath)-1; i++ {
		if nested, ok := current[keyPath[i]].(map[string]any); ok {
			current = nested
		} else {
			return
		}
	}

	targetKey := keyPath[len(keyPath)-1]
	if targetMap, ok := current[targetKey].(map[string]any); ok && len(targetMap) == 0 {
		delete(current, targetKey)
		cleanupEmptyMaps(data, keyPath[:len(keyPath)-1])
	}
}

func IsLeafValue(value any) bool {
	switch value.(type) {
	case map[string]any:
		return false
	case []any:
		if arr, ok := value.([]any); ok && len(arr) > 0 {
			if _, isMap := arr[0].(map[string]any); isMap {
				return false
			}
		}
		return true
	default:
		return true
	}
}
