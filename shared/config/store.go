package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/furisto/codex-swarm/shared"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const SettingsFileName = "config.yaml"

type Store struct {
	settings map[string]any
	fs       *afero.Afero
	userInfo shared.UserInfo
}

func NewStore(fs *afero.Afero, userInfo shared.UserInfo) (*Store, error) {
	store := &Store{
		settings: make(map[string]any),
		fs:       fs,
		userInfo: userInfo,
	}
	err := store.load()
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (c *Store) load() error {
	configDir, err := c.userInfo.ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to retrieve config directory: %w", err)
	}

	settingsFile := filepath.Join(configDir, SettingsFileName)

	exists, err := c.fs.Exists(settingsFile)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if !exists {
		return nil
	}

	content, err := c.fs.ReadFile(settingsFile)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var settings map[string]any
	if err := yaml.Unmarshal(content, &settings); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", settingsFile, err)
	}
	if settings != nil {
		c.settings = settings
	}

	return nil
}

func (c *Store) Get(key string) (Value, bool) {
	raw, found := getNestedValue(c.settings, key)
	if !found {
		return Value{}, false
	}

	return Value{raw: raw}, true
}

func (c *Store) String(key string) string {
	if value, found := c.Get(key); found {
		if str, ok := value.String(); ok {
			return str
		}
	}
	return Describe(key).Default
}

func (c *Store) Int(key string) int {
	if value, found := c.Get(key); found {
		if i, ok := value.Int(); ok {
			return int(i)
		}
		if str, ok := value.String(); ok {
			if i, err := strconv.Atoi(str); err == nil {
				return i
			}
		}
	}
	i, _ := strconv.Atoi(Describe(key).Default)
	return i
}

func (c *Store) Strings(key string) []string {
	value, found := c.Get(key)
	if !found {
		return nil
	}
	return value.Strings()
}

// Settings returns every leaf value keyed by its dotted path.
func (c *Store) Settings() map[string]any {
	flat := make(map[string]any)
	flatten(c.settings, "", flat)
	return flat
}

func flatten(data map[string]any, prefix string, into map[string]any) {
	for k, v := range data {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(nested, key, into)
			continue
		}
		into[key] = v
	}
}

func (c *Store) Set(key string, value any) error {
	return setNestedValue(c.settings, key, value)
}

func (c *Store) Flush() error {
	output, err := MarshalYAMLWithSpacing(c.settings)
	if err != nil {
		return err
	}

	configDir, err := c.userInfo.ConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, SettingsFileName)
	return c.fs.WriteFile(configPath, output, 0600)
}

func (c *Store) Delete(key string) error {
	err := unsetNestedValue(c.settings, key)
	if err != nil {
		return err
	}
	return nil
}

func MarshalYAMLWithSpacing(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	var result []string

	for i, line := range lines {
		if i > 0 && len(line) > 0 && !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			result = append(result, "")
		}
		result = append(result, line)
	}

	return []byte(strings.Join(result, "\n")), nil
}

type Value struct {
	raw any
}

func (v Value) String() (string, bool) {
	if str, ok := v.raw.(string); ok {
		return str, true
	}
	return "", false
}

func (v Value) Int() (int64, bool) {
	if i, ok := v.raw.(int64); ok {
		return i, true
	}
	if i, ok := v.raw.(int); ok {
		return int64(i), true
	}
	return 0, false
}

func (v Value) Float() (float64, bool) {
	if f, ok := v.raw.(float64); ok {
		return f, true
	}
	if f, ok := v.raw.(float32); ok {
		return float64(f), true
	}
	return 0, false
}

func (v Value) Bool() (bool, bool) {
	if b, ok := v.raw.(bool); ok {
		return b, true
	}
	return false, false
}

func (v Value) Strings() []string {
	switch raw := v.raw.(type) {
	case []string:
		return raw
	case []any:
		values := make([]string, 0, len(raw))
		for _, item := range raw {
			values = append(values, fmt.Sprint(item))
		}
		return values
	case string:
		return strings.Fields(raw)
	}
	return nil
}

func (v Value) Raw() any {
	return v.raw
}

