// Package storage persists the two interval durations between sessions.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"focusdial/internal/core/model"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Slot names in the settings file. Values are base-10 seconds as text.
const (
	KeyFocusTime = "focusTime"
	KeyBreakTime = "breakTime"
)

// LoadTimerConfig reads persisted durations from the user config dir.
// A missing file or missing slot keeps the default for that slot.
func LoadTimerConfig(appName string) (model.TimerConfig, error) {
	path, err := resolveConfigPath(appName)
	if err != nil {
		return model.DefaultTimerConfig(), err
	}
	return LoadTimerConfigFrom(path)
}

// LoadTimerConfigFrom reads persisted durations from an explicit path.
func LoadTimerConfigFrom(path string) (model.TimerConfig, error) {
	config := model.DefaultTimerConfig()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read settings file: %w", err)
	}

	slots := map[string]string{}
	if err := yaml.Unmarshal(rawData, &slots); err != nil {
		return config, fmt.Errorf("parse settings yaml: %w", err)
	}

	if seconds, ok := parseSeconds(slots[KeyFocusTime]); ok {
		config.FocusDuration = seconds
	}
	if seconds, ok := parseSeconds(slots[KeyBreakTime]); ok {
		config.BreakDuration = seconds
	}
	return config, nil
}

// SaveTimerConfig writes both duration slots to the user config dir.
func SaveTimerConfig(appName string, config model.TimerConfig) error {
	path, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveTimerConfigTo(path, config)
}

// SaveTimerConfigTo writes both duration slots to an explicit path.
func SaveTimerConfigTo(path string, config model.TimerConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	slots := map[string]string{
		KeyFocusTime: strconv.Itoa(int(config.FocusDuration / time.Second)),
		KeyBreakTime: strconv.Itoa(int(config.BreakDuration / time.Second)),
	}

	serialized, err := yaml.Marshal(slots)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// parseSeconds accepts only positive base-10 integers; anything else
// keeps the caller's default.
func parseSeconds(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return time.Duration(parsed) * time.Second, true
}
