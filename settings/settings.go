// Package settings holds the knobs a game master can turn: what happens when
// a zone fires and which marker images reflect zone state.
package settings

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("settings: invalid")

const (
	DefaultUntriggeredImage = "img/hey_wait_red.png"
	DefaultTriggeredImage   = "img/hey_wait_green.png"
	DefaultPanDurationMS    = 1000
)

type Settings struct {
	// PauseOnTrigger pauses the game when a zone fires.
	PauseOnTrigger bool `yaml:"pause_on_trigger"`
	// PanOnTrigger pans the camera to the token that fired a zone.
	PanOnTrigger  bool `yaml:"pan_on_trigger"`
	PanDurationMS int  `yaml:"pan_duration_ms"`
	// StopAtBoundary moves the token back to where it crossed into the zone
	// instead of letting it finish the move.
	StopAtBoundary   bool   `yaml:"stop_at_boundary"`
	UntriggeredImage string `yaml:"untriggered_image"`
	TriggeredImage   string `yaml:"triggered_image"`
	// GMOnly restricts zone creation and toggling to the game master.
	GMOnly bool `yaml:"gm_only"`
}

func Default() Settings {
	return Settings{
		PauseOnTrigger:   true,
		PanOnTrigger:     true,
		PanDurationMS:    DefaultPanDurationMS,
		StopAtBoundary:   true,
		UntriggeredImage: DefaultUntriggeredImage,
		TriggeredImage:   DefaultTriggeredImage,
		GMOnly:           true,
	}
}

// PanDuration returns the camera pan duration.
func (s Settings) PanDuration() time.Duration {
	return time.Duration(s.PanDurationMS) * time.Millisecond
}

// ImageFor returns the marker image for a zone in the given state.
func (s Settings) ImageFor(triggered bool) string {
	if triggered {
		return s.TriggeredImage
	}
	return s.UntriggeredImage
}

func (s Settings) Validate() error {
	if s.PanDurationMS < 0 {
		return fmt.Errorf("%w: pan_duration_ms must not be negative, got %d", ErrInvalid, s.PanDurationMS)
	}
	if s.UntriggeredImage == "" || s.TriggeredImage == "" {
		return fmt.Errorf("%w: zone images must not be empty", ErrInvalid)
	}
	return nil
}

// Parse decodes YAML over the defaults, so keys missing from data keep their
// default value.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads a settings file. An empty path yields the defaults.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: load %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: load %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
