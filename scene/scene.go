// Package scene loads and saves the scenes trigger zones live in: grid size,
// zones and tokens, plus the tengo scripts zones can run.
package scene

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/1000nettles/heywait/collision"
)

var ErrInvalidScene = errors.New("scene: invalid scene")

type Scene struct {
	Name     string      `yaml:"name" json:"name"`
	GridSize float64     `yaml:"grid_size" json:"grid_size"`
	Width    float64     `yaml:"width" json:"width"`
	Height   float64     `yaml:"height" json:"height"`
	Zones    []ZoneSpec  `yaml:"zones" json:"zones"`
	Tokens   []TokenSpec `yaml:"tokens" json:"tokens"`
}

type ZoneSpec struct {
	ID        string  `yaml:"id" json:"id"`
	Name      string  `yaml:"name,omitempty" json:"name,omitempty"`
	X         float64 `yaml:"x" json:"x"`
	Y         float64 `yaml:"y" json:"y"`
	Width     float64 `yaml:"width" json:"width"`
	Height    float64 `yaml:"height" json:"height"`
	Unlimited bool    `yaml:"unlimited,omitempty" json:"unlimited,omitempty"`
	Triggered bool    `yaml:"triggered,omitempty" json:"triggered,omitempty"`
	Disabled  bool    `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Script    string  `yaml:"script,omitempty" json:"script,omitempty"`
}

// Zone returns the validated collision rectangle of the spec.
func (z ZoneSpec) Zone() (collision.Zone, error) {
	return collision.NewZone(z.X, z.Y, z.Width, z.Height, z.Unlimited)
}

type TokenSpec struct {
	Name   string  `yaml:"name" json:"name"`
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" json:"height,omitempty"`
}

// Size returns the token footprint in grid units; unset sizes mean one cell.
func (t TokenSpec) Size() (w, h float64) {
	w, h = t.Width, t.Height
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	return w, h
}

func (s *Scene) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil scene", ErrInvalidScene)
	}
	if s.GridSize <= 0 {
		return fmt.Errorf("%w: grid_size must be positive, got %g", ErrInvalidScene, s.GridSize)
	}

	zoneIDs := make(map[string]struct{}, len(s.Zones))
	for i, z := range s.Zones {
		if z.ID == "" {
			return fmt.Errorf("%w: zone %d has no id", ErrInvalidScene, i)
		}
		if _, dup := zoneIDs[z.ID]; dup {
			return fmt.Errorf("%w: duplicate zone id %q", ErrInvalidScene, z.ID)
		}
		zoneIDs[z.ID] = struct{}{}
		if _, err := z.Zone(); err != nil {
			return fmt.Errorf("%w: zone %q: %w", ErrInvalidScene, z.ID, err)
		}
	}

	names := make(map[string]struct{}, len(s.Tokens))
	for i, t := range s.Tokens {
		if t.Name == "" {
			return fmt.Errorf("%w: token %d has no name", ErrInvalidScene, i)
		}
		if _, dup := names[t.Name]; dup {
			return fmt.Errorf("%w: duplicate token name %q", ErrInvalidScene, t.Name)
		}
		names[t.Name] = struct{}{}
		w, h := t.Size()
		fp := collision.Footprint{WidthUnits: w, HeightUnits: h, GridSize: s.GridSize}
		if err := fp.Validate(); err != nil {
			return fmt.Errorf("%w: token %q: %w", ErrInvalidScene, t.Name, err)
		}
	}
	return nil
}

func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}
