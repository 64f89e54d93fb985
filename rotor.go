package generator

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfig indicates a geometrically or physically invalid configuration.
	ErrConfig = errors.New("invalid configuration")
	// ErrTimeDomain indicates a time sample outside the valid range.
	ErrTimeDomain = errors.New("invalid time sample")
)

// Polarity is the pole of a rotor magnet as seen by the coils.
type Polarity int

const (
	North Polarity = 1
	South Polarity = -1
)

// Sign returns +1.0 for North and -1.0 for South.
func (p Polarity) Sign() float64 {
	return float64(p)
}

func (p Polarity) String() string {
	if p == South {
		return "S"
	}
	return "N"
}

// UnmarshalYAML accepts "N"/"S" (or "north"/"south") polarity values.
func (p *Polarity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch s {
	case "N", "n", "north":
		*p = North
	case "S", "s", "south":
		*p = South
	default:
		return fmt.Errorf("%w: unknown polarity %q", ErrConfig, s)
	}
	return nil
}

// RotorConfig describes a rotor carrying evenly spaced magnets on a circular
// path. Magnet 0 starts at 12 o'clock; positive angular velocity spins the
// rotor clockwise, matching the visual convention of the animation layer.
type RotorConfig struct {
	NumMagnets      int        `yaml:"num_magnets"`
	MagnetRadius    float64    `yaml:"magnet_radius"`
	PathRadius      float64    `yaml:"path_radius"`
	AngularVelocity float64    `yaml:"angular_velocity"`        // rad/s, positive = clockwise
	InitialAngle    float64    `yaml:"initial_angle,omitempty"` // rad, 0 defaults to pi/2 (12 o'clock)
	Polarities      []Polarity `yaml:"polarities,omitempty"`
}

// Validate fails fast on any parameter with no physical interpretation.
// Invalid geometry is never silently corrected.
func (c RotorConfig) Validate() error {
	if c.NumMagnets < 1 {
		return fmt.Errorf("%w: magnet count must be at least 1, got %d", ErrConfig, c.NumMagnets)
	}
	if c.MagnetRadius <= 0 {
		return fmt.Errorf("%w: magnet radius must be positive, got %g", ErrConfig, c.MagnetRadius)
	}
	if c.PathRadius < c.MagnetRadius {
		return fmt.Errorf("%w: path radius %g smaller than magnet radius %g", ErrConfig, c.PathRadius, c.MagnetRadius)
	}
	if w := c.InfluenceWidth(); w <= 0 || w >= math.Pi {
		return fmt.Errorf("%w: influence width %g outside (0, pi)", ErrConfig, w)
	}
	if max := c.MaxMagnets(); c.NumMagnets > max {
		return fmt.Errorf("%w: %d magnets cannot fit on the path, at most %d", ErrConfig, c.NumMagnets, max)
	}
	if len(c.Polarities) != 0 && len(c.Polarities) != c.NumMagnets {
		return fmt.Errorf("%w: %d polarities for %d magnets", ErrConfig, len(c.Polarities), c.NumMagnets)
	}
	for i, p := range c.Polarities {
		if p != North && p != South {
			return fmt.Errorf("%w: polarity of magnet %d is neither North nor South", ErrConfig, i)
		}
	}
	return nil
}

// InfluenceWidth returns the half-angle (radians) within which a magnet links
// flux through a coil. Derived from geometry as 2*magnetRadius/pathRadius, the
// angular size of a magnet on its path; a fixed default would only be valid
// for one specific radius pair.
func (c RotorConfig) InfluenceWidth() float64 {
	return 2 * c.MagnetRadius / c.PathRadius
}

// MaxMagnets returns how many magnets physically fit on the path without
// touching. Each magnet occupies an arc of 2*asin(magnetRadius/pathRadius).
func (c RotorConfig) MaxMagnets() int {
	perMagnet := 2 * math.Asin(c.MagnetRadius/c.PathRadius)
	return int(2 * math.Pi / perMagnet)
}

// initialAngle returns the starting angle of magnet 0. The zero value selects
// 12 o'clock; an exact 0 (3 o'clock) can be requested as 2*pi.
func (c RotorConfig) initialAngle() float64 {
	if c.InitialAngle == 0 {
		return math.Pi / 2
	}
	return c.InitialAngle
}

// MagnetAngle returns the angular position of magnet i at time t, normalized
// to [-pi, pi). Magnets are spaced 2*pi/NumMagnets apart.
func (c RotorConfig) MagnetAngle(i int, t float64) float64 {
	a := c.initialAngle() - float64(i)*(2*math.Pi/float64(c.NumMagnets)) - c.AngularVelocity*t
	return wrapAngle(a)
}

// MagnetPolarity returns the polarity of magnet i. Polarities alternate
// starting from North unless set explicitly on the config.
func (c RotorConfig) MagnetPolarity(i int) Polarity {
	if len(c.Polarities) == c.NumMagnets {
		return c.Polarities[i]
	}
	if i%2 == 0 {
		return North
	}
	return South
}

// Coil is a stationary pickup coil, positioned by its angular offset from
// 12 o'clock measured clockwise.
type Coil struct {
	Name   string
	Offset float64 // radians
}

// Angle returns the coil position in standard convention (0 = +x axis,
// counter-clockwise positive).
func (c Coil) Angle() float64 {
	return math.Pi/2 - c.Offset
}

// wrapAngle normalizes an angle to [-pi, pi).
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// angularDistance returns the shortest signed arc from one angle to another,
// in [-pi, pi).
func angularDistance(from, to float64) float64 {
	return wrapAngle(to - from)
}
