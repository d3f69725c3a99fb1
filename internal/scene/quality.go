package scene

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Level orders the quality presets from cheapest to richest
type Level int

const (
	Low Level = iota
	Medium
	High
)

func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel accepts the names produced by Level.String
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	}
	return Low, fmt.Errorf("unknown quality level %q", s)
}

// Preset is the bundle of rendering knobs for one Level
type Preset struct {
	Level     Level
	NodeCount int
	Segments  int // sphere tessellation at the nearest LOD band
	Particles int
	Animate   bool
	Pulses    bool
}

// Frame-rate sampling constants shared by the monitor and the client script.
const (
	MinFPS       = 30
	SampleWindow = time.Second
)

var presets = [...]Preset{
	Low:    {Level: Low, NodeCount: 4, Segments: 8, Particles: 0, Animate: false, Pulses: false},
	Medium: {Level: Medium, NodeCount: 6, Segments: 16, Particles: 60, Animate: true, Pulses: false},
	High:   {Level: High, NodeCount: 8, Segments: 32, Particles: 150, Animate: true, Pulses: true},
}

// PresetFor returns the preset for l, clamping out-of-range levels
func PresetFor(l Level) Preset {
	if l < Low {
		l = Low
	}
	if l > High {
		l = High
	}
	return presets[l]
}

// Device is what the browser tells us about itself. Zero values mean unknown.
type Device struct {
	Cores         int
	MemoryGB      float64
	UserAgent     string
	ReducedMotion bool
}

var mobileUA = regexp.MustCompile(`(?i)android|webos|iphone|ipad|ipod|blackberry|iemobile|opera mini`)

// IsMobile reports whether the user agent looks like a phone or tablet
func IsMobile(userAgent string) bool {
	return mobileUA.MatchString(userAgent)
}

// SelectLevel maps device heuristics to a quality level
func SelectLevel(d Device) Level {
	known := func(v float64, limit float64) bool { return v > 0 && v <= limit }

	if IsMobile(d.UserAgent) || known(float64(d.Cores), 2) || known(d.MemoryGB, 2) {
		return Low
	}
	if known(float64(d.Cores), 4) || known(d.MemoryGB, 4) {
		return Medium
	}
	return High
}

// SelectQuality returns the preset for d. Reduced motion keeps the
// tessellation but turns every animation off.
func SelectQuality(d Device) Preset {
	p := PresetFor(SelectLevel(d))
	if d.ReducedMotion {
		p.Animate = false
		p.Pulses = false
	}
	return p
}
