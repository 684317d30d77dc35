// Package targets is the embedded database of supported LPC177x/8x parts.
package targets

import (
	_ "embed"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"lpc178x-hal/errcode"
	"lpc178x-hal/x/mathx"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets

func All() Targets {
	return targets
}

type Targets []Series

// Series holds the facts shared by every chip of a family.
type Series struct {
	Name         string   `yaml:"series"`
	CPU          string   `yaml:"cpu"`
	MaxCPUHz     uint32   `yaml:"maxCpuHz"`
	CrystalMinHz uint32   `yaml:"crystalMinHz"`
	CrystalMaxHz uint32   `yaml:"crystalMaxHz"`
	UARTs        int      `yaml:"uarts"`
	Timers       int      `yaml:"timers"`
	GPIOPorts    int      `yaml:"gpioPorts"`
	Features     []string `yaml:"features"`
	Chips        []Chip   `yaml:"chips"`
}

type Chip struct {
	Name     string `yaml:"name"`
	FlashKiB int    `yaml:"flashKiB"`
	SRAMKiB  int    `yaml:"sramKiB"`
}

// Has reports whether the series lists feature.
func (s Series) Has(feature string) bool {
	return slices.Contains(s.Features, strings.ToLower(feature))
}

// CrystalOK reports whether hz is a usable main oscillator frequency.
func (s Series) CrystalOK(hz uint32) bool {
	return mathx.Between(hz, s.CrystalMinHz, s.CrystalMaxHz)
}

func (t Targets) FindBySeries(name string) (Series, error) {
	i := slices.IndexFunc(t, func(s Series) bool { return s.Name == strings.ToLower(name) })
	if i < 0 {
		return Series{}, errcode.New(errcode.UnknownChip, "targets", "series "+name+" not found")
	}
	return t[i], nil
}

// FindByChip returns the chip and its series.
func (t Targets) FindByChip(name string) (Series, Chip, error) {
	name = strings.ToLower(name)
	for _, s := range t {
		i := slices.IndexFunc(s.Chips, func(c Chip) bool { return c.Name == name })
		if i >= 0 {
			return s, s.Chips[i], nil
		}
	}
	return Series{}, Chip{}, errcode.New(errcode.UnknownChip, "targets", "chip "+name+" not found")
}

// Chips lists every chip name, sorted.
func (t Targets) Chips() []string {
	var out []string
	for _, s := range t {
		for _, c := range s.Chips {
			out = append(out, c.Name)
		}
	}
	slices.Sort(out)
	return out
}

func init() {
	var t struct {
		Elements []Series `yaml:"targets"`
	}
	if err := yaml.Unmarshal(rawTargets, &t); err != nil {
		panic(err)
	}

	targets = t.Elements
}
