package system

import (
	"fmt"
	"math"

	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/prefabs"
)

// DefaultWarningMs is used when a descriptor leaves warning_ms unset.
const DefaultWarningMs = 2500

// BossDescriptor is the validated, read-only form of a prefabs.BossSpec.
type BossDescriptor struct {
	Kind        component.BossKind
	Name        string
	HP          int
	Radius      float64
	MaxSpeed    float64
	MaxForce    float64
	Drag        float64
	Score       int
	Orbs        int
	WarningMs   float64
	Contact     component.ContactRule
	Spawn       prefabs.SpawnSpec
	Modes       []prefabs.ModeSpec
	Phase2Modes []prefabs.ModeSpec
	Weapons     []prefabs.BossWeaponSpec
	Params      map[string]float64
}

func NewBossDescriptor(spec prefabs.BossSpec) (*BossDescriptor, error) {
	kind, ok := component.ParseBossKind(spec.Name)
	if !ok {
		return nil, fmt.Errorf("boss: unknown boss %q", spec.Name)
	}
	if spec.HP <= 0 {
		return nil, fmt.Errorf("boss: %s: hp must be positive", spec.Name)
	}
	if spec.Radius <= 0 {
		return nil, fmt.Errorf("boss: %s: radius must be positive", spec.Name)
	}
	if len(spec.Modes) == 0 {
		return nil, fmt.Errorf("boss: %s: no modes", spec.Name)
	}

	d := &BossDescriptor{
		Kind:        kind,
		Name:        spec.Name,
		HP:          spec.HP,
		Radius:      spec.Radius,
		MaxSpeed:    spec.MaxSpeed,
		MaxForce:    spec.MaxForce,
		Drag:        spec.Drag,
		Score:       spec.Score,
		Orbs:        spec.Orbs,
		WarningMs:   spec.WarningMs,
		Contact:     component.ParseContactRule(spec.Contact),
		Spawn:       spec.Spawn,
		Modes:       append([]prefabs.ModeSpec(nil), spec.Modes...),
		Phase2Modes: append([]prefabs.ModeSpec(nil), spec.Phase2Modes...),
		Weapons:     append([]prefabs.BossWeaponSpec(nil), spec.Weapons...),
		Params:      make(map[string]float64, len(spec.Params)),
	}
	if d.WarningMs == 0 {
		d.WarningMs = DefaultWarningMs
	}
	for k, v := range spec.Params {
		d.Params[k] = v
	}

	for _, table := range [][]prefabs.ModeSpec{d.Modes, d.Phase2Modes} {
		for _, m := range table {
			if m.Name == "" {
				return nil, fmt.Errorf("boss: %s: unnamed mode", spec.Name)
			}
			if m.Next != "" && !hasMode(table, m.Next) {
				return nil, fmt.Errorf("boss: %s: mode %s: unknown next %q", spec.Name, m.Name, m.Next)
			}
		}
	}
	for _, w := range d.Weapons {
		if w.IntervalMs <= 0 {
			return nil, fmt.Errorf("boss: %s: weapon %s: interval must be positive", spec.Name, w.Name)
		}
		if w.Once && !w.ResetOnEnter {
			return nil, fmt.Errorf("boss: %s: weapon %s: once weapons must reset on enter", spec.Name, w.Name)
		}
		for _, m := range w.Modes {
			if !hasMode(d.Modes, m) && !hasMode(d.Phase2Modes, m) {
				return nil, fmt.Errorf("boss: %s: weapon %s: unknown mode %q", spec.Name, w.Name, m)
			}
		}
	}
	return d, nil
}

func hasMode(table []prefabs.ModeSpec, name string) bool {
	for _, m := range table {
		if m.Name == name {
			return true
		}
	}
	return false
}

func (d *BossDescriptor) modeTable(phase2 bool) []prefabs.ModeSpec {
	if phase2 && len(d.Phase2Modes) > 0 {
		return d.Phase2Modes
	}
	return d.Modes
}

// Mode looks a mode up in the table for the given phase.
func (d *BossDescriptor) Mode(name string, phase2 bool) (prefabs.ModeSpec, bool) {
	for _, m := range d.modeTable(phase2) {
		if m.Name == name {
			return m, true
		}
	}
	return prefabs.ModeSpec{}, false
}

// NextMode returns the mode that follows name: its explicit next, or the
// following row of the table.
func (d *BossDescriptor) NextMode(name string, phase2 bool) prefabs.ModeSpec {
	table := d.modeTable(phase2)
	for i, m := range table {
		if m.Name != name {
			continue
		}
		if m.Next != "" {
			if next, ok := d.Mode(m.Next, phase2); ok {
				return next
			}
		}
		return table[(i+1)%len(table)]
	}
	return table[0]
}

// Interval is the re-arm delay of weapon i.
func (d *BossDescriptor) Interval(i int, phase2 bool) float64 {
	w := d.Weapons[i]
	if phase2 && w.IntervalP2Ms > 0 {
		return w.IntervalP2Ms
	}
	return w.IntervalMs
}

// Param returns the named tuning value; "<name>_p2" wins in phase 2.
func (d *BossDescriptor) Param(name string, phase2 bool) float64 {
	if phase2 {
		if v, ok := d.Params[name+"_p2"]; ok {
			return v
		}
	}
	return d.Params[name]
}

func weaponActiveIn(w prefabs.BossWeaponSpec, mode string) bool {
	for _, m := range w.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

func deg(d float64) float64 {
	return d * math.Pi / 180
}

// BuildCatalog validates every spec and checks that each weapon is one the
// boss's behavior knows how to fire.
func BuildCatalog(specs []prefabs.BossSpec) (map[component.BossKind]*BossDescriptor, error) {
	catalog := make(map[component.BossKind]*BossDescriptor, len(specs))
	for _, spec := range specs {
		d, err := NewBossDescriptor(spec)
		if err != nil {
			return nil, err
		}
		if _, dup := catalog[d.Kind]; dup {
			return nil, fmt.Errorf("boss: duplicate descriptor %q", d.Name)
		}
		factory, ok := bossBehaviors[d.Kind]
		if !ok {
			return nil, fmt.Errorf("boss: %s: no behavior", d.Name)
		}
		known := map[string]bool{}
		for _, name := range factory().weapons() {
			known[name] = true
		}
		for _, w := range d.Weapons {
			if !known[w.Name] {
				return nil, fmt.Errorf("boss: %s: unknown weapon %q", d.Name, w.Name)
			}
		}
		catalog[d.Kind] = d
	}
	return catalog, nil
}
