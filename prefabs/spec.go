package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ParseSpec decodes yaml already in memory, for tests and hot reload.
func ParseSpec[T any](name string, data []byte) (T, error) {
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", name, err)
	}
	return spec, nil
}

const (
	BossesFile    = "bosses.yaml"
	EncounterFile = "encounter.yaml"
)

type BossFile struct {
	Bosses []BossSpec `yaml:"bosses"`
}

// BossSpec is one boss descriptor: body constants, payout, the mode table,
// the weapon list and named tuning params. A param "x_p2" overrides "x" once
// phase 2 has latched.
type BossSpec struct {
	Name        string             `yaml:"name"`
	DisplayName string             `yaml:"display_name"`
	HP          int                `yaml:"hp"`
	Radius      float64            `yaml:"radius"`
	MaxSpeed    float64            `yaml:"max_speed"`
	MaxForce    float64            `yaml:"max_force"`
	Drag        float64            `yaml:"drag"`
	Score       int                `yaml:"score"`
	Orbs        int                `yaml:"orbs"`
	WarningMs   float64            `yaml:"warning_ms"`
	Contact     string             `yaml:"contact"`
	Spawn       SpawnSpec          `yaml:"spawn"`
	Modes       []ModeSpec         `yaml:"modes"`
	Phase2Modes []ModeSpec         `yaml:"phase2_modes"`
	Weapons     []BossWeaponSpec   `yaml:"weapons"`
	Params      map[string]float64 `yaml:"params"`
}

// SpawnSpec places a boss at (X*width, Y*height) shifted by RadiusY radii
// vertically, so bosses can enter from above the field.
type SpawnSpec struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	RadiusY float64 `yaml:"radius_y"`
}

type ModeSpec struct {
	Name       string  `yaml:"name"`
	DurationMs float64 `yaml:"duration_ms"`
	Next       string  `yaml:"next"`
	Shielded   bool    `yaml:"shielded"`
	FlashMs    float64 `yaml:"flash_ms"`
}

type BossWeaponSpec struct {
	Name         string   `yaml:"name"`
	Modes        []string `yaml:"modes"`
	InitialMs    float64  `yaml:"initial_ms"`
	IntervalMs   float64  `yaml:"interval_ms"`
	IntervalP2Ms float64  `yaml:"interval_p2_ms"`
	TelegraphMs  float64  `yaml:"telegraph_ms"`
	ResetOnEnter bool     `yaml:"reset_on_enter"`
	Once         bool     `yaml:"once"`
}

func LoadBossSpecs() ([]BossSpec, error) {
	file, err := LoadSpec[BossFile](BossesFile)
	if err != nil {
		return nil, err
	}
	if len(file.Bosses) == 0 {
		return nil, fmt.Errorf("prefabs: %s: no bosses", BossesFile)
	}
	return file.Bosses, nil
}

type EncounterSpec struct {
	Field        FieldSpec        `yaml:"field"`
	Player       PlayerSpec       `yaml:"player"`
	PlayerWeapon PlayerWeaponSpec `yaml:"player_weapon"`
	Enemies      EnemySpec        `yaml:"enemies"`
	Spawner      SpawnerSpec      `yaml:"spawner"`
	Director     DirectorSpec     `yaml:"director"`
	Powerups     PowerupSpec      `yaml:"powerups"`
}

type FieldSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerSpec struct {
	HP       int     `yaml:"hp"`
	Radius   float64 `yaml:"radius"`
	MaxSpeed float64 `yaml:"max_speed"`
	Accel    float64 `yaml:"accel"`
	Drag     float64 `yaml:"drag"`
}

type PlayerWeaponSpec struct {
	FireMs          float64 `yaml:"fire_ms"`
	BulletSpeed     float64 `yaml:"bullet_speed"`
	BulletRadius    float64 `yaml:"bullet_radius"`
	BulletPad       float64 `yaml:"bullet_pad"`
	BulletOffset    float64 `yaml:"bullet_offset"`
	BulletInherit   float64 `yaml:"bullet_inherit"`
	TrishotDeg      float64 `yaml:"trishot_deg"`
	MinigunFireMs   float64 `yaml:"minigun_fire_ms"`
	MinigunJitter   float64 `yaml:"minigun_jitter_deg"`
	MinigunRecoil   float64 `yaml:"minigun_recoil"`
	MissileFireMs   float64 `yaml:"missile_fire_ms"`
	MissileSpeed    float64 `yaml:"missile_speed"`
	MissileRadius   float64 `yaml:"missile_radius"`
	MissilePad      float64 `yaml:"missile_pad"`
	MissileOffset   float64 `yaml:"missile_offset"`
	MissileInherit  float64 `yaml:"missile_inherit"`
	MissileDamage   int     `yaml:"missile_damage"`
	MissileBlastRad float64 `yaml:"missile_blast_radius"`
}

type EnemySpec struct {
	Radius       float64 `yaml:"radius"`
	HP           int     `yaml:"hp"`
	SpeedMin     float64 `yaml:"speed_min"`
	SpeedMax     float64 `yaml:"speed_max"`
	ForceMin     float64 `yaml:"force_min"`
	ForceMax     float64 `yaml:"force_max"`
	DragMin      float64 `yaml:"drag_min"`
	DragMax      float64 `yaml:"drag_max"`
	Ramp         float64 `yaml:"ramp"`
	RampCap      float64 `yaml:"ramp_cap"`
	BerserkScale float64 `yaml:"berserk_scale"`
}

type SpawnerSpec struct {
	BaseMs      float64 `yaml:"base_ms"`
	Ramp        float64 `yaml:"ramp"`
	MinMs       float64 `yaml:"min_ms"`
	FirstMs     float64 `yaml:"first_ms"`
	AfterBossMs float64 `yaml:"after_boss_ms"`
	EdgeMargin  float64 `yaml:"edge_margin"`
}

type DirectorSpec struct {
	FirstBossMs     float64  `yaml:"first_boss_ms"`
	DuelistDelayMs  float64  `yaml:"duelist_delay_ms"`
	DualDelayMs     float64  `yaml:"dual_delay_ms"`
	QueueDelayMs    float64  `yaml:"queue_delay_ms"`
	DuelistRebaseMs float64  `yaml:"duelist_rebase_ms"`
	DualRebaseMs    float64  `yaml:"dual_rebase_ms"`
	PostBossRate    float64  `yaml:"post_boss_rate"`
	Queue           []string `yaml:"queue"`
	Repeat          bool     `yaml:"repeat"`
	Script          string   `yaml:"script"`
}

type PowerupSpec struct {
	FirstMs    float64 `yaml:"first_ms"`
	IntervalMs float64 `yaml:"interval_ms"`
	JitterMs   float64 `yaml:"jitter_ms"`
	Margin     float64 `yaml:"margin"`
	Max        int     `yaml:"max"`
	FreezeMs   float64 `yaml:"freeze_ms"`
	TrishotMs  float64 `yaml:"trishot_ms"`
	MinigunMs  float64 `yaml:"minigun_ms"`
	MissileMs  float64 `yaml:"missile_ms"`
}

func LoadEncounterSpec() (*EncounterSpec, error) {
	spec, err := LoadSpec[EncounterSpec](EncounterFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
