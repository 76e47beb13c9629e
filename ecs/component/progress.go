package component

// Upgrade is one level-up reward.
type Upgrade string

const (
	UpgradeSpeed        Upgrade = "speed"
	UpgradeControl      Upgrade = "control"
	UpgradeFireRate     Upgrade = "fire_rate"
	UpgradeBulletSize   Upgrade = "bullet_size"
	UpgradeBulletSpeed  Upgrade = "bullet_speed"
	UpgradeHealth       Upgrade = "health"
	UpgradePickupRadius Upgrade = "pickup_radius"
)

// AllUpgrades is the pool level-up choices are drawn from.
var AllUpgrades = []Upgrade{
	UpgradeSpeed, UpgradeControl, UpgradeFireRate, UpgradeBulletSize,
	UpgradeBulletSpeed, UpgradeHealth, UpgradePickupRadius,
}

var upgradeLabels = map[Upgrade]string{
	UpgradeSpeed:        "SPEED BOOST",
	UpgradeControl:      "PRECISION",
	UpgradeFireRate:     "RAPID FIRE",
	UpgradeBulletSize:   "BIG SHOTS",
	UpgradeBulletSpeed:  "FAST SHOTS",
	UpgradeHealth:       "+1 MAX HP",
	UpgradePickupRadius: "REACH",
}

func (u Upgrade) Label() string {
	if s, ok := upgradeLabels[u]; ok {
		return s
	}
	return string(u)
}

// XPPerLevel scales the orb count needed for the next level: level*XPPerLevel.
const XPPerLevel = 5

// Progress is the player's level track. XP counts toward ToNext; Credited is
// the arena xp total already folded in.
type Progress struct {
	Level    int
	XP       int
	ToNext   int
	Credited int
	Taken    []Upgrade
}

func NewProgress() *Progress {
	return &Progress{Level: 1, ToNext: XPPerLevel}
}

var ProgressComponent = NewComponent[Progress]()
