package simulation

import (
	_ "embed"
	"encoding/json"
	"math"
	"os"
	"strings"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/maze"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidConfiguration is returned when a configuration cannot build a world.
var ErrInvalidConfiguration = errors.New("invalid configuration")

//go:embed config.schema.json
var configSchema string

type Config struct {
	// Grid
	Cols     int     `json:"cols"`
	Rows     int     `json:"rows"`
	TileSize float64 `json:"tileSize"`
	OriginX  float64 `json:"originX"`
	OriginZ  float64 `json:"originZ"`

	Maze maze.Config `json:"maze"`

	// Seed of the generator picking the player start tile
	Seed uint64 `json:"seed"`

	// Population
	HiveCount   int    `json:"hiveCount"`
	BeesPerHive int    `json:"beesPerHive"`
	GroupSize   int    `json:"groupSize"` // transitions per hive relocation
	HaltonStart uint64 `json:"haltonStart"`

	// Player
	PlayerMass     float64 `json:"playerMass"`
	PlayerTopSpeed float64 `json:"playerTopSpeed"`
	PlayerFriction float64 `json:"playerFriction"`
	PushForce      float64 `json:"pushForce"`
	StartHealth    float64 `json:"startHealth"`
	MaxHealth      float64 `json:"maxHealth"`

	// Bees
	BeeMass         float64 `json:"beeMass"`
	BeeChaseSpeed   float64 `json:"beeChaseSpeed"`
	BeeFriction     float64 `json:"beeFriction"`
	ChaseForceScale float64 `json:"chaseForceScale"`
	ProximityFactor float64 `json:"proximityFactor"` // fraction of a tile, per axis
	PickupDelay     float64 `json:"pickupDelay"`     // seconds
	FoodHealth      float64 `json:"foodHealth"`
	StingDamage     float64 `json:"stingDamage"`
	// Heatmap cost above which a chasing bee gives up. Compared with a path
	// cost, not a distance: with unit edges 30 means 30 tiles.
	GiveUpCost float64 `json:"giveUpCost"`

	// Flocking
	SeparationRadius float64 `json:"separationRadius"`
	SeparationWeight float64 `json:"separationWeight"`
	AlignmentRadius  float64 `json:"alignmentRadius"`
	AlignmentWeight  float64 `json:"alignmentWeight"`
	CohesionRadius   float64 `json:"cohesionRadius"`
	CohesionWeight   float64 `json:"cohesionWeight"`

	// Hunger
	HungerInterval float64 `json:"hungerInterval"` // seconds, 0 disables
	HungerPenalty  float64 `json:"hungerPenalty"`

	WallCollision bool `json:"wallCollision"`
}

func DefaultConfig() *Config {
	return &Config{
		Cols:     10,
		Rows:     7,
		TileSize: 10,
		OriginX:  -50,
		OriginZ:  -35,
		Maze:     maze.DefaultConfig(),
		Seed:     4303,

		HiveCount:   3,
		BeesPerHive: 5,
		GroupSize:   5,

		PlayerMass:     1,
		PlayerTopSpeed: 10,
		PlayerFriction: 20,
		PushForce:      50,
		StartHealth:    50,
		MaxHealth:      100,

		BeeMass:         1,
		BeeChaseSpeed:   10,
		ChaseForceScale: 4,
		ProximityFactor: 0.25,
		PickupDelay:     1,
		FoodHealth:      15,
		StingDamage:     5,
		GiveUpCost:      30,

		SeparationRadius: 2,
		SeparationWeight: 2,
		AlignmentRadius:  3,
		AlignmentWeight:  2,
		CohesionRadius:   3,
		CohesionWeight:   1,

		HungerInterval: 15,
		HungerPenalty:  10,

		WallCollision: true,
	}
}

// Origin is the world position of the grid corner (0,0).
func (c *Config) Origin() geometry.Vector3D {
	return geometry.Vector3D{X: c.OriginX, Z: c.OriginZ}
}

// ProximityThreshold is the per-axis distance under which a bee touches the player.
func (c *Config) ProximityThreshold() float64 {
	return c.TileSize * c.ProximityFactor
}

// Validate rejects configurations that cannot build a consistent world.
func (c *Config) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}
	positive := func(v float64) bool { return v > 0 && !math.IsInf(v, 0) }
	nonNegative := func(v float64) bool { return v >= 0 && !math.IsInf(v, 0) }

	check(c.Cols > 0 && c.Rows > 0, "grid needs positive cols and rows")
	check(positive(c.TileSize), "tileSize must be positive")
	check(c.GroupSize > 0, "groupSize must be positive")
	check(c.HiveCount >= 0 && c.BeesPerHive >= 0, "population cannot be negative")
	check(nonNegative(c.Maze.EdgeCost), "maze edgeCost cannot be negative")
	check(c.Maze.Braiding >= 0 && c.Maze.Braiding <= 1, "maze braiding must be in [0,1]")
	check(positive(c.PlayerMass) && positive(c.BeeMass), "masses must be positive")
	check(nonNegative(c.PlayerTopSpeed) && nonNegative(c.BeeChaseSpeed), "speeds cannot be negative")
	check(nonNegative(c.PlayerFriction) && nonNegative(c.BeeFriction), "friction cannot be negative")
	check(positive(c.MaxHealth), "maxHealth must be positive")
	check(c.StartHealth > 0 && c.StartHealth < c.MaxHealth, "startHealth must be in (0, maxHealth)")
	check(nonNegative(c.PickupDelay), "pickupDelay cannot be negative")
	check(nonNegative(c.HungerInterval), "hungerInterval cannot be negative")
	check(positive(c.ProximityFactor), "proximityFactor must be positive")

	if len(problems) > 0 {
		return errors.Wrap(ErrInvalidConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

// LoadConfig reads a JSON configuration, validates it against the embedded
// schema and overlays it on DefaultConfig, so omitted keys keep their default.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", configFile)
	}
	return ParseConfig(b)
}

// ParseConfig is LoadConfig on an in-memory document.
func ParseConfig(b []byte) (*Config, error) {
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, errors.Wrap(err, "compile config schema")
	}

	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, errors.Wrap(err, "decode config json")
	}
	if err := sch.Validate(doc); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "schema: %v", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
