package swarmlogic

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration holds impossible values.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the population and run parameters of a simulation.
type Config struct {
	// Population
	Agents           int     `yaml:"agents"`
	Spawn            Region  `yaml:"spawn"`
	SpeedMin         float64 `yaml:"speed_min"`
	SpeedMax         float64 `yaml:"speed_max"`
	TurnRateDegrees  float64 `yaml:"turn_rate_degrees"` // per second
	CommRange        float64 `yaml:"comm_range"`
	SenseRange       float64 `yaml:"sense_range"`
	ScoutProbability float64 `yaml:"scout_probability"`
	IdleKinds        int     `yaml:"idle_kinds"` // one of the first IdleKinds kinds starts not searched

	// Run
	Seed     int64         `yaml:"seed"` // 0 picks one from the clock
	Workers  int           `yaml:"workers"`
	MinFrame time.Duration `yaml:"min_frame"`
}

// Region is an axis aligned area of the arena.
type Region struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// DefaultConfig spawns 2000 agents in the top right corner of a 16x10 arena.
func DefaultConfig() Config {
	return Config{
		Agents:           2000,
		Spawn:            Region{MinX: 15, MinY: 0, MaxX: 16, MaxY: 1},
		SpeedMin:         0.1,
		SpeedMax:         1.5,
		TurnRateDegrees:  100,
		CommRange:        0.8,
		SenseRange:       0.4,
		ScoutProbability: 0.5,
		IdleKinds:        2,

		Workers:  1,
		MinFrame: 16 * time.Millisecond,
	}
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run.
func (c Config) Validate() error {
	var errs []error
	check := func(bad bool, format string, args ...any) {
		if bad {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}
	check(c.Agents < 0, "agents %d < 0", c.Agents)
	check(c.Spawn.MinX > c.Spawn.MaxX || c.Spawn.MinY > c.Spawn.MaxY, "spawn region %+v is inverted", c.Spawn)
	check(c.SpeedMin < 0 || c.SpeedMin > c.SpeedMax, "speed range [%g, %g]", c.SpeedMin, c.SpeedMax)
	check(c.TurnRateDegrees < 0, "turn rate %g < 0", c.TurnRateDegrees)
	check(c.CommRange < 0, "comm range %g < 0", c.CommRange)
	check(c.SenseRange < 0, "sense range %g < 0", c.SenseRange)
	check(c.ScoutProbability < 0 || c.ScoutProbability > 1, "scout probability %g outside [0, 1]", c.ScoutProbability)
	check(c.IdleKinds < 0, "idle kinds %d < 0", c.IdleKinds)
	check(c.Workers < 0, "workers %d < 0", c.Workers)
	check(c.MinFrame <= 0, "min frame %s <= 0", c.MinFrame)
	return errors.Join(errs...)
}
