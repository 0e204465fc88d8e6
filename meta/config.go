package meta

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"pursuit/game"
)

// Agents names the policy of each role: multimax, greedy or random. Evaluator
// is the game.Evaluators entry greedy policies rank successors with.
type Agents struct {
	Primary   string `yaml:"primary"`
	Rival     string `yaml:"rival"`
	Pursuer   string `yaml:"pursuer"`
	Evaluator string `yaml:"evaluator"`
}

type Config struct {
	Layout     string        `yaml:"layout"` // built-in layout name or layout file path
	Pursuers   int           `yaml:"pursuers"`
	Games      int           `yaml:"games"`
	Depth      int           `yaml:"depth"`
	Seed       uint64        `yaml:"seed"`
	Timeout    time.Duration `yaml:"timeout"` // per decision, 0 for none
	MaxMoves   int           `yaml:"max_moves"`
	Agents     Agents        `yaml:"agents"`
	Rules      game.Settings `yaml:"rules"`
	RecordDir  string        `yaml:"record_dir"`
	MetricsDir string        `yaml:"metrics_dir"`
	Addr       string        `yaml:"addr"`
	RemoteURL  string        `yaml:"remote_url"` // agent server playing the primary, if set
}

func Default() Config {
	return Config{
		Layout:   LAYOUT,
		Pursuers: PURSUERS,
		Games:    GAMES,
		Depth:    DEPTH,
		MaxMoves: MAX_MOVES,
		Agents:   Agents{Primary: "multimax", Rival: "greedy", Pursuer: "random", Evaluator: "score"},
		Rules:    game.DefaultSettings(),
		Addr:     ADDR,
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Layout == "":
		return errors.New("config: layout is required")
	case c.Pursuers < 0:
		return fmt.Errorf("config: pursuers must not be negative, got %d", c.Pursuers)
	case c.Games < 1:
		return fmt.Errorf("config: games must be positive, got %d", c.Games)
	case c.Depth < 1:
		return fmt.Errorf("config: depth must be positive, got %d", c.Depth)
	case c.Timeout < 0:
		return fmt.Errorf("config: timeout must not be negative, got %s", c.Timeout)
	case c.MaxMoves < 1:
		return fmt.Errorf("config: max_moves must be positive, got %d", c.MaxMoves)
	}
	if _, ok := game.Evaluators[c.Agents.Evaluator]; !ok {
		return fmt.Errorf("config: unknown evaluator %q", c.Agents.Evaluator)
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("config: rules: %w", err)
	}
	return nil
}
