package experiments

import (
	"fmt"
	"os"

	"tablut/experiments/metrics"
	"tablut/game"
	"tablut/meta"
	"tablut/utils"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	AlphaBetaAgent = "alphabeta"
	RandomAgent    = "random"
)

var evaluators = map[string]game.Evaluate{
	"flat":     game.EvaluateFlat,
	"material": game.EvaluateMaterial,
}

// Config describes an experiment: the agents taking part and the matchups
// played between them.
type Config struct {
	Name      string                `yaml:"name"`
	Games     int                   `yaml:"games"`      // per matchup
	MoveLimit int                   `yaml:"move_limit"` // per side
	Agents    []metrics.AgentConfig `yaml:"agents"`
	Matchups  []Matchup             `yaml:"matchups"`
}

// Matchup pairs two agents by ID.
type Matchup struct {
	Attacker int `yaml:"attacker"`
	Defender int `yaml:"defender"`
}

// DefaultConfig pits searchers of increasing depth against a random baseline,
// from both sides.
func DefaultConfig() *Config {
	c := &Config{
		Name:      "depth",
		Games:     meta.NumGames,
		MoveLimit: meta.MoveLimit,
		Agents: []metrics.AgentConfig{
			{ID: 0, Kind: RandomAgent, Seed: 1},
			{ID: 1, Kind: AlphaBetaAgent, Depth: 1, Evaluator: "material"},
			{ID: 2, Kind: AlphaBetaAgent, Depth: 2, Evaluator: "material"},
			{ID: 3, Kind: AlphaBetaAgent, Depth: 2, Evaluator: "flat"},
		},
	}
	for _, agent := range c.Agents[1:] {
		c.Matchups = append(c.Matchups,
			Matchup{Attacker: agent.ID, Defender: 0},
			Matchup{Attacker: 0, Defender: agent.ID},
		)
	}
	return c
}

// LoadConfig reads a YAML experiment file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read experiment config")
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML experiment, fills in defaults and validates it.
func ParseConfig(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse experiment config")
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setDefaults() {
	if c.Games == 0 {
		c.Games = meta.NumGames
	}
	if c.MoveLimit == 0 {
		c.MoveLimit = meta.MoveLimit
	}
	for i := range c.Agents {
		agent := &c.Agents[i]
		if agent.Kind != AlphaBetaAgent {
			continue
		}
		if agent.Depth == 0 {
			agent.Depth = meta.SearchDepth
		}
		if agent.Evaluator == "" {
			agent.Evaluator = "material"
		}
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Name == "" {
		result = multierror.Append(result, errors.New("name is required"))
	}
	if c.Games <= 0 {
		result = multierror.Append(result, errors.Errorf("games must be positive, got %d", c.Games))
	}
	if c.MoveLimit <= 0 {
		result = multierror.Append(result, errors.Errorf("move_limit must be positive, got %d", c.MoveLimit))
	}
	if len(c.Agents) == 0 {
		result = multierror.Append(result, errors.New("at least one agent is required"))
	}

	ids := make([]int, 0, len(c.Agents))
	for _, agent := range c.Agents {
		if utils.FindIndex(ids, agent.ID) >= 0 {
			result = multierror.Append(result, errors.Errorf("agent %d: duplicate id", agent.ID))
		}
		ids = append(ids, agent.ID)
		if err := validateAgent(agent); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "agent %d", agent.ID))
		}
	}

	if len(c.Matchups) == 0 {
		result = multierror.Append(result, errors.New("at least one matchup is required"))
	}
	for i, m := range c.Matchups {
		for _, id := range []int{m.Attacker, m.Defender} {
			if utils.FindIndex(ids, id) < 0 {
				result = multierror.Append(result, errors.Errorf("matchup %d: unknown agent %d", i+1, id))
			}
		}
	}
	return result.ErrorOrNil()
}

func validateAgent(agent metrics.AgentConfig) error {
	switch agent.Kind {
	case RandomAgent:
		return nil
	case AlphaBetaAgent:
		if agent.Depth <= 0 {
			return errors.Errorf("depth must be positive, got %d", agent.Depth)
		}
		if _, ok := evaluators[agent.Evaluator]; !ok {
			return errors.Errorf("unknown evaluator %q", agent.Evaluator)
		}
		return nil
	}
	return errors.Errorf("unknown kind %q", agent.Kind)
}

// agent returns the configuration of the agent with the given ID.
func (c *Config) agent(id int) metrics.AgentConfig {
	for _, agent := range c.Agents {
		if agent.ID == id {
			return agent
		}
	}
	panic(fmt.Sprintf("no agent with id %d", id))
}
