package session

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/input"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/rotation"
)

// DefaultScrambleTurns is how many random turns a scramble applies.
const DefaultScrambleTurns = 25

// Option configures a Game.
type Option func(*config)

type config struct {
	order          int
	orderFromState bool
	size           float64
	player         string
	scrambleTurns  int
	rng            *rand.Rand
	clock          func() time.Time
	logger         *zap.Logger
	stateFile      *StateFile
	engineOpts     []rotation.Option
	inputOpts      []input.Option
	onStatus       func(Status)
}

func defaultConfig() *config {
	return &config{
		order:         puzzle.DefaultOrder,
		size:          puzzle.DefaultSize,
		player:        "player",
		scrambleTurns: DefaultScrambleTurns,
		rng:           rngFromTime(),
		clock:         time.Now,
		logger:        zap.NewNop(),
	}
}

// WithOrder sets the puzzle order.
func WithOrder(order int) Option {
	return func(c *config) {
		c.order = order
	}
}

// WithLastOrder prefers the order recorded in the state file, if any.
func WithLastOrder() Option {
	return func(c *config) {
		c.orderFromState = true
	}
}

// WithSize sets the facelet edge length.
func WithSize(size float64) Option {
	return func(c *config) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithPlayer sets the name recorded on the leaderboard.
func WithPlayer(name string) Option {
	return func(c *config) {
		if name != "" {
			c.player = name
		}
	}
}

// WithScrambleTurns sets the scramble length.
func WithScrambleTurns(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.scrambleTurns = n
		}
	}
}

// WithRand sets the random source for scrambles and shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithClock sets the time source of the solve timer.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStateFile keeps the active attempt and last order in sf.
func WithStateFile(sf *StateFile) Option {
	return func(c *config) {
		c.stateFile = sf
	}
}

// WithEngineOptions passes options through to the rotation engine.
func WithEngineOptions(opts ...rotation.Option) Option {
	return func(c *config) {
		c.engineOpts = append(c.engineOpts, opts...)
	}
}

// WithInputOptions passes options through to the input adapter.
func WithInputOptions(opts ...input.Option) Option {
	return func(c *config) {
		c.inputOpts = append(c.inputOpts, opts...)
	}
}

// WithStatusCallback registers a hook fired after every structural change.
func WithStatusCallback(cb func(Status)) Option {
	return func(c *config) {
		c.onStatus = cb
	}
}
