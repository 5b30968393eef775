package rotation

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/vecmath"
)

// Defaults for the engine configuration.
const (
	DefaultDragThreshold = 5.0 // pixels
	DefaultSnapDuration  = 500 * time.Millisecond
	DefaultTurnFrames    = 30
	DefaultScrambleDelay = 80 * time.Millisecond
)

// Option configures an Engine.
type Option func(*config)

type config struct {
	dragThreshold float64
	snapDuration  time.Duration
	turnFrames    int
	scrambleDelay time.Duration
	camera        vecmath.Camera
	viewport      vecmath.Viewport
	logger        *zap.Logger
	onTransform   func(id int, m mgl64.Mat4)
	onTurn        func(TurnResult)
}

func defaultConfig() *config {
	vp := vecmath.Viewport{Width: 800, Height: 600}
	return &config{
		dragThreshold: DefaultDragThreshold,
		snapDuration:  DefaultSnapDuration,
		turnFrames:    DefaultTurnFrames,
		scrambleDelay: DefaultScrambleDelay,
		camera:        vecmath.DefaultCamera(vp.Aspect()),
		viewport:      vp,
		logger:        zap.NewNop(),
	}
}

// WithDragThreshold sets how far (pixels) a pointer must travel before a
// drag picks its axis.
func WithDragThreshold(px float64) Option {
	return func(c *config) {
		if px > 0 {
			c.dragThreshold = px
		}
	}
}

// WithSnapDuration sets how long a snap takes to cover a quarter turn.
func WithSnapDuration(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.snapDuration = d
		}
	}
}

// WithTurnFrames sets the frame count of an animated programmatic turn.
func WithTurnFrames(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.turnFrames = n
		}
	}
}

// WithScrambleDelay sets the pause between animated scramble turns.
func WithScrambleDelay(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.scrambleDelay = d
		}
	}
}

// WithCamera sets the camera used for projection.
func WithCamera(cam vecmath.Camera) Option {
	return func(c *config) {
		c.camera = cam
	}
}

// WithViewport sets the render target size in pixels.
func WithViewport(vp vecmath.Viewport) Option {
	return func(c *config) {
		c.viewport = vp
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTransformCallback registers the render-side hook that receives a
// facelet's slice transform whenever it changes.
func WithTransformCallback(cb func(id int, m mgl64.Mat4)) Option {
	return func(c *config) {
		c.onTransform = cb
	}
}

// WithTurnCallback registers a hook fired after every reconciled turn.
func WithTurnCallback(cb func(TurnResult)) Option {
	return func(c *config) {
		c.onTurn = cb
	}
}
