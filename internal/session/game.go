// Package session runs a game on top of the rotation engine: it keeps the
// solve timer, persists the puzzle after every structural change and
// records finished solves on the leaderboard.
package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/input"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/notation"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/protocol"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/rotation"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/storage"
)

var (
	// ErrBusy is returned while a drag holds the puzzle.
	ErrBusy = errors.New("session: puzzle is busy")
	// ErrNotShuffle is returned by SwapColors outside a shuffle attempt.
	ErrNotShuffle = errors.New("session: color swaps need a shuffle attempt")
)

// Phase is where the current attempt stands.
type Phase int

const (
	PhaseIdle    Phase = iota // no attempt; turns are free play
	PhaseReady                // scrambled, timer starts on the first turn
	PhaseSolving              // timer running
	PhaseSolved               // finished, result recorded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseSolving:
		return "solving"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// SourceSwap tags logged color swaps; slice turns use the rotation source
// names.
const SourceSwap = "swap"

// Status is a snapshot for the presentation layer.
type Status struct {
	Phase   Phase
	Order   int
	Mode    string
	SolveID string
	Moves   int
	Elapsed time.Duration
	Solved  bool
}

// Game owns one engine and its persistence.
type Game struct {
	cfg     *config
	log     *zap.Logger
	engine  *rotation.Engine
	input   *input.Adapter
	puzzles *storage.PuzzleRepository
	solves  *storage.SolveRepository
	turns   *storage.TurnRepository
	state   *StateFile

	phase   Phase
	mode    string
	solveID string
	started time.Time
	ended   time.Time
	moves   int
}

// New opens a game on db. The stored puzzle for the configured order is
// restored when it is valid, otherwise a solved one is used. An attempt
// recorded as active in the state file is resumed.
func New(db *storage.DB, opts ...Option) (*Game, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	g := &Game{
		cfg:     cfg,
		log:     cfg.logger,
		puzzles: storage.NewPuzzleRepository(db),
		solves:  storage.NewSolveRepository(db),
		turns:   storage.NewTurnRepository(db),
		state:   cfg.stateFile,
	}

	order := cfg.order
	if cfg.orderFromState && g.state != nil && g.state.State().Order != 0 {
		order = g.state.State().Order
	}
	data, err := g.load(order)
	if err != nil {
		return nil, err
	}

	engineOpts := append([]rotation.Option{
		rotation.WithLogger(g.log.Named("rotation")),
	}, cfg.engineOpts...)
	engineOpts = append(engineOpts, rotation.WithTurnCallback(g.handleTurn))
	g.engine = rotation.New(data, engineOpts...)

	inputOpts := append([]input.Option{input.WithLogger(g.log.Named("input"))}, cfg.inputOpts...)
	g.input = input.New(g.engine, inputOpts...)

	if err := g.resume(); err != nil {
		g.log.Warn("could not resume attempt", zap.Error(err))
	}
	return g, nil
}

// load restores the stored puzzle of an order, falling back to solved.
func (g *Game) load(order int) (*puzzle.Data, error) {
	blob, ok, err := g.puzzles.Load(order)
	if err != nil {
		return nil, err
	}
	if !ok {
		return puzzle.New(order, puzzle.WithSize(g.cfg.size))
	}
	data, restored, err := puzzle.Restore(blob, order, puzzle.WithSize(g.cfg.size))
	if err != nil {
		return nil, err
	}
	if !restored {
		g.log.Debug("discarded stored puzzle", zap.Int("order", order))
	}
	return data, nil
}

func (g *Game) resume() error {
	if g.state == nil {
		return nil
	}
	st := g.state.State()
	if st.ActiveSolveID == "" {
		return g.resumeArmed(st)
	}
	s, err := g.solves.Get(st.ActiveSolveID)
	if err != nil {
		return err
	}
	if s == nil || s.EndedAt != nil || s.Order != g.engine.Data().Order || g.engine.Data().IsSolved() {
		return g.state.ClearActiveSolve()
	}
	n, err := g.turns.Count(s.SolveID)
	if err != nil {
		return err
	}
	g.phase = PhaseSolving
	g.mode = s.Mode
	g.solveID = s.SolveID
	g.started = s.StartedAt
	g.moves = n
	g.log.Info("resumed attempt", zap.String("solve_id", s.SolveID), zap.Int("moves", n))
	return nil
}

// resumeArmed restores an attempt that was scrambled but never started.
func (g *Game) resumeArmed(st AppState) error {
	if st.ArmedMode == "" {
		return nil
	}
	d := g.engine.Data()
	if st.ArmedOrder != d.Order || d.IsSolved() {
		return g.state.ClearActiveSolve()
	}
	g.phase = PhaseReady
	g.mode = st.ArmedMode
	g.log.Info("resumed armed attempt", zap.String("mode", st.ArmedMode), zap.Int("order", d.Order))
	return nil
}

// Engine returns the rotation engine.
func (g *Game) Engine() *rotation.Engine {
	return g.engine
}

// Input returns the pointer/touch/gyro adapter bound to the engine.
func (g *Game) Input() *input.Adapter {
	return g.input
}

// Advance drives animations; call it once per frame.
func (g *Game) Advance(dt time.Duration) (rotation.Status, error) {
	return g.engine.Advance(dt)
}

// Status returns a snapshot of the attempt.
func (g *Game) Status() Status {
	st := Status{
		Phase:   g.phase,
		Order:   g.engine.Data().Order,
		Mode:    g.mode,
		SolveID: g.solveID,
		Moves:   g.moves,
		Solved:  g.engine.Data().IsSolved(),
	}
	switch g.phase {
	case PhaseSolving:
		st.Elapsed = g.cfg.clock().Sub(g.started)
	case PhaseSolved:
		st.Elapsed = g.ended.Sub(g.started)
	}
	return st
}

// Scramble applies random turns and arms the timer. Instant scrambles
// return the turns applied; animated ones play out over subsequent Advance
// calls and return nil.
func (g *Game) Scramble(animated bool) ([]rotation.PlaneTurn, error) {
	if err := g.settle(); err != nil {
		return nil, err
	}
	g.abandon()
	n := g.cfg.scrambleTurns
	if animated {
		return nil, g.engine.StartScramble(n, g.cfg.rng, func() { g.armed(storage.ModeScramble) })
	}
	turns, err := g.engine.Scramble(n, g.cfg.rng)
	if err != nil {
		return nil, err
	}
	g.armed(storage.ModeScramble)
	return turns, nil
}

// Shuffle permutes colors only and arms the timer.
func (g *Game) Shuffle() error {
	if err := g.settle(); err != nil {
		return err
	}
	g.abandon()
	data := g.engine.Data()
	data.ShuffleColorsOnly(g.cfg.rng)
	g.engine.SetData(data)
	g.armed(storage.ModeShuffle)
	return nil
}

// SwapColors exchanges the colors of facelets a and b as one move of a
// shuffle attempt. Slice turns cannot regroup shuffled colors, so swaps are
// how such an attempt gets solved.
func (g *Game) SwapColors(a, b int) error {
	if err := g.settle(); err != nil {
		return err
	}
	if g.mode != storage.ModeShuffle || (g.phase != PhaseReady && g.phase != PhaseSolving) {
		return ErrNotShuffle
	}
	data := g.engine.Data()
	fa, err := data.Facelet(a)
	if err != nil {
		return err
	}
	fb, err := data.Facelet(b)
	if err != nil {
		return err
	}
	if fa.Color == fb.Color {
		return nil
	}
	if err := data.SwapColors(a, b); err != nil {
		return err
	}
	g.engine.SetData(data)
	g.step(storage.TurnRecord{Pivot: a, Target: b, Source: SourceSwap})
	return nil
}

// Reset replaces the puzzle with a solved one and drops any attempt.
func (g *Game) Reset() error {
	return g.SetOrder(g.engine.Data().Order, true)
}

// SetOrder switches to another order, restoring its stored puzzle unless
// fresh is set.
func (g *Game) SetOrder(order int, fresh bool) error {
	if err := g.settle(); err != nil {
		return err
	}
	var (
		data *puzzle.Data
		err  error
	)
	if fresh {
		data, err = puzzle.New(order, puzzle.WithSize(g.cfg.size))
	} else {
		data, err = g.load(order)
	}
	if err != nil {
		return err
	}

	g.abandon()
	g.moves = 0
	g.engine.SetData(data)
	if g.state != nil {
		if err := g.state.SetOrder(order); err != nil {
			g.log.Warn("failed to save state file", zap.Error(err))
		}
	}
	err = g.persist()
	g.notify()
	return err
}

// Do turns one notation move.
func (g *Game) Do(m notation.Move, animated bool) error {
	return notation.Do(g.engine, m, animated, nil)
}

// HandleEvent applies a smart cube notification.
func (g *Game) HandleEvent(ev protocol.Event) error {
	switch ev := ev.(type) {
	case protocol.RotationEvent:
		return g.input.SmartCubeTurn(ev.Color, ev.Clockwise)
	case protocol.OrientationEvent:
		g.input.Gyro(ev.Quat)
	}
	return nil
}

// Leaderboard returns the best finished solves for the current order.
func (g *Game) Leaderboard(mode string, limit int) ([]storage.Solve, error) {
	return g.solves.Leaderboard(g.engine.Data().Order, mode, limit)
}

// Close settles any animation and writes the puzzle out.
func (g *Game) Close() error {
	if err := g.engine.Settle(); err != nil {
		g.log.Warn("settle on close failed", zap.Error(err))
	}
	return g.persist()
}

func (g *Game) settle() error {
	if st := g.engine.State(); st == rotation.StateDragPendingAxis || st == rotation.StateDragActive {
		return ErrBusy
	}
	return g.engine.Settle()
}

// armed starts waiting for the first turn of a new attempt.
func (g *Game) armed(mode string) {
	g.phase = PhaseReady
	g.mode = mode
	g.moves = 0
	if g.state != nil {
		if err := g.state.SetArmed(mode, g.engine.Data().Order); err != nil {
			g.log.Warn("failed to save state file", zap.Error(err))
		}
	}
	if err := g.persist(); err != nil {
		g.log.Error("failed to persist puzzle", zap.Error(err))
	}
	g.log.Info("attempt armed", zap.String("mode", mode), zap.Int("order", g.engine.Data().Order))
	g.notify()
}

// abandon drops a running or armed attempt and returns to free play. The
// solve row of a running attempt stays unfinished.
func (g *Game) abandon() {
	if g.phase == PhaseSolving {
		g.log.Info("attempt abandoned", zap.String("solve_id", g.solveID), zap.Int("moves", g.moves))
	}
	if (g.solveID != "" || g.phase == PhaseReady) && g.state != nil {
		if err := g.state.ClearActiveSolve(); err != nil {
			g.log.Warn("failed to save state file", zap.Error(err))
		}
	}
	g.phase = PhaseIdle
	g.mode = ""
	g.solveID = ""
}

func (g *Game) handleTurn(r rotation.TurnResult) {
	if r.Source == rotation.SourceScramble || !r.Changed() {
		return
	}
	g.step(storage.TurnRecord{
		Pivot:    r.Pivot,
		Axis:     r.Axis,
		Quarters: r.Quarters,
		Target:   -1,
		Source:   r.Source.String(),
	})
}

// step advances the attempt after one move changed the puzzle.
func (g *Game) step(rec storage.TurnRecord) {
	now := g.cfg.clock()

	if g.phase == PhaseReady {
		if err := g.start(now); err != nil {
			g.log.Error("failed to start solve", zap.Error(err))
		}
	}
	if g.phase == PhaseSolving && g.solveID != "" {
		g.record(rec, now)
	}
	if err := g.persist(); err != nil {
		g.log.Error("failed to persist puzzle", zap.Error(err))
	}
	if g.phase == PhaseSolving && g.engine.Data().IsSolved() {
		if err := g.finish(now); err != nil {
			g.log.Error("failed to record solve", zap.Error(err))
		}
	}
	g.notify()
}

func (g *Game) start(now time.Time) error {
	id, err := g.solves.Create(g.engine.Data().Order, g.mode, g.cfg.player, now)
	if err != nil {
		return err
	}
	g.phase = PhaseSolving
	g.solveID = id
	g.started = now
	g.moves = 0
	if g.state != nil {
		if err := g.state.SetActiveSolve(id, g.mode); err != nil {
			g.log.Warn("failed to save state file", zap.Error(err))
		}
	}
	g.log.Info("solve started", zap.String("solve_id", id))
	return nil
}

func (g *Game) record(rec storage.TurnRecord, now time.Time) {
	rec.SolveID = g.solveID
	rec.TurnIndex = g.moves
	rec.TsMs = now.Sub(g.started).Milliseconds()
	g.moves++
	if _, err := g.turns.Create(rec); err != nil {
		g.log.Warn("failed to log turn", zap.Error(err))
	}
}

func (g *Game) finish(now time.Time) error {
	g.phase = PhaseSolved
	g.ended = now
	d := now.Sub(g.started)
	err := g.solves.Finish(g.solveID, now, d, g.moves)
	if g.state != nil {
		if serr := g.state.ClearActiveSolve(); serr != nil {
			g.log.Warn("failed to save state file", zap.Error(serr))
		}
	}
	g.log.Info("puzzle solved",
		zap.String("solve_id", g.solveID),
		zap.Duration("time", d),
		zap.Int("moves", g.moves))
	if err != nil {
		return fmt.Errorf("failed to finish solve: %w", err)
	}
	return nil
}

func (g *Game) persist() error {
	d := g.engine.Data()
	blob, err := d.Marshal()
	if err != nil {
		return err
	}
	return g.puzzles.Save(d.Order, blob)
}

func (g *Game) notify() {
	if g.cfg.onStatus != nil {
		g.cfg.onStatus(g.Status())
	}
}

// rngFromTime seeds a generator for interactive play.
func rngFromTime() *rand.Rand {
	seed := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(seed, seed>>32|1))
}
