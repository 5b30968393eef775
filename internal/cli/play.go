package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/ble"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/logger"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/notation"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/protocol"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the interactive terminal puzzle.

Keyboard shortcuts:
  r l u d f b   - Turn a face clockwise (shift for counter-clockwise)
  space         - Scramble and arm the timer
  x             - Shuffle colors only (easy mode)
  z             - Reset to solved
  2-9           - Switch puzzle order
  c             - Recalibrate the orientation reference
  q/Esc         - Quit

The timer starts on the first turn after a scramble and stops when the
puzzle is solved.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// Messages
type tickMsg time.Time
type cubeEventMsg struct{ ev protocol.Event }

// Model
type playModel struct {
	game *session.Game

	// BLE
	client *ble.Client
	events <-chan protocol.Event

	interval time.Duration
	last     time.Time
	status   session.Status
	history  []notation.Move

	err      error
	quitting bool
}

func newPlayModel(g *session.Game, client *ble.Client) *playModel {
	m := &playModel{
		game:     g,
		client:   client,
		interval: cfg.Animation.FrameInterval,
		status:   g.Status(),
	}
	if client != nil {
		m.events = client.Events()
	}
	return m
}

func (m *playModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.events != nil {
		cmds = append(cmds, m.listenForEvents())
	}
	return tea.Batch(cmds...)
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return cubeEventMsg{ev: ev}
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case tickMsg:
		now := time.Time(msg)
		dt := m.interval
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		if _, err := m.game.Advance(dt); err != nil {
			m.err = err
		}
		m.refresh()
		return m, m.tickCmd()

	case cubeEventMsg:
		if rot, ok := msg.ev.(protocol.RotationEvent); ok {
			m.history = append(m.history, faceMove(rot))
		}
		if err := m.game.HandleEvent(msg.ev); err != nil {
			m.err = err
		}
		m.refresh()
		return m, m.listenForEvents()
	}
	return m, nil
}

// refresh takes a new status snapshot and celebrates a fresh solve.
func (m *playModel) refresh() {
	prev := m.status.Phase
	m.status = m.game.Status()
	if m.status.Phase == session.PhaseSolved && prev != session.PhaseSolved {
		m.celebrate()
	}
}

func (m *playModel) handleKey(key string) tea.Cmd {
	m.err = nil
	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		if m.client != nil {
			m.client.Disconnect()
		}
		return tea.Quit

	case " ":
		m.history = nil
		_, m.err = m.game.Scramble(true)

	case "x":
		m.history = nil
		m.err = m.game.Shuffle()

	case "z":
		m.history = nil
		m.err = m.game.Reset()
		if m.err == nil && m.client != nil {
			m.err = m.client.SendCommand(protocol.CmdResetSolved)
		}

	case "c":
		m.game.Input().Calibrate()
		if m.client != nil {
			m.err = m.client.CalibrateOrientation()
		}

	case "2", "3", "4", "5", "6", "7", "8", "9":
		m.history = nil
		m.err = m.game.SetOrder(int(key[0]-'0'), false)

	default:
		mv, ok := keyMove(key)
		if !ok {
			return nil
		}
		if err := m.game.Do(mv, true); err != nil {
			m.err = err
			return nil
		}
		m.history = append(m.history, mv)
	}
	m.refresh()
	return nil
}

// keyMove maps r l u d f b to clockwise turns and their capitals to
// counter-clockwise ones.
func keyMove(key string) (notation.Move, bool) {
	if len(key) != 1 {
		return notation.Move{}, false
	}
	turn := notation.CW
	upper := strings.ToUpper(key)
	if key == upper {
		turn = notation.CCW
	}
	switch face := notation.Face(upper); face {
	case notation.FaceR, notation.FaceL, notation.FaceU, notation.FaceD, notation.FaceF, notation.FaceB:
		return notation.Move{Face: face, Turn: turn}, true
	}
	return notation.Move{}, false
}

// faceMove names a smart cube turn by the face its center sits on when
// solved.
func faceMove(ev protocol.RotationEvent) notation.Move {
	turn := notation.CCW
	if ev.Clockwise {
		turn = notation.CW
	}
	var face notation.Face
	switch ev.Color {
	case puzzle.White:
		face = notation.FaceU
	case puzzle.Yellow:
		face = notation.FaceD
	case puzzle.Green:
		face = notation.FaceF
	case puzzle.Blue:
		face = notation.FaceB
	case puzzle.Red:
		face = notation.FaceR
	default:
		face = notation.FaceL
	}
	return notation.Move{Face: face, Turn: turn}
}

func (m *playModel) celebrate() {
	logger.Info("solved", zap.Duration("time", m.status.Elapsed), zap.Int("moves", m.status.Moves))
	if m.client != nil {
		if err := m.client.SendCommand(protocol.CmdFlashBacklight); err != nil {
			logger.Debug("backlight flash failed", zap.Error(err))
		}
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Rubik's %d×%d×%d", m.status.Order, m.status.Order, m.status.Order)))
	b.WriteString("\n\n")

	if m.client != nil {
		status := "Disconnected"
		if m.client.IsConnected() {
			status = fmt.Sprintf("Connected: %s", m.client.DeviceName())
			if bat := m.client.Battery(); bat >= 0 {
				status += fmt.Sprintf(" (Battery: %d%%)", bat)
			}
		}
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n\n")
	}

	b.WriteString(renderNet(m.game.Engine().Data().Net()))
	b.WriteString("\n")

	switch m.status.Phase {
	case session.PhaseReady:
		b.WriteString(phaseStyle.Render("READY"))
		b.WriteString(" - first turn starts the timer\n")
	case session.PhaseSolving:
		b.WriteString(phaseStyle.Render(fmt.Sprintf("SOLVING: %s", formatElapsed(m.status.Elapsed))))
		b.WriteString(fmt.Sprintf("  Moves: %d\n", m.status.Moves))
	case session.PhaseSolved:
		b.WriteString(phaseStyle.Render(fmt.Sprintf("SOLVED in %s", formatElapsed(m.status.Elapsed))))
		b.WriteString(fmt.Sprintf("  Moves: %d", m.status.Moves))
		if secs := m.status.Elapsed.Seconds(); secs > 0 {
			b.WriteString(fmt.Sprintf("  TPS: %.2f", float64(m.status.Moves)/secs))
		}
		b.WriteString("\n")
	default:
		state := "Free play"
		if m.status.Solved {
			state = "Solved - press space to scramble"
		}
		b.WriteString(statusStyle.Render(state))
		b.WriteString("\n")
	}

	if len(m.history) > 0 {
		moves := m.history
		prefix := ""
		if len(moves) > 20 {
			moves = moves[len(moves)-20:]
			prefix = "... "
		}
		b.WriteString("Moves: " + prefix)
		b.WriteString(moveStyle.Render(notation.FormatMoves(moves)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Keys: rludfb=turn (shift=inverse)  space=scramble  x=shuffle  z=reset  2-9=order  q=quit"))
	b.WriteString("\n")
	return b.String()
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}

// runProgram runs the terminal UI on a game opened from the configuration.
func runProgram(client *ble.Client) error {
	g, closeGame, err := openGame()
	if err != nil {
		return err
	}
	defer closeGame()

	p := tea.NewProgram(newPlayModel(g, client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	return runProgram(nil)
}
