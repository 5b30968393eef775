package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/notation"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/puzzle"
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/session"
)

var plainOutput bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved puzzle",
	Long:  `Print the saved puzzle of the current order as an unfolded net.`,
	RunE: withGame(func(g *session.Game, args []string) error {
		return nil
	}),
}

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Scramble the saved puzzle",
	Long:  `Apply random turns to the saved puzzle and arm the timer for the next 'play'.`,
	RunE: withGame(func(g *session.Game, args []string) error {
		turns, err := g.Scramble(false)
		if err != nil {
			return fmt.Errorf("failed to scramble: %w", err)
		}
		fmt.Printf("Applied %d random turns\n", len(turns))
		return nil
	}),
}

var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Shuffle facelet colors only",
	Long: `Permute the facelet colors of the saved puzzle without turning any slice.

The result is an easy mode: it is solved by color matching with 'swap' and
may not be reachable by real turns.`,
	RunE: withGame(func(g *session.Game, args []string) error {
		if err := g.Shuffle(); err != nil {
			return fmt.Errorf("failed to shuffle: %w", err)
		}
		return nil
	}),
}

var swapCmd = &cobra.Command{
	Use:   "swap <cell> <cell> [<cell> <cell>...]",
	Short: "Swap facelet colors of a shuffled puzzle",
	Long: `Exchange the colors of pairs of net cells during a shuffle attempt.

A cell is a face letter followed by its row and column on the printed net,
counted from 1:

  rubiks swap U1,1 F2,3
  rubiks swap R3,3 L1,1 D2,2 B2,1`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || len(args)%2 != 0 {
			return fmt.Errorf("swap needs pairs of cells, got %d", len(args))
		}
		return nil
	},
	RunE: withGame(func(g *session.Game, args []string) error {
		d := g.Engine().Data()
		for i := 0; i < len(args); i += 2 {
			a, err := cellFacelet(d, args[i])
			if err != nil {
				return err
			}
			b, err := cellFacelet(d, args[i+1])
			if err != nil {
				return err
			}
			if err := g.SwapColors(a, b); err != nil {
				return fmt.Errorf("failed to swap %s and %s: %w", args[i], args[i+1], err)
			}
		}
		return nil
	}),
}

// cellFacelet resolves a net cell such as "F2,3" to a facelet id.
func cellFacelet(d *puzzle.Data, cell string) (int, error) {
	face, row, col, err := parseCell(cell)
	if err != nil {
		return 0, err
	}
	id, ok := d.FaceletAt(face, row, col)
	if !ok {
		return 0, fmt.Errorf("cell %q is off an order-%d net", cell, d.Order)
	}
	return id, nil
}

// parseCell splits "F2,3" into the face and zero-based row and column.
func parseCell(cell string) (puzzle.Face, int, int, error) {
	bad := fmt.Errorf("invalid cell %q, want <face><row>,<col> like F2,3", cell)
	if len(cell) < 4 {
		return 0, 0, 0, bad
	}
	face, ok := faceByLetter(cell[:1])
	if !ok {
		return 0, 0, 0, bad
	}
	rs, cs, ok := strings.Cut(cell[1:], ",")
	if !ok {
		return 0, 0, 0, bad
	}
	row, err := strconv.Atoi(rs)
	if err != nil || row < 1 {
		return 0, 0, 0, bad
	}
	col, err := strconv.Atoi(cs)
	if err != nil || col < 1 {
		return 0, 0, 0, bad
	}
	return face, row - 1, col - 1, nil
}

func faceByLetter(s string) (puzzle.Face, bool) {
	for _, f := range puzzle.Faces {
		if strings.EqualFold(f.String(), s) {
			return f, true
		}
	}
	return 0, false
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the saved puzzle to solved",
	RunE: withGame(func(g *session.Game, args []string) error {
		if err := g.Reset(); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}
		return nil
	}),
}

var turnCmd = &cobra.Command{
	Use:   "turn <moves>",
	Short: "Apply face turns to the saved puzzle",
	Long: `Apply a sequence of face turns in standard notation, for example:

  rubiks turn "R U R' U'"
  rubiks turn --order 4 "2R 2R'"

A digit prefix turns an inner layer counted from the face.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withGame(func(g *session.Game, args []string) error {
		moves, err := notation.ParseMoves(strings.Join(args, " "))
		if err != nil {
			return err
		}
		for _, m := range moves {
			if err := g.Do(m, false); err != nil {
				return fmt.Errorf("failed to apply %s: %w", m, err)
			}
		}
		fmt.Printf("Applied: %s\n", notation.FormatMoves(moves))
		return nil
	}),
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Print the puzzle as letters instead of colors")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(scrambleCmd)
	rootCmd.AddCommand(shuffleCmd)
	rootCmd.AddCommand(swapCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(turnCmd)
}

// withGame opens the game, runs fn and prints the resulting puzzle.
func withGame(fn func(g *session.Game, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		g, closeGame, err := openGame()
		if err != nil {
			return err
		}
		defer closeGame()

		if err := fn(g, args); err != nil {
			return err
		}
		printPuzzle(g)
		return nil
	}
}

func printPuzzle(g *session.Game) {
	d := g.Engine().Data()
	if plainOutput {
		fmt.Print(d.String())
	} else {
		fmt.Print(renderNet(d.Net()))
	}

	st := g.Status()
	state := "scrambled"
	if st.Solved {
		state = "solved"
	}
	fmt.Printf("\nOrder %d, %s (%d of 6 faces solved)", st.Order, state, d.SolvedFaces())
	if st.Phase != session.PhaseIdle {
		fmt.Printf(", attempt %s", st.Phase)
	}
	fmt.Println()
}
