// rubiks - an N×N×N Rubik's cube in the terminal with a solve timer and leaderboard.
package main

import (
	"github.com/SirateeTopradit/skibidi-rizzler-rubiks/internal/cli"
)

func main() {
	cli.Execute()
}
