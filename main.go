package main

import (
	"errors"
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/saeidalz13/sea-battle/internal/console"
	cerr "github.com/saeidalz13/sea-battle/internal/error"
	mb "github.com/saeidalz13/sea-battle/models/battleship"
)

func main() {
	seed := flag.Uint64("seed", 0, "seed for fleet placement and computer shots; 0 uses the clock")
	debug := flag.Bool("debug", false, "log every shot")
	plain := flag.Bool("plain", false, "disable colours")
	flag.Parse()

	// Logs go to stderr so they never interleave with the boards
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	styles := console.DefaultStyles()
	if *plain {
		styles = console.PlainStyles()
	}

	game := console.NewGame(mb.NewGame(mb.NewRandom(*seed)), os.Stdin, os.Stdout, console.WithStyles(styles))
	if err := game.Start(); err != nil {
		if errors.Is(err, cerr.ErrInputClosed) {
			log.Info("input closed; leaving the game")
			return
		}
		log.Fatal("game stopped", "err", err)
	}
}
