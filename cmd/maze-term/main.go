// Command maze-term plays tilt-maze in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/beka-birhanu/tilt-maze/config"
	logger "github.com/beka-birhanu/tilt-maze/infrastruture/log"
	"github.com/beka-birhanu/tilt-maze/terminal"
	"github.com/gdamore/tcell/v2"
)

func main() {
	rows := flag.Int("rows", 10, "maze rows")
	cols := flag.Int("cols", 14, "maze columns")
	seed := flag.Int64("seed", time.Now().UnixNano(), "generation seed")
	logPath := flag.String("log", "", "log file (the terminal is busy drawing)")
	mute := flag.Bool("mute", false, "disable the win chime")
	flag.Parse()

	logOut, err := openLog(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logOut.Close()

	appLogger, err := logger.New("MAZE-TERM", config.ColorBlue, logOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	var chime *terminal.Chime
	if !*mute {
		chime, err = terminal.NewChime()
		if err != nil {
			// Non-fatal, the game runs without sound
			appLogger.Warning(fmt.Sprintf("Audio initialization failed: %v", err))
		}
		defer chime.Close()
	}

	app, err := terminal.NewApp(terminal.Options{
		Screen: screen,
		Chime:  chime,
		Logger: appLogger,
		Rows:   *rows,
		Cols:   *cols,
		Width:  float64(*cols) * 60,
		Height: float64(*rows) * 60,
		Seed:   *seed,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error(fmt.Sprintf("Game loop: %v", err))
	}
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
