package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/avolkova/minesweeper-agent/internal/game"
)

var log = logrus.New()

var (
	width     int
	height    int
	mineCount int
	rounds    int
	workers   int
	seed      uint64
	verbose   bool
	logFile   string
)

func init() {
	flag.IntVar(&width, "width", 8, "board width")
	flag.IntVar(&height, "height", 8, "board height")
	flag.IntVar(&mineCount, "mines", 8, "number of mines")
	flag.IntVar(&rounds, "rounds", 100, "number of games to play")
	flag.IntVar(&workers, "workers", 4, "concurrent games")
	flag.Uint64Var(&seed, "seed", 1, "random seed")
	flag.BoolVar(&verbose, "v", false, "log each game as it finishes")
	flag.StringVar(&logFile, "log-file", "", "also write logs to this file (rotated)")
}

func setupLogging() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if logFile == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to create log file hook: ", err)
	}
	log.AddHook(hook)
}

func main() {
	flag.Parse()
	setupLogging()

	params := game.Params{Width: width, Height: height, MineCount: mineCount}
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	log.WithFields(logrus.Fields{
		"board":  fmt.Sprintf("%dx%d(%d)", width, height, mineCount),
		"rounds": rounds,
	}).Info("starting batch")

	var won, lost, guesses, moves atomic.Int64

	var g errgroup.Group
	g.SetLimit(workers)
	for round := range rounds {
		g.Go(func() error {
			r := rand.New(rand.NewPCG(seed, uint64(round)))
			s, err := game.NewSession(params, r)
			if err != nil {
				return err
			}
			outcome, err := s.Play(0)
			if err != nil {
				return fmt.Errorf("round %d: %w", round, err)
			}

			switch outcome {
			case game.Won:
				won.Add(1)
			case game.Lost:
				lost.Add(1)
			}
			guesses.Add(int64(s.GuessesTaken))
			moves.Add(int64(len(s.Moves)))

			log.WithFields(logrus.Fields{
				"round":   round,
				"outcome": outcome.String(),
				"moves":   len(s.Moves),
				"guesses": s.GuessesTaken,
			}).Debug("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	log.WithFields(logrus.Fields{
		"won":        won.Load(),
		"lost":       lost.Load(),
		"winRate":    fmt.Sprintf("%.1f%%", 100*float64(won.Load())/float64(rounds)),
		"avgMoves":   fmt.Sprintf("%.1f", float64(moves.Load())/float64(rounds)),
		"avgGuesses": fmt.Sprintf("%.1f", float64(guesses.Load())/float64(rounds)),
	}).Info("batch finished")

	if lost.Load()+won.Load() < int64(rounds) {
		// stalled games indicate the move loop gave up early
		os.Exit(1)
	}
}
