package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"mouserun/pkg/engine/input"
	"mouserun/pkg/engine/random"
	"mouserun/pkg/engine/terminal"
	"mouserun/pkg/game/assets"
	"mouserun/pkg/game/config"
	"mouserun/pkg/game/devtools"
	"mouserun/pkg/game/gameplay"
	"mouserun/pkg/game/renderer"
	ebitenrenderer "mouserun/pkg/game/renderer/ebiten"
	"mouserun/pkg/game/renderer/headless"
	"mouserun/pkg/game/renderer/tui"
	"mouserun/pkg/game/setup"
	"mouserun/pkg/logger"
)

func main() {
	configPath := flag.String("config", "mouserun.yaml", "path to the YAML config file")
	seed := flag.Int64("seed", 0, "level seed (0 picks one from the clock)")
	rendererName := flag.String("renderer", "", "renderer: tui, ebiten or headless (overrides config)")
	dump := flag.Bool("dump", false, "write layout.txt and exit")
	dumpTicks := flag.Int("dump-ticks", 0, "autopilot ticks to run before -dump")
	reduced := flag.Bool("reduced", false, "force the reduced scatter tier")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *rendererName != "" {
		cfg.Renderer = *rendererName
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Renderer == "tui" && !*dump && !terminal.Interactive() {
		cfg.Renderer = "headless"
	}

	logOut, closeLog, err := openLog(*logPath, cfg.Renderer)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()
	log := logger.New(cfg.Log, logOut)

	gotext.Configure(cfg.Locale.Path, cfg.Locale.Language, cfg.Locale.Domain)

	rng, usedSeed := random.New(cfg.Seed)
	log.WithFields(logrus.Fields{"seed": usedSeed, "renderer": cfg.Renderer}).Info("Starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lib, err := assets.Load(ctx, assets.DefaultManifest(), func(kind assets.Kind, done, total int) {
		log.WithField("kind", kind).Debugf("Template %d/%d built", done, total)
	})
	if err != nil {
		log.WithError(err).Fatal("Could not load assets")
	}

	session, err := gameplay.NewSession(cfg, lib, rng, logger.Component(log, "session"))
	if err != nil {
		log.WithError(err).Fatal("Could not build session")
	}

	if *dump {
		session.PlaceScenery(*reduced)
		if err := runDump(session, *dumpTicks, cfg); err != nil {
			log.WithError(err).Fatal("Layout dump failed")
		}
		return
	}

	r := newRenderer(cfg.Renderer, log)
	if err := r.Init(); err != nil {
		log.WithError(err).Fatal("Could not initialise renderer")
	}
	renderer.SetRenderer(r)
	defer r.Close()

	session.PlaceScenery(*reduced || setup.Reduced(cfg.Scatter, renderer.ViewportCols()))

	if err := run(ctx, session, r, cfg, log); err != nil {
		r.Close()
		log.WithError(err).Fatal("Run failed")
	}
}

// openLog picks the log destination. The TUI owns stdout, so without a log
// file its logs are discarded.
func openLog(path, rendererName string) (io.Writer, func(), error) {
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if rendererName == "tui" {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

func newRenderer(name string, log *logrus.Logger) renderer.Renderer {
	switch name {
	case "ebiten":
		return ebitenrenderer.New(logger.Component(log, "ebiten"))
	case "headless":
		return headless.New(logger.Component(log, "headless"))
	default:
		return tui.New(logger.Component(log, "tui"))
	}
}

// runDump advances the session on autopilot and writes layout.txt
func runDump(s *gameplay.Session, ticks int, cfg config.Config) error {
	if ticks > 0 {
		if err := s.Start(); err != nil {
			return err
		}
		pilot := &gameplay.Autopilot{}
		dt := 1 / float64(cfg.Gameplay.TickRate)
		for i := 0; i < ticks && !s.Game().Over; i++ {
			pilot.Steer(s)
			s.Tick(dt)
		}
	}
	path, err := devtools.DumpLayoutToFile(s.Snapshot(), s.Field())
	if err != nil {
		return err
	}
	fmt.Println(fmt.Sprintf(gotext.Get("LAYOUT_DUMPED"), path))
	return nil
}

// run drives the session from a ticker goroutine while the renderer owns
// the main goroutine.
func run(ctx context.Context, s *gameplay.Session, r renderer.Renderer, cfg config.Config, log *logrus.Logger) error {
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer quit()
		return loop(gctx, s, r, cfg, log)
	})

	runErr := r.Run(gctx)
	quit()
	if err := g.Wait(); err != nil {
		return err
	}
	return runErr
}

// loop ticks the session at the configured rate and pushes a frame per tick
func loop(ctx context.Context, s *gameplay.Session, r renderer.Renderer, cfg config.Config, log *logrus.Logger) error {
	intents := r.Intents()
	var pilot *gameplay.Autopilot
	if intents == nil {
		pilot = &gameplay.Autopilot{}
		if err := s.Start(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Gameplay.TickRate))
	defer ticker.Stop()
	last := time.Now()

	r.RenderFrame(s.Snapshot())
	for {
		select {
		case <-ctx.Done():
			return nil

		case intent, ok := <-intents:
			if !ok {
				return nil
			}
			if done, err := handleIntent(s, intent); done || err != nil {
				return err
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if pilot != nil {
				pilot.Steer(s)
			}
			s.Tick(dt)
			snap := s.Snapshot()
			r.RenderFrame(snap)

			if pilot != nil && (snap.Over || snap.Ticks >= cfg.Gameplay.HeadlessMaxTicks) {
				log.WithField("ticks", snap.Ticks).Info(gotext.Get("GOODBYE"))
				return nil
			}
		}
	}
}

// handleIntent applies one player intent. It reports done when the player quits.
func handleIntent(s *gameplay.Session, intent input.Intent) (bool, error) {
	g := s.Game()
	switch intent.Action {
	case input.ActionQuit:
		return true, nil
	case input.ActionRestart:
		return false, s.Restart()
	case input.ActionDump:
		_, err := devtools.DumpLayoutToFile(s.Snapshot(), s.Field())
		return false, err
	}

	if !g.Started {
		if err := s.Start(); err != nil && !errors.Is(err, gameplay.ErrGameOver) {
			return false, err
		}
		return false, nil
	}

	switch intent.Action {
	case input.ActionLaneLeft:
		s.MoveLeft()
	case input.ActionLaneRight:
		s.MoveRight()
	case input.ActionJump:
		s.Jump()
	}
	return false, nil
}
