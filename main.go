package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/milk9111/skyscape/server"
)

var (
	verbose bool
	dev     bool

	tourName    string
	watch       bool
	seed        uint64
	addr        string
	baseMonitor bool

	simTour   string
	simFrames int
	simSeed   uint64

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "skyscape",
	Short: "Animated portfolio background",
	Long: `skyscape renders the portfolio's animated background: a drifting cloud sky,
a sunset gradient and a galaxy starfield, cross-fading as the page state changes.

Run without a subcommand to open the window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose, dev)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the background in a window with the page control panel",
	RunE:  runWindow,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the design-system API",
	Long: `Serves GET /api/health and GET /api/design-system.

Configuration comes from the environment (or .env): PORT, CORS_ORIGINS,
RATE_LIMIT_ENABLED, RATE_LIMIT_RPS, RATE_LIMIT_BURST.`,
	RunE: runServe,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a tour headlessly and log every transition",
	RunE:  runSimulate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&dev, "dev", false, "human-readable console logs")

	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().StringVar(&tourName, "tour", "", "play a scripted tour from prefabs/tours")
		cmd.Flags().BoolVar(&watch, "watch", false, "hot reload prefabs/scene.yaml and tours")
		cmd.Flags().Uint64Var(&seed, "seed", 0, "layout seed (0 = random)")
		cmd.Flags().BoolVarP(&baseMonitor, "base-monitor", "m", false, "use the first monitor instead of the primary")
	}

	simulateCmd.Flags().StringVar(&simTour, "tour", "showcase", "tour to play")
	simulateCmd.Flags().IntVar(&simFrames, "frames", 900, "frames to simulate at 60 TPS")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 1, "layout seed")

	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides PORT")

	rootCmd.AddCommand(runCmd, serveCmd, simulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose, dev bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if dev {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func runWindow(cmd *cobra.Command, args []string) error {
	if baseMonitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}

	game, err := NewGame(cmd.Context(), GameOptions{
		Logger: logger,
		Tour:   tourName,
		Watch:  watch,
		Seed:   seed,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("skyscape")

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := server.LoadConfig(logger)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Port = addr
	}
	srv, err := server.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := Simulate(ctx, SimulateOptions{
		Logger: logger,
		Tour:   simTour,
		Frames: simFrames,
		Seed:   simSeed,
	})
	if err != nil {
		return err
	}
	logger.Info("simulation finished",
		zap.Int("frames", summary.Frames),
		zap.Int("started", summary.Started),
		zap.Int("restarted", summary.Restarted),
		zap.Int("finished", summary.Finished),
		zap.Stringer("state", summary.Final.To),
		zap.Float64("progress", summary.Final.Progress),
	)
	return nil
}

