package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/config"
	"github.com/san-kum/golfsim/internal/integrators"
	"github.com/san-kum/golfsim/internal/logging"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/trajectory"
)

var (
	settingsFile string
	logLevel     string
	logJSON      bool
	surfaceName  string
	integrator   string
	condPreset   string
	temperature  float64
	elevation    float64
	humidity     float64
	windSpeed    float64
	windDir      float64
	workers      int

	// shot parameters
	preset     string
	ballSpeed  float64
	launch     float64
	direction  float64
	backspin   float64
	sidespin   float64
	format     string
	plot       bool
	sampleStep float64
	force      bool
)

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "golfsim",
		Short:         "golf ball flight, bounce and roll simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&settingsFile, "config", "", "settings file (default ./golfsim.yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error, off")
	pf.BoolVar(&logJSON, "log-json", false, "log JSON lines instead of console text")
	pf.StringVar(&surfaceName, "surface", "", "landing surface: "+strings.Join(physics.Surfaces(), ", "))
	pf.StringVar(&integrator, "integrator", "", "integrator: "+strings.Join(integrators.Names(), ", "))
	pf.StringVar(&condPreset, "conditions", "", "conditions preset: "+strings.Join(config.ListConditions(), ", "))
	pf.Float64Var(&temperature, "temp", physics.DefaultTemperatureF, "temperature (°F)")
	pf.Float64Var(&elevation, "elevation", 0, "elevation (ft)")
	pf.Float64Var(&humidity, "humidity", physics.DefaultHumidityPct, "relative humidity (%)")
	pf.Float64Var(&windSpeed, "wind", 0, "wind speed (mph)")
	pf.Float64Var(&windDir, "wind-dir", 0, "wind direction the wind blows from (deg, 0 = headwind, 180 = tailwind)")
	pf.IntVar(&workers, "workers", 0, "parallel workers for batch commands (0 = all CPUs)")

	shotCmd := &cobra.Command{
		Use:   "shot",
		Short: "simulate one shot",
		RunE:  runShot,
	}
	addLaunchFlags(shotCmd)
	shotCmd.Flags().StringVar(&format, "format", "table", "output format: table, json, csv")
	shotCmd.Flags().BoolVar(&plot, "plot", false, "plot height and lateral profiles")
	shotCmd.Flags().Float64Var(&sampleStep, "sample", physics.DefaultSampleInterval, "trajectory sample interval (s)")

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "compare canonical shots against published carries",
		RunE:  runCalibrate,
	}

	sweepCmd := &cobra.Command{
		Use:       "sweep [elevation|temperature|wind|humidity]",
		Short:     "carry versus one environment variable",
		Args:      cobra.ExactArgs(1),
		ValidArgs: sweepVariables(),
		RunE:      runSweep,
	}
	addLaunchFlags(sweepCmd)

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "search launch angle and backspin for the longest shot",
		RunE:  runOptimize,
	}
	optimizeCmd.Flags().Float64Var(&ballSpeed, "speed", 150, "ball speed (mph)")
	optimizeCmd.Flags().String("objective", "carry", "objective: carry, total")
	optimizeCmd.Flags().Float64Slice("angles", []float64{6, 20, 1}, "launch angle min,max,step (deg)")
	optimizeCmd.Flags().Float64Slice("spins", []float64{1500, 5000, 250}, "backspin min,max,step (rpm)")

	rollCmd := &cobra.Command{
		Use:   "roll",
		Short: "quick roll estimate from landing conditions",
		RunE:  runRoll,
	}
	rollCmd.Flags().Float64("speed", 45, "landing speed (mph)")
	rollCmd.Flags().Float64("angle", 40, "landing angle below horizontal (deg)")
	rollCmd.Flags().Float64("spin", 2500, "backspin at landing (rpm)")

	runCmd := &cobra.Command{
		Use:   "run [session.yaml]",
		Short: "simulate every shot in a session file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSession,
	}
	runCmd.Flags().StringVar(&format, "format", "table", "output format: table, json, csv")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list club and conditions presets",
		RunE:  listPresets,
	}

	surfacesCmd := &cobra.Command{
		Use:   "surfaces",
		Short: "list ground surfaces",
		RunE:  listSurfaces,
	}

	initCmd := &cobra.Command{
		Use:   "init [session.yaml]",
		Short: "write a starter session file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	plotCmd := &cobra.Command{
		Use:   "plot [trajectory.csv]",
		Short: "plot a trajectory written by shot --format csv (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	rootCmd.AddCommand(shotCmd, calibrateCmd, sweepCmd, optimizeCmd, rollCmd, runCmd, initCmd, plotCmd, presetsCmd, surfacesCmd)
	return rootCmd
}

func addLaunchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "club preset: "+strings.Join(config.ListPresets(), ", "))
	f.Float64Var(&ballSpeed, "speed", 150, "ball speed (mph)")
	f.Float64Var(&launch, "launch", 12, "vertical launch angle (deg)")
	f.Float64Var(&direction, "direction", 0, "horizontal launch angle (deg, right positive)")
	f.Float64Var(&backspin, "backspin", 2900, "backspin (rpm)")
	f.Float64Var(&sidespin, "sidespin", 0, "sidespin (rpm, right positive)")
}

// env is everything a command needs to fly shots.
type env struct {
	settings *config.Settings
	logger   *zap.Logger
	sim      *trajectory.Simulator
}

func setup(cmd *cobra.Command, opts ...trajectory.Option) (*env, error) {
	s, err := config.LoadSettings(settingsFile)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, s); err != nil {
		return nil, err
	}

	var logger *zap.Logger
	if logJSON {
		logger, err = logging.NewWriter(cmd.ErrOrStderr(), s.LogLevel)
	} else {
		logger, err = logging.New(s.LogLevel)
	}
	if err != nil {
		return nil, err
	}

	surface, err := physics.SurfaceByName(s.Surface)
	if err != nil {
		return nil, err
	}

	all := append([]trajectory.Option{
		trajectory.WithSurface(surface),
		trajectory.WithIntegrator(s.Integrator),
		trajectory.WithLogger(logger),
	}, opts...)

	sim, err := trajectory.NewSimulator(s.Conditions, all...)
	if err != nil {
		return nil, err
	}
	return &env{settings: s, logger: logger, sim: sim}, nil
}

// applyFlags layers explicitly set flags over the loaded settings.
func applyFlags(cmd *cobra.Command, s *config.Settings) error {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		s.LogLevel = logLevel
	}
	if flags.Changed("surface") {
		s.Surface = surfaceName
	}
	if flags.Changed("integrator") {
		s.Integrator = integrator
	}
	if flags.Changed("workers") {
		s.Workers = workers
	}
	if condPreset != "" {
		c := config.GetConditions(condPreset)
		if c == nil {
			return fmt.Errorf("unknown conditions preset %q (available: %s)", condPreset, strings.Join(config.ListConditions(), ", "))
		}
		s.Conditions = *c
	}
	if flags.Changed("temp") {
		s.Conditions.TemperatureF = temperature
	}
	if flags.Changed("elevation") {
		s.Conditions.ElevationFt = elevation
	}
	if flags.Changed("humidity") {
		s.Conditions.HumidityPct = humidity
	}
	if flags.Changed("wind") {
		s.Conditions.WindSpeedMph = windSpeed
	}
	if flags.Changed("wind-dir") {
		s.Conditions.WindDirectionDeg = windDir
	}
	return nil
}

// launchFromFlags starts from the preset, if any, and applies set flags.
func launchFromFlags(cmd *cobra.Command) (trajectory.LaunchData, error) {
	l := trajectory.LaunchData{
		BallSpeedMph:          ballSpeed,
		VerticalLaunchAngle:   launch,
		HorizontalLaunchAngle: direction,
		BackspinRpm:           backspin,
		SidespinRpm:           sidespin,
	}
	if preset == "" {
		return l, nil
	}

	p := config.GetPreset(preset)
	if p == nil {
		return l, fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
	}
	l = *p

	flags := cmd.Flags()
	if flags.Changed("speed") {
		l.BallSpeedMph = ballSpeed
	}
	if flags.Changed("launch") {
		l.VerticalLaunchAngle = launch
	}
	if flags.Changed("direction") {
		l.HorizontalLaunchAngle = direction
	}
	if flags.Changed("backspin") {
		l.BackspinRpm = backspin
	}
	if flags.Changed("sidespin") {
		l.SidespinRpm = sidespin
	}
	return l, nil
}
