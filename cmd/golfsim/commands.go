package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/golfsim/internal/batch"
	"github.com/san-kum/golfsim/internal/config"
	"github.com/san-kum/golfsim/internal/export"
	"github.com/san-kum/golfsim/internal/metrics"
	"github.com/san-kum/golfsim/internal/optim"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/report"
	"github.com/san-kum/golfsim/internal/trajectory"
)

func runShot(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd, trajectory.WithSampleInterval(sampleStep))
	if err != nil {
		return err
	}
	l, err := launchFromFlags(cmd)
	if err != nil {
		return err
	}

	res := e.sim.Simulate(l)
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		return export.WriteJSON(out, res)
	case "csv":
		return export.WriteCSV(out, res)
	case "table":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	title := "shot"
	if preset != "" {
		title = preset
	}
	if err := report.Summary(out, title, res); err != nil {
		return err
	}
	if plot {
		fmt.Fprintln(out)
		fmt.Fprintln(out, report.HeightProfile(res))
		fmt.Fprintln(out)
		fmt.Fprintln(out, report.LateralProfile(res))
	}
	return nil
}

type canonical struct {
	preset    string
	target    float64
	tolerance float64
}

var canonicalShots = []canonical{
	{"driver", 275, 0.05},
	{"driver-high-spin", 259, 0.03},
	{"7iron", 172, 0.05},
	{"wedge", 136, 0.05},
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	std, err := e.sim.WithConditions(physics.DefaultConditions())
	if err != nil {
		return err
	}

	shots := make([]batch.Shot, len(canonicalShots))
	for i, c := range canonicalShots {
		shots[i] = batch.Shot{Name: c.preset, Launch: config.Presets[c.preset]}
	}

	results, err := batch.Run(cmd.Context(), std, shots, e.settings.Workers)
	if err != nil {
		return err
	}

	rows := make([]report.Deviation, len(results))
	failed := 0
	for i, r := range results {
		c := canonicalShots[i]
		rows[i] = report.Deviation{Name: c.preset, Carry: r.Result.CarryDistance, Target: c.target, Tolerance: c.tolerance}
		if !rows[i].Pass() {
			failed++
		}
	}

	if err := report.Calibration(cmd.OutOrStdout(), rows); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d shots outside tolerance", failed, len(rows))
	}
	return nil
}

type sweepVar struct {
	values []float64
	apply  func(c *physics.Conditions, v float64)
}

var sweeps = map[string]sweepVar{
	"elevation": {
		values: []float64{0, 1000, 2500, 5000, 8000},
		apply:  func(c *physics.Conditions, v float64) { c.ElevationFt = v },
	},
	"temperature": {
		values: []float64{40, 55, 70, 85, 100},
		apply:  func(c *physics.Conditions, v float64) { c.TemperatureF = v },
	},
	"wind": {
		values: []float64{-20, -10, -5, 0, 5, 10, 20},
		apply: func(c *physics.Conditions, v float64) {
			// negative is a tailwind
			c.WindSpeedMph = v
			c.WindDirectionDeg = 0
			if v < 0 {
				c.WindSpeedMph = -v
				c.WindDirectionDeg = 180
			}
		},
	},
	"humidity": {
		values: []float64{0, 25, 50, 75, 100},
		apply:  func(c *physics.Conditions, v float64) { c.HumidityPct = v },
	},
}

func sweepVariables() []string {
	names := make([]string, 0, len(sweeps))
	for name := range sweeps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runSweep(cmd *cobra.Command, args []string) error {
	sv, ok := sweeps[args[0]]
	if !ok {
		return fmt.Errorf("unknown sweep %q (available: %v)", args[0], sweepVariables())
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	l, err := launchFromFlags(cmd)
	if err != nil {
		return err
	}

	carries := make([]float64, len(sv.values))
	for i, v := range sv.values {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		c := e.sim.Conditions()
		sv.apply(&c, v)
		sim, err := e.sim.WithConditions(c)
		if err != nil {
			return err
		}
		carries[i] = sim.Simulate(l).CarryDistance
	}

	return report.Sweep(cmd.OutOrStdout(), args[0], sv.values, carries)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	objName, _ := flags.GetString("objective")
	objective, err := optim.ObjectiveByName(objName)
	if err != nil {
		return err
	}
	angles, _ := flags.GetFloat64Slice("angles")
	spins, _ := flags.GetFloat64Slice("spins")
	if len(angles) != 3 || len(spins) != 3 {
		return fmt.Errorf("--angles and --spins take min,max,step")
	}

	grid := optim.NewGridSearch(
		[]string{"angle", "spin"},
		[][]float64{
			optim.Linspace(angles[0], angles[1], angles[2]),
			optim.Linspace(spins[0], spins[1], spins[2]),
		},
	)

	build := func(p map[string]float64) (trajectory.LaunchData, error) {
		if p["angle"] <= 0 || p["angle"] >= 90 {
			return trajectory.LaunchData{}, fmt.Errorf("launch angle %g outside (0, 90)", p["angle"])
		}
		if p["spin"] < 0 {
			return trajectory.LaunchData{}, fmt.Errorf("negative backspin %g", p["spin"])
		}
		return trajectory.LaunchData{BallSpeedMph: ballSpeed, VerticalLaunchAngle: p["angle"], BackspinRpm: p["spin"]}, nil
	}

	best, score, err := grid.Search(cmd.Context(), build, e.sim, objective)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "searched %d launches at %.1f mph\n", grid.Points(), ballSpeed)
	fmt.Fprintf(out, "best %s: %.1f yd at %.1f° launch, %.0f rpm\n\n", objName, score, best["angle"], best["spin"])

	res := e.sim.Simulate(trajectory.LaunchData{BallSpeedMph: ballSpeed, VerticalLaunchAngle: best["angle"], BackspinRpm: best["spin"]})
	return report.Summary(out, "optimal launch", res)
}

func runRoll(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	speed, _ := flags.GetFloat64("speed")
	angle, _ := flags.GetFloat64("angle")
	spin, _ := flags.GetFloat64("spin")

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SURFACE\tROLL (yd)")
	for _, name := range physics.Surfaces() {
		s, _ := physics.SurfaceByName(name)
		d := physics.EstimateRollWithSpin(speed*physics.MphToMps, angle, spin, s) * physics.MetersToYard
		marker := ""
		if name == e.sim.Surface().Name {
			marker = " *"
		}
		fmt.Fprintf(w, "%s%s\t%.1f\n", name, marker, d)
	}
	return w.Flush()
}

func runSession(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	sim, err := cfg.Simulator(e.logger)
	if err != nil {
		return err
	}
	shots, err := cfg.BatchShots()
	if err != nil {
		return err
	}

	results, err := batch.Run(cmd.Context(), sim, shots, e.settings.Workers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return export.WriteJSON(out, results)
	case "csv":
		return export.WriteSummaryCSV(out, results)
	case "table":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if err := report.Table(out, results); err != nil {
		return err
	}

	rs := make([]*trajectory.ShotResult, len(results))
	for i, r := range results {
		rs[i] = r.Result
	}
	fmt.Fprintln(out)
	return report.Metrics(out, metrics.Collect(rs, metrics.Standard()...))
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "session.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	cfg := config.DefaultConfig()
	for _, name := range []string{"driver", "7iron", "wedge"} {
		cfg.Shots = append(cfg.Shots, config.ShotConfig{Name: name, Preset: name})
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	points, err := export.ReadCSV(r)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	res := &trajectory.ShotResult{Trajectory: points}
	for _, p := range points {
		if p.Phase == physics.PhaseBounce {
			res.CarryDistance = p.Position.X
			break
		}
	}

	height := report.HeightProfile(res)
	if height == "" {
		return fmt.Errorf("%s: not enough flight points to plot", args[0])
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, height)
	fmt.Fprintln(out)
	fmt.Fprintln(out, report.LateralProfile(res))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSPEED\tLAUNCH\tDIRECTION\tBACKSPIN\tSIDESPIN")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%+.1f\t%.0f\t%+.0f\n",
			name, p.BallSpeedMph, p.VerticalLaunchAngle, p.HorizontalLaunchAngle, p.BackspinRpm, p.SidespinRpm)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "CONDITIONS\tTEMP\tELEV\tHUMIDITY\tWIND\tFROM")
	for _, name := range config.ListConditions() {
		c := config.ConditionPresets[name]
		fmt.Fprintf(w, "%s\t%.0f°F\t%.0f ft\t%.0f%%\t%.0f mph\t%.0f°\n",
			name, c.TemperatureF, c.ElevationFt, c.HumidityPct, c.WindSpeedMph, c.WindDirectionDeg)
	}
	return w.Flush()
}

func listSurfaces(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SURFACE\tCOR x\tROLLING RES\tSPIN BRAKE\tSPIN ABSORB")
	for _, name := range physics.Surfaces() {
		s, _ := physics.SurfaceByName(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.0f%%\n",
			s.Name, s.CORMultiplier, s.RollingResistance, s.SpinBraking, s.SpinAbsorption()*100)
	}
	return w.Flush()
}

