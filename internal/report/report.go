// Package report renders shot results for the terminal.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/golfsim/internal/batch"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/trajectory"
)

func metric(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, MetricLabel.Render(label), MetricValue.Render(value))
}

// Summary renders the headline numbers of one shot in a panel.
func Summary(w io.Writer, title string, res *trajectory.ShotResult) error {
	l := res.Launch
	c := res.Conditions

	lines := []string{
		Title.Render(title),
		Subtle.Render(fmt.Sprintf("%s | %.0f°F, %.0f ft, %.0f%% RH, wind %.0f mph @ %.0f°",
			res.Surface, c.TemperatureF, c.ElevationFt, c.HumidityPct, c.WindSpeedMph, c.WindDirectionDeg)),
		"",
		metric("Launch", fmt.Sprintf("%.1f mph  %.1f°  %+.1f°", l.BallSpeedMph, l.VerticalLaunchAngle, l.HorizontalLaunchAngle)),
		metric("Spin", fmt.Sprintf("%.0f back  %+.0f side", l.BackspinRpm, l.SidespinRpm)),
		"",
		metric("Carry", fmt.Sprintf("%.1f yd", res.CarryDistance)),
		metric("Roll", fmt.Sprintf("%.1f yd", res.RollDistance)),
		metric("Total", fmt.Sprintf("%.1f yd", res.TotalDistance)),
		metric("Offline", fmt.Sprintf("%+.1f yd", res.OfflineDistance)),
		metric("Apex", fmt.Sprintf("%.1f ft @ %.2fs", res.MaxHeight, res.MaxHeightTime)),
		metric("Landing", fmt.Sprintf("%.1f mph  %.1f°  %.0f rpm", res.LandingSpeed, res.LandingAngle, res.LandingSpin)),
		metric("Time", fmt.Sprintf("%.2fs flight  %.2fs total", res.FlightTime, res.TotalTime)),
		metric("Bounces", fmt.Sprintf("%d", res.BounceCount)),
	}
	if res.Anomaly {
		lines = append(lines, "", Warning.Render("anomaly: "+res.AnomalyReason))
	}

	_, err := fmt.Fprintln(w, Panel.Render(strings.Join(lines, "\n")))
	return err
}

// Table lists one row per shot.
func Table(w io.Writer, results []batch.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSPEED\tLAUNCH\tSPIN\tCARRY\tROLL\tTOTAL\tOFFLINE\tAPEX\tBOUNCES")

	for _, r := range results {
		if r.Result == nil {
			continue
		}
		l, res := r.Shot.Launch, r.Result
		name := r.Shot.Name
		if name == "" {
			name = shortID(r.Shot.ID)
		}
		if res.Anomaly {
			name += " (!)"
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f°\t%.0f\t%.1f\t%.1f\t%.1f\t%+.1f\t%.1f\t%d\n",
			name, l.BallSpeedMph, l.VerticalLaunchAngle, l.BackspinRpm,
			res.CarryDistance, res.RollDistance, res.TotalDistance, res.OfflineDistance,
			res.MaxHeight, res.BounceCount,
		)
	}
	return tw.Flush()
}

// Metrics prints aggregate statistics sorted by name.
func Metrics(w io.Writer, values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%.2f\n", name, values[name])
	}
	return tw.Flush()
}

// Deviation is one row of a calibration report.
type Deviation struct {
	Name      string
	Carry     float64
	Target    float64
	Tolerance float64 // fraction of Target
}

func (d Deviation) Error() float64 {
	if d.Target == 0 {
		return 0
	}
	return (d.Carry - d.Target) / d.Target
}

func (d Deviation) Pass() bool {
	return math.Abs(d.Error()) <= d.Tolerance
}

func Calibration(w io.Writer, rows []Deviation) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SHOT\tCARRY\tTARGET\tERROR\tLIMIT\tSTATUS")
	for _, d := range rows {
		status := Good.Render("ok")
		if !d.Pass() {
			status = Bad.Render("FAIL")
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%.0f\t%+.2f%%\t±%.0f%%\t%s\n",
			d.Name, d.Carry, d.Target, d.Error()*100, d.Tolerance*100, status)
	}
	return tw.Flush()
}

// HeightProfile plots height in feet against sample index, covering flight
// and bounces.
func HeightProfile(res *trajectory.ShotResult) string {
	var data []float64
	for _, p := range res.Trajectory {
		if p.Phase == physics.PhaseRolling {
			break
		}
		data = append(data, p.Position.Y)
	}
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("height (ft) over %.0f yd carry", res.CarryDistance)),
	)
}

// LateralProfile plots offline yards against sample index.
func LateralProfile(res *trajectory.ShotResult) string {
	data := make([]float64, 0, len(res.Trajectory))
	for _, p := range res.Trajectory {
		data = append(data, p.Position.Z)
	}
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("offline (yd)"),
	)
}

// Sweep prints carry against one varied input, as a table and a plot.
func Sweep(w io.Writer, label string, xs, carries []float64) error {
	if len(xs) != len(carries) {
		return fmt.Errorf("report: %d inputs but %d carries", len(xs), len(carries))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tCARRY\tDELTA\n", strings.ToUpper(label))
	for i := range xs {
		fmt.Fprintf(tw, "%g\t%.1f\t%+.1f\n", xs[i], carries[i], carries[i]-carries[0])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(carries) > 1 {
		_, err := fmt.Fprintln(w, "\n"+asciigraph.Plot(carries,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("carry (yd) vs "+label),
		))
		return err
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
