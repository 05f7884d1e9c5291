// Package export writes shot results as JSON or CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/golfsim/internal/batch"
	"github.com/san-kum/golfsim/internal/physics"
	"github.com/san-kum/golfsim/internal/trajectory"
)

var trajectoryHeader = []string{"time", "x_yd", "y_ft", "z_yd", "phase"}

var summaryHeader = []string{
	"id", "name", "ball_speed_mph", "launch_deg", "direction_deg", "backspin_rpm", "sidespin_rpm",
	"carry_yd", "roll_yd", "total_yd", "offline_yd", "apex_ft", "flight_s", "total_s", "bounces", "anomaly",
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteCSV writes the sampled trajectory, one point per row.
func WriteCSV(w io.Writer, res *trajectory.ShotResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}
	for _, p := range res.Trajectory {
		row := []string{
			formatFloat(p.Time),
			formatFloat(p.Position.X),
			formatFloat(p.Position.Y),
			formatFloat(p.Position.Z),
			p.Phase.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes one row per shot.
func WriteSummaryCSV(w io.Writer, results []batch.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		l, res := r.Shot.Launch, r.Result
		row := []string{
			r.Shot.ID,
			r.Shot.Name,
			formatFloat(l.BallSpeedMph),
			formatFloat(l.VerticalLaunchAngle),
			formatFloat(l.HorizontalLaunchAngle),
			formatFloat(l.BackspinRpm),
			formatFloat(l.SidespinRpm),
			formatFloat(res.CarryDistance),
			formatFloat(res.RollDistance),
			formatFloat(res.TotalDistance),
			formatFloat(res.OfflineDistance),
			formatFloat(res.MaxHeight),
			formatFloat(res.FlightTime),
			formatFloat(res.TotalTime),
			strconv.Itoa(res.BounceCount),
			strconv.FormatBool(res.Anomaly),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a trajectory written by WriteCSV.
func ReadCSV(r io.Reader) ([]trajectory.TrajectoryPoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(trajectoryHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []trajectory.TrajectoryPoint{}, nil
	}

	points := make([]trajectory.TrajectoryPoint, 0, len(records)-1)
	for i, record := range records[1:] {
		var vals [4]float64
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, %s: %w", i+1, trajectoryHeader[j], err)
			}
			vals[j] = v
		}

		var phase physics.Phase
		if err := phase.UnmarshalText([]byte(record[4])); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		points = append(points, trajectory.TrajectoryPoint{
			Time:     vals[0],
			Position: physics.Vec3{X: vals[1], Y: vals[2], Z: vals[3]},
			Phase:    phase,
		})
	}
	return points, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
