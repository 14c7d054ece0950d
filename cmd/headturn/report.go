package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/xlab/tablewriter"

	"github.com/askiada/headturn/pkg/orientation"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

// writeReport prints the views of the first session side by side with what the runtime
// received, then the measured outcomes. Every session submits the same frames.
func writeReport(wrt io.Writer, sc *Scenario, sim *simulation, frames []*model.FrameSubmission, res *simulationResult) error {
	title := sc.Name
	if title == "" {
		title = "scenario"
	}

	table := tablewriter.CreateTable()
	table.UTF8Box()
	table.AddTitle(fmt.Sprintf("%s (%s, %d sessions)", title, sim.strategy, len(res.sessions)))
	table.AddRow("frame", "layer", "view", "submitted yaw/pitch/roll", "delivered yaw/pitch/roll")
	table.AddSeparator()

	delivered := res.sessions[0].delivered
	for i, sub := range frames {
		if i >= len(delivered) {
			break
		}

		submitted := projections(sub.Layers)
		received := projections(delivered[i].Layers)

		for j, src := range submitted {
			if j >= len(received) {
				break
			}

			for k, view := range src.Views {
				if k >= len(received[j].Views) {
					break
				}

				table.AddRow(i, j, k, formatAngles(view.Pose.Orientation), formatAngles(received[j].Views[k].Pose.Orientation))
			}
		}
	}

	_, err := fmt.Fprintln(wrt, table.Render())
	if err != nil {
		return errors.Wrap(err, "unable to write report")
	}

	metrics := res.measure.AllMetrics()

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}

	sort.Strings(names)

	summary := tablewriter.CreateTable()
	summary.UTF8Box()
	summary.AddTitle("frames by outcome")
	summary.AddRow("outcome", "frames", "projection layers", "views", "avg filter time")
	summary.AddSeparator()

	for _, name := range names {
		mt := metrics[name]
		summary.AddRow(name, mt.Total(), mt.ProjectionLayers(), mt.Views(), mt.AVGDuration().String())
	}

	_, err = fmt.Fprintln(wrt, summary.Render())
	if err != nil {
		return errors.Wrap(err, "unable to write report")
	}

	return nil
}

// projections returns the non null projection layers of layers, in order.
func projections(layers []model.Layer) []*model.ProjectionLayer {
	var res []*model.ProjectionLayer

	for _, l := range layers {
		if model.IsNil(l) {
			continue
		}

		if p, ok := l.(*model.ProjectionLayer); ok {
			res = append(res, p)
		}
	}

	return res
}

func formatAngles(q orientation.Quat) string {
	e := orientation.ToEuler(q)

	return fmt.Sprintf("%7.2f %7.2f %7.2f", displayDegrees(e.Yaw), displayDegrees(e.Pitch), displayDegrees(e.Roll))
}

// displayDegrees converts to degrees and flushes values that would print as -0.00.
func displayDegrees(rad float32) float32 {
	deg := degrees(rad)
	if math32.Abs(deg) < 0.005 {
		return 0
	}

	return deg
}
