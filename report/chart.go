package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/aggregate"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/similarity"
)

// renderBarChart writes a PNG bar chart of the mean vulnerability index per
// group to path.
func renderBarChart(summary *aggregate.Summary, path string) error {
	p := plot.New()
	p.Title.Text = "Índice médio de vulnerabilidade por grupo"
	p.X.Label.Text = "Grupo"
	p.Y.Label.Text = "Índice médio"

	values := make(plotter.Values, len(summary.Groups))
	labels := make([]string, len(summary.Groups))
	for i, g := range summary.Groups {
		values[i] = g.Mean
		labels[i] = fmt.Sprintf("G%d", g.Label)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return errors.WrapDegraded(
			fmt.Errorf("%w: %v", errors.ErrRenderFailed, err),
			"ChartRenderer", "renderBarChart", "build bar chart")
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(0)

	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(7*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.WrapDegraded(
			fmt.Errorf("%w: %v", errors.ErrRenderFailed, err),
			"ChartRenderer", "renderBarChart", "save chart image")
	}
	return nil
}

// renderGraph writes a PNG of the similarity graph to path. Nodes are placed
// by a seeded force-directed layout and colored by community; edge width
// follows similarity weight.
func renderGraph(g *similarity.Graph, membership []int, seed int64, path string) error {
	p := plot.New()
	p.Title.Text = "Comunidades na rede de similaridade"
	p.HideAxes()

	pos := fruchtermanReingold(g, seed)

	for _, e := range g.Edges {
		line, err := plotter.NewLine(plotter.XYs{
			{X: pos[e.I].X, Y: pos[e.I].Y},
			{X: pos[e.J].X, Y: pos[e.J].Y},
		})
		if err != nil {
			return errors.WrapDegraded(
				fmt.Errorf("%w: %v", errors.ErrRenderFailed, err),
				"ChartRenderer", "renderGraph", "build edge line")
		}
		line.LineStyle.Width = vg.Points(0.2 + 1.5*e.Weight)
		line.LineStyle.Color = color.Gray{Y: 190}
		p.Add(line)
	}

	// One scatter per community so each gets its own color and legend entry
	byGroup := make(map[int]plotter.XYs)
	for node, label := range membership {
		byGroup[label] = append(byGroup[label], plotter.XY{X: pos[node].X, Y: pos[node].Y})
	}
	for label := 0; label < len(byGroup); label++ {
		scatter, err := plotter.NewScatter(byGroup[label])
		if err != nil {
			return errors.WrapDegraded(
				fmt.Errorf("%w: %v", errors.ErrRenderFailed, err),
				"ChartRenderer", "renderGraph", "build node scatter")
		}
		scatter.GlyphStyle.Color = plotutil.Color(label)
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("G%d", label), scatter)
	}
	p.Legend.Top = true

	if err := p.Save(7*vg.Inch, 7*vg.Inch, path); err != nil {
		return errors.WrapDegraded(
			fmt.Errorf("%w: %v", errors.ErrRenderFailed, err),
			"ChartRenderer", "renderGraph", "save graph image")
	}
	return nil
}
