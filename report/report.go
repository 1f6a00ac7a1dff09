package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/aggregate"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/config"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/pkg/graphclustering"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/similarity"
)

// Reporter writes the analysis outputs: the statistics CSV, the paginated
// PDF report and the stdout summary table.
type Reporter struct {
	cfg    config.Config
	logger *slog.Logger
	runID  string
}

// NewReporter creates a reporter for the given run configuration.
func NewReporter(cfg config.Config, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{cfg: cfg, logger: logger}
}

// WithRunID stamps the run identifier into the PDF footer.
func (r *Reporter) WithRunID(id string) *Reporter {
	r.runID = id
	return r
}

// WriteCSV writes the per-group statistics to the configured CSV path.
func (r *Reporter) WriteCSV(summary *aggregate.Summary) error {
	if err := WriteGroupStatsCSV(summary, r.cfg.OutputCSV); err != nil {
		return err
	}
	r.logger.Info("Group statistics written", "path", r.cfg.OutputCSV, "groups", len(summary.Groups))
	return nil
}

// WritePDF renders the chart images and assembles the PDF report at the
// configured path. A failed chart degrades to an inline message in the
// report instead of aborting the run. Temporary images are removed on a
// best-effort basis.
func (r *Reporter) WritePDF(
	graph *similarity.Graph,
	result *graphclustering.Result,
	summary *aggregate.Summary,
	top []aggregate.RankedRespondent,
) error {
	doc := &Document{Title: "Relatório de Vulnerabilidade Social - Fastgreedy"}
	if r.runID != "" {
		doc.Footer = "Execução " + r.runID
	}

	doc.Sections = append(doc.Sections, Section{
		Title: "Visão geral",
		Body: fmt.Sprintf(
			"Foram analisados %d respondentes. A rede de similaridade possui %d arestas "+
				"(limiar %.2f) e foi particionada em %d grupos com modularidade %.4f.",
			summary.Total, len(graph.Edges), r.cfg.SimilarityThreshold,
			result.CommunityCount, result.Modularity),
	})

	doc.Sections = append(doc.Sections, Section{
		Title: "Estatísticas por grupo",
		Table: groupStatsTable(summary),
	})

	barSection := Section{Title: "Índice médio por grupo", PageBreak: true}
	barPath, err := r.renderTempChart("bar", func(path string) error {
		return renderBarChart(summary, path)
	})
	if err != nil {
		r.logger.Warn("Bar chart rendering failed, report degraded", "error", err)
		barSection.ImageError = "Gráfico de barras indisponível: falha na renderização."
	} else {
		barSection.ImagePath = barPath
		defer r.removeTemp(barPath)
	}
	doc.Sections = append(doc.Sections, barSection)

	graphSection := Section{Title: "Rede de similaridade", PageBreak: true}
	graphPath, err := r.renderTempChart("graph", func(path string) error {
		return renderGraph(graph, result.Membership, r.cfg.LayoutSeed, path)
	})
	if err != nil {
		r.logger.Warn("Graph rendering failed, report degraded", "error", err)
		graphSection.ImageError = "Visualização da rede indisponível: falha na renderização."
	} else {
		graphSection.ImagePath = graphPath
		defer r.removeTemp(graphPath)
	}
	doc.Sections = append(doc.Sections, graphSection)

	doc.Sections = append(doc.Sections, Section{
		Title:     fmt.Sprintf("Top %d respondentes mais vulneráveis", len(top)),
		Table:     topTable(top),
		PageBreak: true,
	})

	if err := doc.Render(r.cfg.OutputPDF); err != nil {
		return err
	}
	r.logger.Info("PDF report written", "path", r.cfg.OutputPDF, "sections", len(doc.Sections))
	return nil
}

// renderTempChart renders a chart into a fresh temporary PNG and returns its
// path. The caller owns cleanup.
func (r *Reporter) renderTempChart(kind string, render func(path string) error) (string, error) {
	f, err := os.CreateTemp("", "vulnreport-"+kind+"-*.png")
	if err != nil {
		return "", err
	}
	path := f.Name()
	f.Close()

	if err := render(path); err != nil {
		r.removeTemp(path)
		return "", err
	}
	return path, nil
}

func (r *Reporter) removeTemp(path string) {
	if err := os.Remove(path); err != nil {
		r.logger.Debug("Temporary image not removed", "path", path, "error", err)
	}
}

// PrintSummary writes the per-group statistics to w as a plain-text table.
func (r *Reporter) PrintSummary(w io.Writer, summary *aggregate.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Grupo", "Media", "Desvio", "N"})
	for _, g := range summary.Groups {
		table.Append([]string{
			strconv.Itoa(g.Label),
			strconv.FormatFloat(g.Mean, 'f', 2, 64),
			strconv.FormatFloat(g.StdDev, 'f', 2, 64),
			strconv.Itoa(g.Count),
		})
	}
	table.SetFooter([]string{"Total", "", "", strconv.Itoa(summary.Total)})
	table.Render()
}

func groupStatsTable(summary *aggregate.Summary) *TableData {
	t := &TableData{
		Widths: []float64{30, 55, 55, 40},
		Header: []string{"Grupo", "Média", "Desvio padrão", "N"},
	}
	for _, g := range summary.Groups {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(g.Label),
			strconv.FormatFloat(g.Mean, 'f', 2, 64),
			strconv.FormatFloat(g.StdDev, 'f', 2, 64),
			strconv.Itoa(g.Count),
		})
	}
	return t
}

func topTable(top []aggregate.RankedRespondent) *TableData {
	t := &TableData{
		Widths: []float64{25, 60, 30, 35, 30},
		Header: []string{"Posição", "ID", "Linha", "Índice", "Grupo"},
	}
	for _, rr := range top {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(rr.Position),
			rr.ID,
			strconv.Itoa(rr.Row),
			strconv.Itoa(rr.Index),
			strconv.Itoa(rr.Group),
		})
	}
	return t
}
