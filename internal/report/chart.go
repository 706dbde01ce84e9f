package report

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/duyhunghd6/polycode-cli/internal/types"
)

// WriteCharts renders the cross-language dashboard as a standalone HTML
// page: a pie of extraction outcomes and a bar chart of structure counters
// per language. Purely derived from the summary report.
func WriteCharts(rep *types.SummaryReport, w io.Writer) error {
	page := components.NewPage()
	page.AddCharts(buildOutcomePie(rep), buildCounterBar(rep))
	return page.Render(w)
}

func buildOutcomePie(rep *types.SummaryReport) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Extraction outcomes"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	pie.AddSeries("outcomes", []opts.PieData{
		{Name: "Parsed", Value: rep.WithCode - rep.WithErrors},
		{Name: "Parse errors", Value: rep.WithErrors},
		{Name: "No code", Value: rep.Total - rep.WithCode},
	})
	return pie
}

func buildCounterBar(rep *types.SummaryReport) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Code structure by language"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	langs := make([]string, 0, len(rep.Languages))
	functions := make([]opts.BarData, 0, len(rep.Languages))
	classes := make([]opts.BarData, 0, len(rep.Languages))
	calls := make([]opts.BarData, 0, len(rep.Languages))

	for _, ls := range rep.Languages {
		langs = append(langs, ls.Language)
		functions = append(functions, opts.BarData{Value: ls.Functions})
		classes = append(classes, opts.BarData{Value: ls.Classes})
		calls = append(calls, opts.BarData{Value: ls.FunctionCalls})
	}

	bar.SetXAxis(langs).
		AddSeries("Functions", functions).
		AddSeries("Classes", classes).
		AddSeries("Function calls", calls)

	return bar
}
