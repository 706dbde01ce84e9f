// Package report folds per-language analysis records into a summary report
// and renders it as text and as an HTML chart dashboard.
package report

import (
	"fmt"
	"strings"

	"github.com/duyhunghd6/polycode-cli/internal/types"
)

// Summarize reduces the analysis record mapping into a summary report,
// preserving the given language order. It is a pure reduction: no I/O, no
// mutation of inputs.
func Summarize(order []string, records map[string]*types.AnalysisRecord) *types.SummaryReport {
	rep := &types.SummaryReport{Languages: make([]types.LanguageSummary, 0, len(order))}
	for _, lang := range order {
		rec, ok := records[lang]
		if !ok {
			continue
		}
		rep.Total++
		ls := types.LanguageSummary{Language: lang, HasCode: rec.HasCode, Error: rec.Error}
		if rec.HasCode {
			rep.WithCode++
		}
		if rec.Error != "" {
			rep.WithErrors++
		}
		if rec.Parsed() {
			ls.Functions = rec.Statistics.FunctionCount
			ls.Classes = rec.Statistics.ClassCount
			ls.Imports = rec.Statistics.ImportCount
			ls.Variables = rec.Statistics.VariableCount
			ls.FunctionCalls = rec.Statistics.FunctionCallCount
			ls.Loops = rec.Statistics.LoopCount
			for _, fn := range rec.Elements.Functions {
				ls.FunctionNames = append(ls.FunctionNames, fn.Name)
			}
			for _, cls := range rec.Elements.Classes {
				ls.ClassNames = append(ls.ClassNames, cls.Name)
			}
		}
		rep.Languages = append(rep.Languages, ls)
	}
	return rep
}

// Render produces the textual summary report.
func Render(rep *types.SummaryReport) string {
	var sb strings.Builder
	banner := strings.Repeat("=", 60)

	sb.WriteString(banner + "\n")
	sb.WriteString("PYTHON CODE ANALYSIS SUMMARY REPORT\n")
	sb.WriteString(banner + "\n\n")

	sb.WriteString(fmt.Sprintf("Total languages analyzed: %d\n", rep.Total))
	sb.WriteString(fmt.Sprintf("Languages with valid code: %d\n", rep.WithCode))
	sb.WriteString(fmt.Sprintf("Languages with parsing errors: %d\n\n", rep.WithErrors))

	sb.WriteString("PER-LANGUAGE SUMMARY:\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")

	for _, ls := range rep.Languages {
		sb.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(ls.Language)))

		if !ls.HasCode {
			sb.WriteString("  No code extracted\n")
			continue
		}
		if ls.Error != "" {
			sb.WriteString(fmt.Sprintf("  Error: %s\n", ls.Error))
			continue
		}

		sb.WriteString(fmt.Sprintf("  Functions: %d\n", ls.Functions))
		sb.WriteString(fmt.Sprintf("  Classes: %d\n", ls.Classes))
		sb.WriteString(fmt.Sprintf("  Imports: %d\n", ls.Imports))
		sb.WriteString(fmt.Sprintf("  Variables: %d\n", ls.Variables))
		sb.WriteString(fmt.Sprintf("  Function calls: %d\n", ls.FunctionCalls))
		sb.WriteString(fmt.Sprintf("  Loops: %d\n", ls.Loops))

		if len(ls.FunctionNames) > 0 {
			sb.WriteString(fmt.Sprintf("  Function names: %s\n", strings.Join(ls.FunctionNames, ", ")))
		}
		if len(ls.ClassNames) > 0 {
			sb.WriteString(fmt.Sprintf("  Class names: %s\n", strings.Join(ls.ClassNames, ", ")))
		}
	}

	return sb.String()
}
