package metrics

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ExportXLSX writes a KPI report as a spreadsheet for the observability
// collaborator: one KPI sheet, one latency sheet.
func ExportXLSX(report *KPIReport, path string) error {
	f := xlsx.NewFile()

	kpiSheet, err := f.AddSheet("KPIs")
	if err != nil {
		return eris.Wrap(err, "metrics: add kpi sheet")
	}
	header := kpiSheet.AddRow()
	for _, col := range []string{"KPI", "Value", "Target", "Status"} {
		header.AddCell().Value = col
	}

	names := make([]string, 0, len(report.KPIs))
	for name := range report.KPIs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		kpi := report.KPIs[name]
		row := kpiSheet.AddRow()
		row.AddCell().Value = name
		row.AddCell().SetFloatWithFormat(kpi.Value, "0.0000")
		row.AddCell().SetFloatWithFormat(kpi.Target, "0.0000")
		row.AddCell().Value = kpi.Status
	}

	perfSheet, err := f.AddSheet("Latency")
	if err != nil {
		return eris.Wrap(err, "metrics: add latency sheet")
	}
	for _, pair := range [][2]string{
		{"report_period", report.ReportPeriod},
		{"sample_count", fmt.Sprintf("%d", report.SampleCount)},
		{"mean_ms", fmt.Sprintf("%.1f", report.Performance.MeanMS)},
		{"p95_ms", fmt.Sprintf("%d", report.Performance.P95MS)},
		{"within_target", fmt.Sprintf("%.4f", report.Performance.WithinTarget)},
		{"target_ms", fmt.Sprintf("%d", report.Performance.TargetMS)},
	} {
		row := perfSheet.AddRow()
		row.AddCell().Value = pair[0]
		row.AddCell().Value = pair[1]
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "metrics: save xlsx")
	}
	return nil
}
