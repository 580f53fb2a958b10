package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/intakeworks/docvalid/internal/model"
)

// KPI names as they appear in reports.
const (
	KPIClassificationF1      = "classification_f1_score"
	KPIIdentityExactMatch    = "identity_fields_exact_match"
	KPIDatesExactMatch       = "dates_exact_match"
	KPIFormattedNumbersExact = "formatted_numbers_exact_match"
	KPIFalseFailRate         = "false_fail_rate"
)

// fieldCategories is the fixed membership table for per-category
// exact-match rates.
var fieldCategories = map[string][]string{
	"identity": {"full_name", "nationality", "sex", "surname", "given_names"},
	"dates":    {"birth_date", "expiry_date", "issue_date"},
	"formatted_numbers": {
		"passport_number", "uscis_receipt", "ssn",
		"alien_number", "sevis_id", "i94_number",
	},
}

// exactP95Minimum is the minimum sample count for an exact order-statistic
// p95; below it the maximum stands in.
const exactP95Minimum = 20

// KPIValue is one KPI compared against its target.
type KPIValue struct {
	Value  float64 `json:"value"`
	Target float64 `json:"target"`
	Status string  `json:"status"`
}

// PerformanceMetrics summarizes processing latency over the window.
type PerformanceMetrics struct {
	MeanMS         float64 `json:"mean_ms"`
	P95MS          int64   `json:"p95_ms"`
	WithinTarget   float64 `json:"within_target"`
	TargetMS       int64   `json:"target_ms"`
	MeetsTarget    bool    `json:"meets_target"`
	SampledLatency int     `json:"sampled_latency"`
}

// KPIReport is the observability output for a trailing window.
type KPIReport struct {
	ReportPeriod string              `json:"report_period"`
	GeneratedAt  time.Time           `json:"generated_at"`
	SampleCount  int                 `json:"sample_count"`
	KPIs         map[string]KPIValue `json:"kpis"`
	Performance  PerformanceMetrics  `json:"performance_metrics"`
}

// Aggregator computes KPI reports from a sample log against fixed
// targets.
type Aggregator struct {
	log     *SampleLog
	targets model.KPITargets
}

// NewAggregator wires a sample log to the default target table.
func NewAggregator(log *SampleLog) *Aggregator {
	return &Aggregator{log: log, targets: model.DefaultKPITargets()}
}

// Log exposes the underlying sample log for appends.
func (a *Aggregator) Log() *SampleLog { return a.log }

// Report computes the KPI report over a trailing window of whole days.
//
// Classification quality is an accuracy proxy for F1 (per-class confusion
// data is not collected here), and false-fail counts FAIL decisions that
// were sent to review, not human-confirmed overturns. Both are documented
// simplifications.
func (a *Aggregator) Report(windowDays int) *KPIReport {
	if windowDays <= 0 {
		windowDays = 30
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays)
	samples := a.log.Snapshot(cutoff)

	report := &KPIReport{
		ReportPeriod: fmt.Sprintf("last_%d_days", windowDays),
		GeneratedAt:  time.Now().UTC(),
		SampleCount:  len(samples),
		KPIs:         make(map[string]KPIValue),
	}

	classificationCorrect := 0
	falseFails := 0
	categoryHits := map[string]int{}
	categoryTotals := map[string]int{}
	var latencies []int64

	for _, s := range samples {
		if s.ClassificationCorrect {
			classificationCorrect++
		}
		if s.Decision == model.DecisionFail && s.FlaggedForReview {
			falseFails++
		}
		for _, fe := range s.FieldExtractions {
			cat, ok := categoryOf(fe.FieldName)
			if !ok {
				continue
			}
			categoryTotals[cat]++
			if fe.ExactMatch {
				categoryHits[cat]++
			}
		}
		latencies = append(latencies, s.ProcessingTimeMS)
	}

	total := len(samples)
	report.KPIs[KPIClassificationF1] = a.kpiAtLeast(
		ratio(classificationCorrect, total), a.targets.ClassificationF1)
	report.KPIs[KPIIdentityExactMatch] = a.kpiAtLeast(
		ratio(categoryHits["identity"], categoryTotals["identity"]), a.targets.IdentityExactMatch)
	report.KPIs[KPIDatesExactMatch] = a.kpiAtLeast(
		ratio(categoryHits["dates"], categoryTotals["dates"]), a.targets.DatesExactMatch)
	report.KPIs[KPIFormattedNumbersExact] = a.kpiAtLeast(
		ratio(categoryHits["formatted_numbers"], categoryTotals["formatted_numbers"]),
		a.targets.FormattedNumbersExact)
	report.KPIs[KPIFalseFailRate] = a.kpiAtMost(
		ratio(falseFails, total), a.targets.FalseFailRate)

	report.Performance = a.performance(latencies)
	return report
}

// kpiAtLeast passes when value meets or exceeds the target.
func (a *Aggregator) kpiAtLeast(value, target float64) KPIValue {
	status := "FAIL"
	if value >= target {
		status = "PASS"
	}
	return KPIValue{Value: value, Target: target, Status: status}
}

// kpiAtMost passes when value stays at or under the target (rates where
// lower is better).
func (a *Aggregator) kpiAtMost(value, target float64) KPIValue {
	status := "FAIL"
	if value <= target {
		status = "PASS"
	}
	return KPIValue{Value: value, Target: target, Status: status}
}

// performance computes mean, p95 (exact order statistic at or above the
// sample minimum, else max), and the fraction within the latency target.
func (a *Aggregator) performance(latencies []int64) PerformanceMetrics {
	perf := PerformanceMetrics{
		TargetMS:       a.targets.ProcessingTimeTargetMS,
		SampledLatency: len(latencies),
	}
	if len(latencies) == 0 {
		return perf
	}

	sorted := append([]int64{}, latencies...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum int64
	within := 0
	for _, ms := range sorted {
		sum += ms
		if ms <= perf.TargetMS {
			within++
		}
	}
	perf.MeanMS = float64(sum) / float64(len(sorted))
	perf.WithinTarget = float64(within) / float64(len(sorted))

	if len(sorted) >= exactP95Minimum {
		idx := (95*len(sorted) + 99) / 100 // ceil(0.95n), 1-based rank
		perf.P95MS = sorted[idx-1]
	} else {
		perf.P95MS = sorted[len(sorted)-1]
	}
	perf.MeetsTarget = perf.P95MS <= perf.TargetMS
	return perf
}

func categoryOf(fieldName string) (string, bool) {
	for cat, members := range fieldCategories {
		for _, m := range members {
			if m == fieldName {
				return cat, true
			}
		}
	}
	return "", false
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
