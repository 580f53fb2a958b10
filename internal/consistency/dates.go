package consistency

import (
	"fmt"
	"strings"
	"time"

	"github.com/intakeworks/docvalid/internal/model"
)

type dateBucket string

const (
	bucketBirth  dateBucket = "birth"
	bucketIssue  dateBucket = "issue"
	bucketExpiry dateBucket = "expiry"
	bucketValid  dateBucket = "valid"
	bucketOther  dateBucket = "other"
)

type dateValue struct {
	documentID string
	fieldName  string
	bucket     dateBucket
	t          time.Time
}

// bucketFor infers a date's semantic bucket from its field name.
func bucketFor(fieldName string) dateBucket {
	name := strings.ToLower(fieldName)
	switch {
	case strings.Contains(name, "birth"):
		return bucketBirth
	case strings.Contains(name, "issue"):
		return bucketIssue
	case strings.Contains(name, "expir"):
		return bucketExpiry
	case strings.Contains(name, "valid"):
		return bucketValid
	default:
		return bucketOther
	}
}

// checkDates buckets every parseable extracted date by semantic type and
// asserts the domain invariants: every birth date precedes every date of
// every other bucket, and every issue date precedes every expiry date.
// The D/S marker is not a calendar date and is skipped.
func checkDates(records []*model.DocumentRecord) CheckResult {
	var values []dateValue
	for _, rec := range records {
		for fieldName, f := range rec.Fields {
			// Only values that normalized to ISO dates participate.
			t, err := time.Parse("2006-01-02", f.NormalizedValue)
			if err != nil {
				continue
			}
			values = append(values, dateValue{
				documentID: rec.DocumentID,
				fieldName:  fieldName,
				bucket:     bucketFor(fieldName),
				t:          t,
			})
		}
	}

	if len(values) < 2 {
		return CheckResult{Status: StatusInsufficientData}
	}

	var findings []model.ConsistencyFinding
	for i := 0; i < len(values); i++ {
		for j := 0; j < len(values); j++ {
			if i == j {
				continue
			}
			a, b := values[i], values[j]
			// Within-document ordering belongs to the rule evaluator;
			// a finding always names two distinct documents.
			if a.documentID == b.documentID {
				continue
			}

			violation := ""
			switch {
			case a.bucket == bucketBirth && b.bucket != bucketBirth && !a.t.Before(b.t):
				violation = fmt.Sprintf("birth date %s (%s) is not before %s %s (%s)",
					a.t.Format("2006-01-02"), a.fieldName,
					b.fieldName, b.t.Format("2006-01-02"), b.documentID)
			case a.bucket == bucketIssue && b.bucket == bucketExpiry && !a.t.Before(b.t):
				violation = fmt.Sprintf("issue date %s (%s) is not before expiry %s (%s)",
					a.t.Format("2006-01-02"), a.fieldName,
					b.t.Format("2006-01-02"), b.documentID)
			}
			if violation == "" {
				continue
			}
			findings = append(findings, model.ConsistencyFinding{
				Kind:              model.FindingDate,
				DocumentsInvolved: []string{a.documentID, b.documentID},
				Description:       violation,
				Severity:          model.SeverityImportant,
			})
		}
	}

	if len(findings) > 0 {
		return CheckResult{Status: StatusInconsistent, Findings: findings}
	}
	return CheckResult{Status: StatusConsistent}
}
