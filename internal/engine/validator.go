package engine

import (
	"fmt"
	"strings"

	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/model"
	"github.com/Shikhajain3006/Credit-Inventory-Management/internal/policy"
)

// Validate evaluates a single record against the policy and approval
// matrix and produces its verdict. Validation is a pure function: the same
// record, policy, and matrix always yield an identical verdict.
//
// Malformed record data never rejects the record; it degrades to the most
// conservative classification (unknown reason resolves to Other, unknown
// timeline to NotApplicable) with the problem noted as a warning. The only
// error path is an incomplete approval matrix, which a matrix validated at
// construction rules out.
func Validate(record model.CreditMemoRecord, cfg policy.Config, matrix *policy.ApprovalMatrix) (model.ValidationVerdict, error) {
	verdict := model.ValidationVerdict{
		SoD: model.SoDOK,
	}

	verdict.ReasonClass = ResolveReasonClass(record.ReasonText, cfg)
	if strings.TrimSpace(record.ReasonText) == "" {
		verdict.Warnings = append(verdict.Warnings, "reason text empty; classified as Other")
	}

	required, err := matrix.RequiredLevels(verdict.ReasonClass)
	if err != nil {
		return model.ValidationVerdict{}, err
	}
	verdict.RequiredLevels = required

	verdict.PresentLevels, verdict.MissingLevels = checkApprovalPresence(record.Approvals, required)
	if len(record.Approvals) == 0 {
		verdict.Warnings = append(verdict.Warnings, "no approvals recorded")
	}

	applyTimeline(&verdict, record, cfg)

	if record.Amount == nil {
		verdict.Warnings = append(verdict.Warnings, "amount missing or unparseable")
	}

	if record.HasApprover(record.CreatedBy) {
		verdict.SoD = model.SoDViolation
	}

	classify(&verdict, cfg)

	return verdict, nil
}

// checkApprovalPresence marks each required level present when any recorded
// approval's designation equals or contains the level's title, compared
// case-insensitively and trimmed. Each level is checked independently: a
// present higher level never substitutes for a missing lower one. Missing
// levels keep ascending level order.
func checkApprovalPresence(approvals []model.Approval, required []model.ApprovalLevel) (present, missing []model.ApprovalLevel) {
	for _, level := range required {
		title := strings.ToLower(strings.TrimSpace(level.Title))
		found := false
		for _, a := range approvals {
			designation := strings.ToLower(strings.TrimSpace(a.Designation))
			if designation != "" && strings.Contains(designation, title) {
				found = true
				break
			}
		}
		if found {
			present = append(present, level)
		} else {
			missing = append(missing, level)
		}
	}
	return present, missing
}

// applyTimeline runs the SLA business-day check. Elapsed business days are
// computed over the ordered span, so a memo approved after its own creation
// still gets a timeline verdict; that ordering anomaly is surfaced as the
// ApprovalAfterMemo flag rather than a violation category. A missing date
// makes the check NotApplicable, which counts as neither pass nor fail.
func applyTimeline(verdict *model.ValidationVerdict, record model.CreditMemoRecord, cfg policy.Config) {
	if record.ApprovalDate == nil || record.MemoDate == nil {
		verdict.TimelineStatus = model.TimelineNotApplicable
		if record.ApprovalDate == nil {
			verdict.Warnings = append(verdict.Warnings, "approval date missing")
		}
		if record.MemoDate == nil {
			verdict.Warnings = append(verdict.Warnings, "memo date missing")
		}
		return
	}

	if record.ApprovalDate.After(*record.MemoDate) {
		verdict.ApprovalAfterMemo = true
	}

	elapsed := BusinessDaysElapsed(*record.ApprovalDate, *record.MemoDate)
	verdict.BusinessDaysElapsed = &elapsed

	if elapsed > cfg.SLABusinessDays {
		verdict.TimelineStatus = model.TimelineOverSLA
	} else {
		verdict.TimelineStatus = model.TimelineWithinSLA
	}
}

// classify derives the violation count, risk level, SOX status, and
// violation reason from the two independent violation categories. The
// count tallies categories, not individual missing levels: a record
// missing three levels and over SLA still counts 2.
func classify(verdict *model.ValidationVerdict, cfg policy.Config) {
	missingApproval := len(verdict.MissingLevels) > 0
	slaExceeded := verdict.TimelineStatus == model.TimelineOverSLA

	if missingApproval {
		verdict.ViolationReasons = append(verdict.ViolationReasons,
			fmt.Sprintf("%s: %s", model.CategoryMissingApproval, missingLevelsDetail(verdict.MissingLevels)))
	}
	if slaExceeded {
		verdict.ViolationReasons = append(verdict.ViolationReasons,
			fmt.Sprintf("%s: Over %d days", model.CategorySLAExceeded, cfg.SLABusinessDays))
	}

	verdict.ViolationCount = len(verdict.ViolationReasons)

	switch {
	case verdict.ViolationCount == 0:
		verdict.SOXStatus = model.SOXCompliant
		verdict.RiskLevel = model.RiskLow
	case verdict.ViolationCount >= cfg.HighRiskViolationThreshold:
		verdict.SOXStatus = model.SOXViolation
		verdict.RiskLevel = model.RiskHigh
	default:
		verdict.SOXStatus = model.SOXViolation
		verdict.RiskLevel = model.RiskMedium
	}

	if verdict.ViolationCount == 0 {
		verdict.ViolationReason = model.NoViolations
	} else {
		verdict.ViolationReason = strings.Join(verdict.ViolationReasons, " | ")
	}
}

// missingLevelsDetail renders the missing level numbers, e.g.
// "Level 2, Level 3 Missing".
func missingLevelsDetail(missing []model.ApprovalLevel) string {
	parts := make([]string, len(missing))
	for i, lvl := range missing {
		parts[i] = fmt.Sprintf("Level %d", lvl.Level)
	}
	return strings.Join(parts, ", ") + " Missing"
}
