package model

// ReasonClass categorizes a memo's reason text against the policy keyword
// lists. Promotional is checked before Contract; ties resolve to Promotional.
type ReasonClass string

// Reason class constants.
const (
	ReasonPromotional ReasonClass = "Promotional"
	ReasonContract    ReasonClass = "Contract"
	ReasonOther       ReasonClass = "Other"
)

// TimelineStatus is the outcome of the SLA business-day check.
type TimelineStatus string

// Timeline status constants.
const (
	TimelineWithinSLA     TimelineStatus = "WITHIN_SLA"
	TimelineOverSLA       TimelineStatus = "OVER_SLA"
	TimelineNotApplicable TimelineStatus = "NOT_APPLICABLE"
)

// SOXStatus is the overall compliance classification for a record.
type SOXStatus string

// SOX status constants.
const (
	SOXCompliant SOXStatus = "SOX_COMPLIANT"
	SOXViolation SOXStatus = "SOX_VIOLATION"
)

// RiskLevel is the coarse severity classification derived from the
// violation category count.
type RiskLevel string

// Risk level constants.
const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// SoDStatus is the separation-of-duties check result. Informational only:
// it never contributes to the violation count.
type SoDStatus string

// Separation-of-duties constants.
const (
	SoDOK        SoDStatus = "OK"
	SoDViolation SoDStatus = "VIOLATION"
)

// Violation category display names, in the fixed order they are rendered
// in a violation reason.
const (
	CategoryMissingApproval = "Missing Approval"
	CategorySLAExceeded     = "SLA Exceeded"
)

// NoViolations is the violation reason rendered for compliant records.
const NoViolations = "None"

// ApprovalLevel is one required authorization level from the approval
// matrix. Levels are 1-based and strictly ascending within a sequence.
type ApprovalLevel struct {
	Title string
	Level int
}

// ValidationVerdict is the derived result of validating one record.
// Exactly one verdict exists per CreditMemoRecord; verdicts are immutable
// once produced.
type ValidationVerdict struct {
	BusinessDaysElapsed *int // nil when either date is missing
	ReasonClass         ReasonClass
	TimelineStatus      TimelineStatus
	SOXStatus           SOXStatus
	RiskLevel           RiskLevel
	SoD                 SoDStatus
	ViolationReason     string
	RequiredLevels      []ApprovalLevel
	PresentLevels       []ApprovalLevel
	MissingLevels       []ApprovalLevel
	ViolationReasons    []string // ordered category strings; empty when compliant
	Warnings            []string // non-fatal data problems (RecordDataError metadata)
	ViolationCount      int
	DuplicateMemo       bool
	ApprovalAfterMemo   bool
}

// IsCompliant reports whether the verdict carries no violation categories.
func (v *ValidationVerdict) IsCompliant() bool {
	return v.ViolationCount == 0
}
