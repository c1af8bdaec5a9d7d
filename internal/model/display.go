package model

// Display returns the human-readable label used in reports and exports.
func (s SOXStatus) Display() string {
	switch s {
	case SOXCompliant:
		return "SOX Compliant"
	case SOXViolation:
		return "SOX Violation"
	default:
		return string(s)
	}
}

// Display returns the human-readable label used in reports and exports.
func (r RiskLevel) Display() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	default:
		return string(r)
	}
}

// Display returns the human-readable label used in reports and exports.
func (t TimelineStatus) Display() string {
	switch t {
	case TimelineWithinSLA:
		return "Within SLA"
	case TimelineOverSLA:
		return "Over SLA"
	case TimelineNotApplicable:
		return "Dates Missing"
	default:
		return string(t)
	}
}

// ParseSOXStatus maps user input to a SOXStatus. Accepts both the enum
// value and the display form, case-insensitively via normalize.
func ParseSOXStatus(s string) (SOXStatus, bool) {
	switch normalize(s) {
	case "sox_compliant", "sox compliant", "compliant":
		return SOXCompliant, true
	case "sox_violation", "sox violation", "violation":
		return SOXViolation, true
	default:
		return "", false
	}
}

// ParseRiskLevel maps user input to a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch normalize(s) {
	case "low":
		return RiskLow, true
	case "medium", "med":
		return RiskMedium, true
	case "high":
		return RiskHigh, true
	default:
		return "", false
	}
}
