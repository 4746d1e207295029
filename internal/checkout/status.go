package checkout

type Status string

const (
	StatusIdle          Status = "IDLE"
	StatusValidating    Status = "VALIDATING"
	StatusAssessingRisk Status = "ASSESSING_RISK"
	StatusSubmitting    Status = "SUBMITTING"
	StatusSucceeded     Status = "SUCCEEDED"
	StatusFailed        Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
