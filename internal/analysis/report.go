package analysis

// Report is the immutable envelope handed to the sinks once an assessment
// completes. The pipeline itself never reads reports back.
type Report struct {
	AssessmentID string    `json:"assessment_id"`
	TS           string    `json:"ts"` // ISO8601
	ClientIP     string    `json:"client_ip,omitempty"`
	RiskLevel    RiskLevel `json:"risk_level"`
	Results      Result    `json:"results"`
}
