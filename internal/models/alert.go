package models

// Alert references a truck by id only. The truck may have been deleted
// since the alert was raised; readers have to tolerate that.
type Alert struct {
	AlertID         string `json:"alert_id" dynamodbav:"alert_id"`
	AlertType       string `json:"alert_type" dynamodbav:"alert_type"`
	TruckID         string `json:"truck_id,omitempty" dynamodbav:"truck_id,omitempty"`
	Message         string `json:"message" dynamodbav:"message"`
	Severity        string `json:"severity" dynamodbav:"severity"`
	Status          string `json:"status" dynamodbav:"status"`
	Timestamp       int64  `json:"timestamp" dynamodbav:"timestamp"`
	UpdatedAt       int64  `json:"updated_at" dynamodbav:"updated_at"`
	ResolvedAt      int64  `json:"resolved_at,omitempty" dynamodbav:"resolved_at,omitempty"`
	ResolutionNotes string `json:"resolution_notes,omitempty" dynamodbav:"resolution_notes,omitempty"`
}

const DefaultAlertStatus = "active"

var alertSeverities = map[string]bool{
	"low":      true,
	"medium":   true,
	"high":     true,
	"critical": true,
}

var alertStatuses = map[string]bool{
	"active":   true,
	"resolved": true,
}

func ValidAlertSeverity(s string) bool {
	return alertSeverities[s]
}

func ValidAlertStatus(s string) bool {
	return alertStatuses[s]
}
