package models

type Route struct {
	RouteID            string   `json:"route_id" dynamodbav:"route_id"`
	RouteName          string   `json:"route_name,omitempty" dynamodbav:"route_name,omitempty"`
	TruckID            string   `json:"truck_id" dynamodbav:"truck_id"`
	StartLocation      string   `json:"start_location" dynamodbav:"start_location"`
	EndLocation        string   `json:"end_location" dynamodbav:"end_location"`
	Status             string   `json:"status" dynamodbav:"status"`
	EstimatedStartTime int64    `json:"estimated_start_time,omitempty" dynamodbav:"estimated_start_time,omitempty"`
	EstimatedEndTime   int64    `json:"estimated_end_time,omitempty" dynamodbav:"estimated_end_time,omitempty"`
	Waypoints          []string `json:"waypoints,omitempty" dynamodbav:"waypoints,omitempty"`
	CreatedAt          int64    `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt          int64    `json:"updated_at" dynamodbav:"updated_at"`
	StartedAt          int64    `json:"started_at,omitempty" dynamodbav:"started_at,omitempty"`
	CompletedAt        int64    `json:"completed_at,omitempty" dynamodbav:"completed_at,omitempty"`
}

const DefaultRouteStatus = "scheduled"

var routeStatuses = map[string]bool{
	"scheduled":   true,
	"in_progress": true,
	"completed":   true,
	"cancelled":   true,
}

func ValidRouteStatus(s string) bool {
	return routeStatuses[s]
}
