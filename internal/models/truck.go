package models

type Truck struct {
	TruckID         string   `json:"truck_id" dynamodbav:"truck_id"`
	TruckName       string   `json:"truck_name" dynamodbav:"truck_name"`
	TruckModel      string   `json:"truck_model" dynamodbav:"truck_model"`
	ManufactureYear int      `json:"manufacture_year" dynamodbav:"manufacture_year"`
	Status          string   `json:"status" dynamodbav:"status"`
	// Sensors persists as a list so create and sparse update write the
	// same attribute type.
	Sensors         []string `json:"sensors,omitempty" dynamodbav:"sensors,omitempty"`
	Notes           string   `json:"notes,omitempty" dynamodbav:"notes,omitempty"`
	CreatedAt       int64    `json:"created_at" dynamodbav:"created_at"`
	LastUpdated     int64    `json:"last_updated" dynamodbav:"last_updated"`

	// Last reported telemetry. Written by the ingestion side of the
	// fleet, read back by the telemetry endpoint.
	Latitude          float64 `json:"latitude,omitempty" dynamodbav:"latitude,omitempty"`
	Longitude         float64 `json:"longitude,omitempty" dynamodbav:"longitude,omitempty"`
	Speed             float64 `json:"speed,omitempty" dynamodbav:"speed,omitempty"`
	Heading           float64 `json:"heading,omitempty" dynamodbav:"heading,omitempty"`
	FuelLevel         float64 `json:"fuel_level,omitempty" dynamodbav:"fuel_level,omitempty"`
	BatteryLevel      float64 `json:"battery_level,omitempty" dynamodbav:"battery_level,omitempty"`
	EngineTemperature float64 `json:"engine_temperature,omitempty" dynamodbav:"engine_temperature,omitempty"`
}

const DefaultTruckStatus = "idle"

var truckStatuses = map[string]bool{
	"active":      true,
	"maintenance": true,
	"idle":        true,
	"charging":    true,
	"offline":     true,
}

func ValidTruckStatus(s string) bool {
	return truckStatuses[s]
}
