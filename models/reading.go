package models

import "time"

// Reading is one timestamped sample pushed by a station. Every sensor field
// is optional: a station only reports the sensors it carries.
type Reading struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Pressure    *float64 `json:"pressure"`
	GasDetected *bool    `json:"gas_detected"`
	GasVoltage  *float64 `json:"gas_voltage"`
	UVIndex     *float64 `json:"uv_index"`
	UVLevel     *string  `json:"uv_level"`

	StationID string    `json:"station_id" gorm:"not null;index"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
}
