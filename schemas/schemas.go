// Package schemas declares the request payloads and their validation rules.
// Binding failures are converted into one aggregated ValidationError that
// reports every violated field, not just the first.
package schemas

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Andyflow28/SolTech-RESTAPI/apperr"
)

// UserCreate is the registration payload. The password is hashed before
// storage and never persisted as given.
type UserCreate struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	FullName string `json:"full_name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserLogin carries the credentials for /auth/login.
type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// StationCreate registers a new sensing device for an existing user.
type StationCreate struct {
	StationID string `json:"station_id" binding:"required,hexadecimal"`
	Location  string `json:"location" binding:"required,max=100"`
	UserID    uint   `json:"user_id" binding:"required"`
}

// ReadingCreate is the ingestion payload. All sensor fields are optional;
// a station omits sensors it does not have. Present fields must satisfy
// their physical range.
type ReadingCreate struct {
	StationID   string     `json:"station_id" binding:"required,hexadecimal"`
	Temperature *float64   `json:"temperature" binding:"omitempty,gte=-40,lte=80"`
	Humidity    *float64   `json:"humidity" binding:"omitempty,gte=0,lte=100"`
	Pressure    *float64   `json:"pressure" binding:"omitempty,gte=300,lte=1100"`
	GasDetected *bool      `json:"gas_detected"`
	GasVoltage  *float64   `json:"gas_voltage" binding:"omitempty,gte=0,lte=5"`
	UVIndex     *float64   `json:"uv_index" binding:"omitempty,gte=0,lte=15"`
	UVLevel     *string    `json:"uv_level"`
	Timestamp   *time.Time `json:"timestamp"`
}

// ReadingQuery filters /station-data. Supplied filters combine with AND.
type ReadingQuery struct {
	StationID string     `form:"station_id" binding:"omitempty,hexadecimal"`
	StartTime *time.Time `form:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   *time.Time `form:"end_time" time_format:"2006-01-02T15:04:05Z07:00"`
	Skip      int        `form:"skip" binding:"omitempty,gte=0"`
	Limit     int        `form:"limit" binding:"omitempty,gte=1"`
}

// LatestQuery parameterizes /station-data/latest. The limit is capped at
// 1000 and defaults to 10.
type LatestQuery struct {
	StationID string `form:"station_id" binding:"omitempty,hexadecimal"`
	Limit     int    `form:"limit" binding:"omitempty,gte=1,lte=1000"`
}

// CleanupQuery parameterizes the bulk delete of old readings.
type CleanupQuery struct {
	Days int `form:"days" binding:"omitempty,gte=1"`
}

// ListQuery is the shared pagination shape for user and station listings.
type ListQuery struct {
	Skip  int `form:"skip" binding:"omitempty,gte=0"`
	Limit int `form:"limit" binding:"omitempty,gte=1"`
}

// DeviceTokenRequest asks for a bearer token on behalf of a device.
type DeviceTokenRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}

// AsValidationError converts a gin binding failure into the aggregated
// error type. Non-validator errors (malformed JSON, wrong types) map to a
// single body-level violation.
func AsValidationError(err error) *apperr.ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &apperr.ValidationError{Fields: []apperr.FieldError{
			{Field: "body", Constraint: "malformed request body"},
		}}
	}

	out := &apperr.ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, apperr.FieldError{
			Field:      fe.Field(),
			Constraint: constraintMessage(fe),
		})
	}
	return out
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "hexadecimal":
		return "must be a hexadecimal string"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	default:
		return "failed " + fe.Tag() + " constraint"
	}
}
