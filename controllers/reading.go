package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Andyflow28/SolTech-RESTAPI/apperr"
	"github.com/Andyflow28/SolTech-RESTAPI/crud"
	"github.com/Andyflow28/SolTech-RESTAPI/schemas"
)

// ReadingController handles sensor data ingestion and queries.
type ReadingController struct {
	store  *crud.Store
	hub    *Hub
	logger *zap.Logger
}

func NewReadingController(store *crud.Store, hub *Hub, logger *zap.Logger) *ReadingController {
	return &ReadingController{store: store, hub: hub, logger: logger}
}

// CreateReading processes one incoming sensor sample.
func (r *ReadingController) CreateReading(c *gin.Context) {
	var payload schemas.ReadingCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, r.logger, schemas.AsValidationError(err))
		return
	}

	station, err := r.store.GetStation(payload.StationID)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}
	if station == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "not_found",
			"detail": fmt.Sprintf("Station with ID %s not found", payload.StationID),
		})
		return
	}

	reading, err := r.store.CreateReading(payload)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}

	r.hub.BroadcastReading(*reading)
	c.JSON(http.StatusCreated, reading)
}

// QueryReadings returns readings matching the supplied filters, most recent
// first.
func (r *ReadingController) QueryReadings(c *gin.Context) {
	var q schemas.ReadingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, r.logger, schemas.AsValidationError(err))
		return
	}

	readings, err := r.store.QueryReadings(q)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

// LatestReadings returns the most recent readings, default 10, at most 1000.
func (r *ReadingController) LatestReadings(c *gin.Context) {
	var q schemas.LatestQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, r.logger, schemas.AsValidationError(err))
		return
	}

	readings, err := r.store.LatestReadings(q.StationID, q.Limit)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

// GetReading returns one reading by numeric id.
func (r *ReadingController) GetReading(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("data_id"), 10, 32)
	if err != nil {
		respondError(c, r.logger, &apperr.ValidationError{Fields: []apperr.FieldError{
			{Field: "data_id", Constraint: "must be an integer"},
		}})
		return
	}

	reading, err := r.store.GetReading(uint(id))
	if err != nil {
		respondError(c, r.logger, err)
		return
	}
	if reading == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "not_found",
			"detail": fmt.Sprintf("Record with ID %d not found", id),
		})
		return
	}
	c.JSON(http.StatusOK, reading)
}

// Cleanup bulk-deletes readings older than the given number of days. The
// delete is irreversible; scheduling repeated runs is the caller's job.
func (r *ReadingController) Cleanup(c *gin.Context) {
	var q schemas.CleanupQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, r.logger, schemas.AsValidationError(err))
		return
	}
	if q.Days == 0 {
		q.Days = 30
	}

	deleted, err := r.store.DeleteReadingsOlderThan(q.Days)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"detail":        fmt.Sprintf("Deleted %d old records", deleted),
		"deleted_count": deleted,
	})
}

// ExportCSV streams readings as a CSV file, optionally filtered by station.
func (r *ReadingController) ExportCSV(c *gin.Context) {
	var q schemas.ReadingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, r.logger, schemas.AsValidationError(err))
		return
	}
	if q.Limit == 0 {
		q.Limit = -1 // export everything that matches
	}

	readings, err := r.store.QueryReadings(q)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=station_data.csv")
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"timestamp", "station_id", "temperature", "humidity", "pressure", "gas_detected", "gas_voltage", "uv_index", "uv_level"})
	for _, reading := range readings {
		writer.Write([]string{
			reading.Timestamp.UTC().Format(time.RFC3339),
			reading.StationID,
			fmtFloat(reading.Temperature),
			fmtFloat(reading.Humidity),
			fmtFloat(reading.Pressure),
			fmtBool(reading.GasDetected),
			fmtFloat(reading.GasVoltage),
			fmtFloat(reading.UVIndex),
			fmtString(reading.UVLevel),
		})
	}
}

func fmtFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

func fmtString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
