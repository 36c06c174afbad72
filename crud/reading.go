package crud

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Andyflow28/SolTech-RESTAPI/apperr"
	"github.com/Andyflow28/SolTech-RESTAPI/models"
	"github.com/Andyflow28/SolTech-RESTAPI/schemas"
)

const (
	defaultQueryLimit  = 100
	defaultLatestLimit = 10
)

// CreateReading persists one sensor sample. The request layer checks that
// the station exists before calling this; the foreign key constraint is the
// backstop and surfaces as NotFound.
func (s *Store) CreateReading(payload schemas.ReadingCreate) (*models.Reading, error) {
	reading := models.Reading{
		Temperature: payload.Temperature,
		Humidity:    payload.Humidity,
		Pressure:    payload.Pressure,
		GasDetected: payload.GasDetected,
		GasVoltage:  payload.GasVoltage,
		UVIndex:     payload.UVIndex,
		UVLevel:     payload.UVLevel,
		StationID:   payload.StationID,
		Timestamp:   s.now().UTC(),
	}
	if payload.Timestamp != nil {
		reading.Timestamp = payload.Timestamp.UTC()
	}

	if err := s.db.Create(&reading).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperr.ErrNotFound
		}
		return nil, &apperr.PersistenceError{Op: "create reading", Err: err}
	}
	return &reading, nil
}

// GetReading looks up one reading by id. Absence returns (nil, nil).
func (s *Store) GetReading(id uint) (*models.Reading, error) {
	var reading models.Reading
	if err := s.db.First(&reading, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &apperr.PersistenceError{Op: "get reading", Err: err}
	}
	return &reading, nil
}

// QueryReadings returns readings matching all supplied filters, most recent
// first. The descending timestamp order is a hard contract; latest-value
// queries depend on it.
func (s *Store) QueryReadings(q schemas.ReadingQuery) ([]models.Reading, error) {
	limit := q.Limit
	if limit == 0 {
		limit = defaultQueryLimit
	}

	query := s.db.Model(&models.Reading{})
	if q.StationID != "" {
		query = query.Where("station_id = ?", q.StationID)
	}
	if q.StartTime != nil {
		query = query.Where("timestamp >= ?", q.StartTime.UTC())
	}
	if q.EndTime != nil {
		query = query.Where("timestamp <= ?", q.EndTime.UTC())
	}

	var readings []models.Reading
	if err := query.Order("timestamp desc").
		Offset(q.Skip).Limit(limit).Find(&readings).Error; err != nil {
		return nil, &apperr.PersistenceError{Op: "query readings", Err: err}
	}
	return readings, nil
}

// LatestReadings returns the most recent readings, optionally scoped to one
// station. The limit defaults to 10; callers cap it between 1 and 1000.
func (s *Store) LatestReadings(stationID string, limit int) ([]models.Reading, error) {
	if limit == 0 {
		limit = defaultLatestLimit
	}

	query := s.db.Model(&models.Reading{})
	if stationID != "" {
		query = query.Where("station_id = ?", stationID)
	}

	var readings []models.Reading
	if err := query.Order("timestamp desc").Limit(limit).Find(&readings).Error; err != nil {
		return nil, &apperr.PersistenceError{Op: "latest readings", Err: err}
	}
	return readings, nil
}

// DeleteReadingsOlderThan removes every reading with a timestamp strictly
// before now minus the given number of days and reports how many went.
// There is no soft delete.
func (s *Store) DeleteReadingsOlderThan(days int) (int64, error) {
	cutoff := s.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	result := s.db.Where("timestamp < ?", cutoff).Delete(&models.Reading{})
	if result.Error != nil {
		return 0, &apperr.PersistenceError{Op: "delete old readings", Err: result.Error}
	}
	return result.RowsAffected, nil
}
