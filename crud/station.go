package crud

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Andyflow28/SolTech-RESTAPI/apperr"
	"github.com/Andyflow28/SolTech-RESTAPI/models"
	"github.com/Andyflow28/SolTech-RESTAPI/schemas"
)

// CreateStation registers a station and flips the owner's has-station flag
// in the same transaction: either both rows commit or neither does. A
// missing owner is NotFound, a duplicate station id is Conflict.
func (s *Store) CreateStation(payload schemas.StationCreate) (*models.Station, error) {
	station := models.Station{
		StationID: payload.StationID,
		Location:  payload.Location,
		UserID:    payload.UserID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, payload.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return &apperr.PersistenceError{Op: "create station", Err: err}
		}

		if err := tx.Create(&station).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.ErrConflict
			}
			return &apperr.PersistenceError{Op: "create station", Err: err}
		}

		// One-shot transition, never reset
		if err := tx.Model(&models.User{}).Where("id = ?", payload.UserID).
			Update("has_station", true).Error; err != nil {
			return &apperr.PersistenceError{Op: "create station", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &station, nil
}

// GetStation looks up a station by its hexadecimal id. Absence returns
// (nil, nil).
func (s *Store) GetStation(stationID string) (*models.Station, error) {
	var station models.Station
	if err := s.db.Where("station_id = ?", stationID).First(&station).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &apperr.PersistenceError{Op: "get station", Err: err}
	}
	return &station, nil
}

// ListStationsByUser returns a page of one user's stations.
func (s *Store) ListStationsByUser(userID uint, skip, limit int) ([]models.Station, error) {
	var stations []models.Station
	if err := s.db.Where("user_id = ?", userID).
		Offset(skip).Limit(limit).Find(&stations).Error; err != nil {
		return nil, &apperr.PersistenceError{Op: "list stations by user", Err: err}
	}
	return stations, nil
}

// ListStations returns a page of all stations.
func (s *Store) ListStations(skip, limit int) ([]models.Station, error) {
	var stations []models.Station
	if err := s.db.Offset(skip).Limit(limit).Find(&stations).Error; err != nil {
		return nil, &apperr.PersistenceError{Op: "list stations", Err: err}
	}
	return stations, nil
}
