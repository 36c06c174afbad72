package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Andyflow28/SolTech-RESTAPI/crud"
	"github.com/Andyflow28/SolTech-RESTAPI/schemas"
)

// StationController handles station registration and lookups.
type StationController struct {
	store  *crud.Store
	logger *zap.Logger
}

func NewStationController(store *crud.Store, logger *zap.Logger) *StationController {
	return &StationController{store: store, logger: logger}
}

// CreateStation registers a new station for an existing user.
func (s *StationController) CreateStation(c *gin.Context) {
	var payload schemas.StationCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, s.logger, schemas.AsValidationError(err))
		return
	}

	owner, err := s.store.GetUser(payload.UserID)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	if owner == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "detail": "User not found"})
		return
	}

	existing, err := s.store.GetStation(payload.StationID)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "detail": "Station ID already exists"})
		return
	}

	station, err := s.store.CreateStation(payload)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusCreated, station)
}

// ListStations returns a page of stations, optionally scoped to one user via
// the user_id query parameter.
func (s *StationController) ListStations(c *gin.Context) {
	var q schemas.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, s.logger, schemas.AsValidationError(err))
		return
	}
	if q.Limit == 0 {
		q.Limit = 100
	}

	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "detail": "user_id must be an integer"})
			return
		}
		stations, err := s.store.ListStationsByUser(uint(userID), q.Skip, q.Limit)
		if err != nil {
			respondError(c, s.logger, err)
			return
		}
		c.JSON(http.StatusOK, stations)
		return
	}

	stations, err := s.store.ListStations(q.Skip, q.Limit)
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	c.JSON(http.StatusOK, stations)
}

// GetStation returns one station by its hexadecimal id.
func (s *StationController) GetStation(c *gin.Context) {
	station, err := s.store.GetStation(c.Param("station_id"))
	if err != nil {
		respondError(c, s.logger, err)
		return
	}
	if station == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "detail": "Station not found"})
		return
	}
	c.JSON(http.StatusOK, station)
}
