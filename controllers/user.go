package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Andyflow28/SolTech-RESTAPI/apperr"
	"github.com/Andyflow28/SolTech-RESTAPI/crud"
	"github.com/Andyflow28/SolTech-RESTAPI/schemas"
)

// UserController handles account registration and lookups.
type UserController struct {
	store  *crud.Store
	logger *zap.Logger
}

func NewUserController(store *crud.Store, logger *zap.Logger) *UserController {
	return &UserController{store: store, logger: logger}
}

// CreateUser registers a new user.
func (u *UserController) CreateUser(c *gin.Context) {
	var payload schemas.UserCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, u.logger, schemas.AsValidationError(err))
		return
	}

	existing, err := u.store.GetUserByEmail(payload.Email)
	if err != nil {
		respondError(c, u.logger, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "detail": "Email already registered"})
		return
	}

	user, err := u.store.CreateUser(payload)
	if err != nil {
		respondError(c, u.logger, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListUsers returns a page of users.
func (u *UserController) ListUsers(c *gin.Context) {
	var q schemas.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, u.logger, schemas.AsValidationError(err))
		return
	}
	if q.Limit == 0 {
		q.Limit = 100
	}

	users, err := u.store.ListUsers(q.Skip, q.Limit)
	if err != nil {
		respondError(c, u.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one user by id.
func (u *UserController) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		respondError(c, u.logger, &apperr.ValidationError{Fields: []apperr.FieldError{
			{Field: "user_id", Constraint: "must be an integer"},
		}})
		return
	}

	user, err := u.store.GetUser(uint(id))
	if err != nil {
		respondError(c, u.logger, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "detail": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
