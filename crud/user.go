package crud

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Andyflow28/SolTech-RESTAPI/apperr"
	"github.com/Andyflow28/SolTech-RESTAPI/models"
	"github.com/Andyflow28/SolTech-RESTAPI/schemas"
	"github.com/Andyflow28/SolTech-RESTAPI/utils"
)

// CreateUser registers a new account with the password hashed and the
// has-station flag off. A duplicate email or username is a Conflict; the
// unique index is the authoritative arbiter under concurrent registration.
func (s *Store) CreateUser(payload schemas.UserCreate) (*models.User, error) {
	existing, err := s.GetUserByEmail(payload.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrConflict
	}

	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "create user", Err: err}
	}

	user := models.User{
		Email:      payload.Email,
		Username:   payload.Username,
		Password:   hashed,
		FullName:   payload.FullName,
		HasStation: false,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrConflict
		}
		return nil, &apperr.PersistenceError{Op: "create user", Err: err}
	}
	return &user, nil
}

// GetUser looks up a user by id. Absence returns (nil, nil).
func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &apperr.PersistenceError{Op: "get user", Err: err}
	}
	return &user, nil
}

// GetUserByEmail looks up a user by email. Absence returns (nil, nil).
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &apperr.PersistenceError{Op: "get user by email", Err: err}
	}
	return &user, nil
}

// ListUsers returns a page of users.
func (s *Store) ListUsers(skip, limit int) ([]models.User, error) {
	var users []models.User
	if err := s.db.Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, &apperr.PersistenceError{Op: "list users", Err: err}
	}
	return users, nil
}
