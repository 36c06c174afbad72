package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Andyflow28/SolTech-RESTAPI/crud"
	"github.com/Andyflow28/SolTech-RESTAPI/schemas"
	"github.com/Andyflow28/SolTech-RESTAPI/utils"
)

// AuthController issues bearer tokens for user login and for devices.
type AuthController struct {
	store  *crud.Store
	tokens *utils.TokenService
	logger *zap.Logger
}

func NewAuthController(store *crud.Store, tokens *utils.TokenService, logger *zap.Logger) *AuthController {
	return &AuthController{store: store, tokens: tokens, logger: logger}
}

// Login authenticates a user by email and password and returns a JWT token.
// Unknown email and wrong password answer identically.
func (a *AuthController) Login(c *gin.Context) {
	var payload schemas.UserLogin
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, a.logger, schemas.AsValidationError(err))
		return
	}

	user, err := a.store.GetUserByEmail(payload.Email)
	if err != nil {
		respondError(c, a.logger, err)
		return
	}
	if user == nil || !utils.CheckPasswordHash(payload.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials", "detail": "Invalid credentials"})
		return
	}

	token, err := a.tokens.Issue(user.Email)
	if err != nil {
		respondError(c, a.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
		"email":        user.Email,
		"full_name":    user.FullName,
	})
}

// DeviceToken issues a time-limited bearer token for a device. The route is
// guarded by the shared API key so devices cannot mint tokens anonymously.
func (a *AuthController) DeviceToken(c *gin.Context) {
	var payload schemas.DeviceTokenRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, a.logger, schemas.AsValidationError(err))
		return
	}

	token, err := a.tokens.Issue(payload.DeviceID)
	if err != nil {
		respondError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}
