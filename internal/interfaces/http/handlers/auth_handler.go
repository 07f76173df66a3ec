package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"f1-bets.backend/internal/domain/entities"
	"f1-bets.backend/internal/interfaces/http/response"
)

// AuthService is what AuthHandler needs from the user directory
type AuthService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	ChangePassword(ctx context.Context, input *entities.ChangePasswordInput) error
}

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	authUsecase AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register handles user registration
// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "user registered",
		"user_id": user.ID,
	})
}

// Login handles user login
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := bindJSON(c, &input); err != nil {
		response.Error(c, err)
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user_id":   authResponse.User.ID,
		"user_name": authResponse.User.DisplayName(),
		"token":     authResponse.Token,
	})
}

type changePasswordRequest struct {
	UserID          *FlexInt64 `json:"user_id"`
	CurrentPassword string     `json:"current_password"`
	NewPassword     string     `json:"new_password"`
}

// ChangePassword replaces the caller's password
// POST /change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	userID, err := requireID("user_id", req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := authorizeCaller(c, userID); err != nil {
		response.Error(c, err)
		return
	}

	err = h.authUsecase.ChangePassword(c.Request.Context(), &entities.ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "password updated"})
}
