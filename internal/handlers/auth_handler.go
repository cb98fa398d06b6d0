package handlers

import (
	"encoding/json"
	"net/http"

	"jrs-backend/internal/auth"
	"jrs-backend/internal/models"
	"jrs-backend/internal/services"
	"jrs-backend/pkg/utils"
)

type AuthHandler struct {
	Users *services.UserService
	JWT   *auth.JWTManager
}

func NewAuthHandler(users *services.UserService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{Users: users, JWT: jwtManager}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := h.JWT.GenerateToken(user)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}
