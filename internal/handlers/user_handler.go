package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"jrs-backend/internal/models"
	"jrs-backend/internal/repositories"
	"jrs-backend/internal/services"
	"jrs-backend/pkg/utils"
)

type UserHandler struct {
	Service *services.UserService
	Repo    *repositories.UserRepository
}

func NewUserHandler(service *services.UserService, repo *repositories.UserRepository) *UserHandler {
	return &UserHandler{Service: service, Repo: repo}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.List(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	utils.RespondJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	user, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ToggleActiveStatus suspends or reactivates an account.
func (h *UserHandler) ToggleActiveStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	user, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	user.IsActive = !user.IsActive
	if err := h.Repo.Update(r.Context(), user); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}
