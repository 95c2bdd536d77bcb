package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"resource-service/models"
	"resource-service/security"
	"resource-service/service"
)

type UserHandler struct {
	identity *service.IdentityService
	tokens   *security.TokenManager
	logger   *zap.Logger
}

func NewUserHandler(identity *service.IdentityService, tokens *security.TokenManager, logger *zap.Logger) *UserHandler {
	return &UserHandler{identity: identity, tokens: tokens, logger: logger}
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.identity.Register(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.identity.Authenticate(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.tokens.NewAccessToken(user)
	if err != nil {
		h.logger.Error("sign access token", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   token,
	})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	user, err := h.identity.GetSelf(r.Context(), caller)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.identity.UpdateSelf(r.Context(), caller, patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) Engineers(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	engineers, err := h.identity.ListEngineers(r.Context(), caller)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, engineers)
}
