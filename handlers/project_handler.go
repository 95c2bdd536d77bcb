package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"resource-service/models"
	"resource-service/service"
)

type ProjectHandler struct {
	projects *service.ProjectService
	logger   *zap.Logger
}

func NewProjectHandler(projects *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// projectID parses the path id. A malformed id gets the same 404 as a
// missing project so ids cannot be probed.
func projectID(w http.ResponseWriter, r *http.Request, key string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[key])
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Project not found or unauthorized")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	var in service.CreateProjectInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projects.Create(r.Context(), caller, in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Project created successfully",
		"project": project,
	})
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	projects, err := h.projects.List(r.Context(), caller)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r, "id")
	if !ok {
		return
	}
	project, err := h.projects.Get(r.Context(), caller, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r, "id")
	if !ok {
		return
	}
	var patch models.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projects.Update(r.Context(), caller, id, patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project updated successfully",
		"project": project,
	})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r, "id")
	if !ok {
		return
	}
	if err := h.projects.Delete(r.Context(), caller, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Project deleted successfully")
}
