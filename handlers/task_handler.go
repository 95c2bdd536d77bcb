package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"resource-service/service"
)

type TaskHandler struct {
	tasks  *service.TaskService
	logger *zap.Logger
}

func NewTaskHandler(tasks *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	var in service.AssignTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.tasks.Assign(r.Context(), caller, in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task assigned successfully",
		"task":    task,
	})
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	tasks, err := h.tasks.ListForCaller(r.Context(), caller)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) ListForProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	id, ok := projectID(w, r, "projectId")
	if !ok {
		return
	}
	tasks, err := h.tasks.ListForProject(r.Context(), caller, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}
