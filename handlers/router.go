package handlers

import (
	"github.com/gorilla/mux"

	"resource-service/security"
)

// NewRouter mounts the full v1 surface. Everything under /v1/auth requires
// a valid bearer token; role and ownership checks live in the services.
func NewRouter(tokens *security.TokenManager, users *UserHandler, projects *ProjectHandler, tasks *TaskHandler) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/v1/signup", users.Signup).Methods("POST")
	router.HandleFunc("/v1/login", users.Login).Methods("POST")

	auth := router.PathPrefix("/v1/auth").Subrouter()
	auth.Use(tokens.Middleware)

	auth.HandleFunc("/me", users.Me).Methods("GET")
	auth.HandleFunc("/update/me", users.UpdateMe).Methods("POST")
	auth.HandleFunc("/engineers", users.Engineers).Methods("GET")

	auth.HandleFunc("/projects", projects.Create).Methods("POST")
	auth.HandleFunc("/projects", projects.List).Methods("GET")
	auth.HandleFunc("/projects/{id}", projects.Get).Methods("GET")
	auth.HandleFunc("/update/projects/{id}", projects.Update).Methods("POST")
	auth.HandleFunc("/delete/projects/{id}", projects.Delete).Methods("DELETE")

	auth.HandleFunc("/tasks", tasks.Assign).Methods("POST")
	auth.HandleFunc("/tasks", tasks.List).Methods("GET")
	auth.HandleFunc("/projects/{projectId}/tasks", tasks.ListForProject).Methods("GET")

	return router
}
