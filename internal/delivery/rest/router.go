package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter wires every route behind CORS. All /api/v1 routes need a
// bearer token; /api/v1/admin routes also need the admin role.
func NewRouter(h *Handler, auth *Authenticator, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/progress", h.GetProgress).Methods(http.MethodGet)
	api.HandleFunc("/progress/lessons/complete", h.CompleteLesson).Methods(http.MethodPost)
	api.HandleFunc("/progress/current-lesson", h.SetCurrentLesson).Methods(http.MethodPut)

	api.HandleFunc("/achievements", h.GetUserAchievements).Methods(http.MethodGet)
	api.HandleFunc("/achievements/check", h.CheckAchievements).Methods(http.MethodPost)
	api.HandleFunc("/achievements/stats", h.GetUserAchievementStats).Methods(http.MethodGet)
	api.HandleFunc("/achievements/{id:[0-9]+}/notified", h.MarkNotified).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(RequireAdmin)

	admin.HandleFunc("/achievements", h.ListCatalog).Methods(http.MethodGet)
	admin.HandleFunc("/achievements", h.CreateAchievement).Methods(http.MethodPost)
	admin.HandleFunc("/achievements/{id:[0-9]+}", h.GetCatalogEntry).Methods(http.MethodGet)
	admin.HandleFunc("/achievements/{id:[0-9]+}", h.UpdateAchievement).Methods(http.MethodPut)
	admin.HandleFunc("/achievements/{id:[0-9]+}", h.DeleteAchievement).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
