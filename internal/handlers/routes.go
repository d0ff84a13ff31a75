package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter assembles the HTTP surface. Both /announcements and
// /announcements/ are served for the collection endpoints.
func NewRouter(announcements *AnnouncementHandler, log *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogger(log))

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET", "HEAD")

	for _, path := range []string{"/announcements", "/announcements/"} {
		router.HandleFunc(path, announcements.GetAnnouncements).Methods("GET")
		router.HandleFunc(path, announcements.CreateAnnouncement).Methods("POST")
	}
	router.HandleFunc("/announcements/{id}", announcements.GetAnnouncement).Methods("GET")
	router.HandleFunc("/announcements/{id}", announcements.UpdateAnnouncement).Methods("PUT")
	router.HandleFunc("/announcements/{id}", announcements.DeleteAnnouncement).Methods("DELETE")

	return router
}
