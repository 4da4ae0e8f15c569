package web

import (
	"net/http"
	"net/url"

	"github.com/dreitier/shortcal/calendar"
	"github.com/dreitier/shortcal/metrics"
	"github.com/dreitier/shortcal/timesync"
	"github.com/gorilla/mux"
)

// NewRouter wires the API for clock. syncer may be nil if time sync is
// disabled; the /api/sync routes then answer with 404.
func NewRouter(clock *calendar.Clock, syncer *timesync.Syncer) *mux.Router {
	api := &api{clock: clock, syncer: syncer}

	router := mux.NewRouter().UseEncodedPath()
	router.StrictSlash(true)
	router.HandleFunc("/", BaseHandler)
	router.Handle("/metrics", metrics.Handler())

	router.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		api.GetNow(w)
	}).Methods("GET")

	router.HandleFunc("/api/parse", func(w http.ResponseWriter, r *http.Request) {
		api.Parse(w, r.URL.Query().Get("text"))
	}).Methods("GET")

	router.HandleFunc("/api/sync", func(w http.ResponseWriter, r *http.Request) {
		api.GetSyncStatus(w)
	}).Methods("GET")
	router.HandleFunc("/api/sync", func(w http.ResponseWriter, r *http.Request) {
		api.TriggerSync(w)
	}).Methods("POST")

	router.HandleFunc("/api/{packed:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		api.Decode(w, vars["packed"])
	}).Methods("GET")

	router.HandleFunc("/api/{packed:[0-9]+}/add/{unit}/{amount}", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		unescape(vars)
		api.Add(w, vars["packed"], vars["unit"], vars["amount"])
	}).Methods("GET")

	return router
}

// Base route, redirects to the current time.
func BaseHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api", http.StatusMovedPermanently)
}

func badRequest(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(message))
}

func notFound(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(message))
}

func unescape(vars map[string]string) {
	for key, val := range vars {
		val, err := url.PathUnescape(val)
		if err == nil {
			vars[key] = val
		}
	}
}
