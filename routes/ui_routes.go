package routes

import (
	"net/http"

	"github.com/DamienMonchaty/VIbe/handlers/ui"
	"github.com/gorilla/mux"
)

// AddUIRoutes registers the HTML shell routes with the provided router.
func AddUIRoutes(r *mux.Router) {
	staticFileServer := http.FileServer(http.Dir("./ui/static/"))
	r.PathPrefix("/ui/static/").Handler(http.StripPrefix("/ui/static/", staticFileServer))

	r.HandleFunc("/ui/feed", ui.FeedHandler).Methods("GET")
	r.HandleFunc("/ui/market", ui.MarketHandler).Methods("GET")
	r.HandleFunc("/ui/rooms", ui.RoomsHandler).Methods("GET")
	r.HandleFunc("/ui/sign-in", ui.SignInHandler).Methods("GET")

	redirect := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/feed", http.StatusFound)
	}
	r.HandleFunc("/ui/", redirect).Methods("GET")
	r.HandleFunc("/ui", redirect).Methods("GET")
}
