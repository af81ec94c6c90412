package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vancomm/minesweeper-engine/internal/handlers"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
)

func (a *App) Router() http.Handler {
	router := mux.NewRouter()
	root := router
	if a.basePath != "" {
		root = router.PathPrefix(a.basePath).Subrouter()
	}

	game := handlers.NewGameHandler(a.logger, a.sessions, a.jwt, a.ws)
	recs := handlers.NewRecordsHandler(a.logger, a.store)
	auth := middleware.SessionAuth(a.logger, a.jwt)
	private := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	root.Methods(http.MethodPost).Path("/game").HandlerFunc(game.NewGame)
	root.Methods(http.MethodGet).Path("/game/{id}").Handler(private(game.Fetch))
	root.Methods(http.MethodDelete).Path("/game/{id}").Handler(private(game.Quit))
	root.Methods(http.MethodPost).Path("/game/{id}/reveal").Handler(private(game.Reveal))
	root.Methods(http.MethodPost).Path("/game/{id}/flag").Handler(private(game.Flag))
	root.Methods(http.MethodPost).Path("/game/{id}/hint").Handler(private(game.Hint))
	root.Methods(http.MethodPost).Path("/game/{id}/restart").Handler(private(game.Restart))
	root.Methods(http.MethodGet).Path("/game/{id}/connect").Handler(private(game.ConnectWS))

	root.Methods(http.MethodGet).Path("/records").HandlerFunc(recs.List)
	root.Methods(http.MethodGet).Path("/records/{level}").HandlerFunc(recs.Best)

	root.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return middleware.Wrap(router, middleware.Logging(a.logger), middleware.Cors())
}
