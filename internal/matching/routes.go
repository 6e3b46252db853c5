package matching

import (
	"github.com/gorilla/mux"

	"github.com/yonah-prog/datedrop-app/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matches").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetMatches).Methods("GET")
	api.HandleFunc("/history", handler.GetMatchHistory).Methods("GET")
	api.HandleFunc("/{id}/respond", handler.RespondToMatch).Methods("POST")

	api.HandleFunc("/drop/status", handler.GetDropStatus).Methods("GET")
	api.HandleFunc("/drop/optin", handler.SetOptIn).Methods("POST")

	admin := router.PathPrefix("/api/v1/admin/matching").Subrouter()
	admin.Use(authMiddleware.Authenticate)
	admin.Use(authMiddleware.RequireAdmin)
	admin.HandleFunc("/run", handler.RunDrop).Methods("POST")
}
