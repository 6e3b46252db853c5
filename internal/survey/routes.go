package survey

import (
	"github.com/gorilla/mux"

	"github.com/yonah-prog/datedrop-app/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/survey").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/questions", handler.GetQuestions).Methods("GET")
	api.HandleFunc("/all", handler.GetAllResponses).Methods("GET")
	api.HandleFunc("/progress", handler.GetProgress).Methods("GET")
	api.HandleFunc("/section/{section}", handler.GetSection).Methods("GET")
	api.HandleFunc("/section/{section}", handler.SaveSection).Methods("POST")
}
