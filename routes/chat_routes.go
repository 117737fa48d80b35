package routes

import (
	"unmei_server/controllers"
	"unmei_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chat history under /api/chat
func RegisterChatRoutes(r *mux.Router, messageService *services.MessageService) {
	controller := controllers.NewChatController(messageService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
}
