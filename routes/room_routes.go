package routes

import (
	"unmei_server/controllers"
	"unmei_server/services"

	"github.com/gorilla/mux"
)

// RegisterRoomRoutes sets up routes for the room list under /api/rooms
func RegisterRoomRoutes(r *mux.Router, roomService *services.RoomService, profileService *services.ProfileService) {
	controller := controllers.NewRoomController(roomService, profileService)

	roomRouter := r.PathPrefix("/api/rooms").Subrouter()
	roomRouter.HandleFunc("", controller.HandleListRooms).Methods("GET")
}
