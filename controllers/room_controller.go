package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"unmei_server/services"
)

// RoomController struct
type RoomController struct {
	RoomService    *services.RoomService
	ProfileService *services.ProfileService
}

// NewRoomController initializes the room controller
func NewRoomController(roomService *services.RoomService, profileService *services.ProfileService) *RoomController {
	return &RoomController{RoomService: roomService, ProfileService: profileService}
}

// HandleListRooms - One-shot room list for the viewer: occupancy, matching
// rate and availability per room
func (c *RoomController) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, `{"error": "name is required"}`, http.StatusBadRequest)
		return
	}

	viewer, err := c.ProfileService.GetProfile(context.TODO(), name)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			http.Error(w, `{"error": "Profile not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Error fetching viewer profile: %v", err)
		http.Error(w, `{"error": "Failed to fetch profile"}`, http.StatusInternalServerError)
		return
	}

	rooms, err := c.RoomService.ListRooms(context.TODO(), viewer)
	if err != nil {
		log.Printf("❌ Error listing rooms: %v", err)
		http.Error(w, `{"error": "Failed to list rooms"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rooms)
}
