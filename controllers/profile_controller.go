package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"unmei_server/models"
	"unmei_server/services"
)

// ProfileController struct
type ProfileController struct {
	ProfileService *services.ProfileService
}

// NewProfileController initializes the profile controller
func NewProfileController(service *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: service}
}

// HandleCreateProfile - Validates and stores a profile (full overwrite)
func (c *ProfileController) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile

	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if err := c.ProfileService.SaveProfile(context.TODO(), profile); err != nil {
		log.Printf("❌ Failed to save profile: %v", err)
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// HandleGetProfile - Fetch a profile by name
func (c *ProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, `{"error": "name is required"}`, http.StatusBadRequest)
		return
	}

	profile, err := c.ProfileService.GetProfile(context.TODO(), name)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			http.Error(w, `{"error": "Profile not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Error fetching profile: %v", err)
		http.Error(w, `{"error": "Failed to fetch profile"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}
