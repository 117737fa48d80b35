package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"unmei_server/models"
	"unmei_server/services"
)

// ChatController struct
type ChatController struct {
	MessageService *services.MessageService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.MessageService) *ChatController {
	return &ChatController{MessageService: service}
}

// HandleGetMessages - Fetch the most recent messages for a room
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	limitStr := r.URL.Query().Get("limit")

	if roomID == "" {
		http.Error(w, `{"error": "room is required"}`, http.StatusBadRequest)
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = models.RecentMessageLimit
	}

	messages, err := c.MessageService.RecentMessages(context.TODO(), roomID, limit)
	if err != nil {
		log.Printf("❌ Error fetching messages: %v", err)
		http.Error(w, `{"error": "Failed to fetch messages"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}
