package socket

import (
	"context"
	"log"
	"sync"

	"unmei_server/models"
	"unmei_server/services"

	socketio "github.com/googollee/go-socket.io"
)

// registry tracks the live sessions per socket connection so every exit path
// (leave event, disconnect, error) releases the same resources.
type registry struct {
	mu      sync.Mutex
	rooms   map[string]*services.RoomSession
	lobbies map[string]*services.LobbySession
}

func (r *registry) swapRoom(connID string, session *services.RoomSession) *services.RoomSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous := r.rooms[connID]
	if session == nil {
		delete(r.rooms, connID)
	} else {
		r.rooms[connID] = session
	}
	return previous
}

func (r *registry) room(connID string) *services.RoomSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rooms[connID]
}

func (r *registry) swapLobby(connID string, session *services.LobbySession) *services.LobbySession {
	r.mu.Lock()
	defer r.mu.Unlock()
	previous := r.lobbies[connID]
	if session == nil {
		delete(r.lobbies, connID)
	} else {
		r.lobbies[connID] = session
	}
	return previous
}

// NewSocketServer initializes and returns a new Socket.IO server wired to the
// chat services
func NewSocketServer(profiles *services.ProfileService, presence *services.PresenceService, messages *services.MessageService, broker *services.Broker) *socketio.Server {
	server := socketio.NewServer(nil)
	sessions := &registry{
		rooms:   make(map[string]*services.RoomSession),
		lobbies: make(map[string]*services.LobbySession),
	}

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	// Lobby: stream the live room list to the client
	server.OnEvent("/", "watchRooms", func(c socketio.Conn, name string) {
		profile, err := profiles.GetProfile(context.Background(), name)
		if err != nil {
			log.Printf("❌ watchRooms rejected for '%s': %v", name, err)
			c.Emit("errorMessage", "profile not found")
			return
		}

		lobby := services.NewLobbySession(profile, presence, broker)
		if err := lobby.Start(context.Background()); err != nil {
			log.Printf("❌ Failed to start lobby session for %s: %v", name, err)
			c.Emit("errorMessage", "failed to watch rooms")
			return
		}

		if previous := sessions.swapLobby(c.ID(), lobby); previous != nil {
			previous.Close()
		}

		go func() {
			for event := range lobby.Events {
				c.Emit(event.Event, event.Data)
			}
		}()
	})

	server.OnEvent("/", "unwatchRooms", func(c socketio.Conn) {
		if lobby := sessions.swapLobby(c.ID(), nil); lobby != nil {
			lobby.Close()
		}
	})

	// Room entry: presence, announce, history seed, timers
	server.OnEvent("/", "join", func(c socketio.Conn, data map[string]string) {
		roomID := data["room"]
		name := data["name"]
		if !validRoom(roomID) || name == "" {
			log.Printf("❌ Invalid join request: room='%s' name='%s'", roomID, name)
			c.Emit("errorMessage", "invalid join request")
			return
		}

		profile, err := profiles.GetProfile(context.Background(), name)
		if err != nil {
			log.Printf("❌ join rejected for '%s': %v", name, err)
			c.Emit("errorMessage", "profile not found")
			return
		}

		session := services.NewRoomSession(roomID, profile, presence, messages, broker)
		if err := session.Start(context.Background()); err != nil {
			log.Printf("❌ Failed to start room session for %s in room %s: %v", name, roomID, err)
			c.Emit("errorMessage", "failed to join room")
			return
		}

		if previous := sessions.swapRoom(c.ID(), session); previous != nil {
			previous.Close(context.Background())
		}
		log.Printf("👥 User %s joined room %s", name, roomID)

		go func() {
			for event := range session.Events {
				c.Emit(event.Event, event.Data)
			}
		}()
	})

	server.OnEvent("/", "message", func(c socketio.Conn, msg string) {
		session := sessions.room(c.ID())
		if session == nil {
			return
		}
		if err := session.SendMessage(context.Background(), msg); err != nil {
			// Best effort: the input is already cleared client-side.
			log.Printf("❌ Failed to send message in room %s: %v", session.RoomID, err)
		}
	})

	server.OnEvent("/", "confess", func(c socketio.Conn) {
		if session := sessions.room(c.ID()); session != nil {
			if err := session.ConfirmConfession(context.Background()); err != nil {
				log.Printf("❌ Failed to send confession in room %s: %v", session.RoomID, err)
			}
		}
	})

	server.OnEvent("/", "confessDismiss", func(c socketio.Conn) {
		if session := sessions.room(c.ID()); session != nil {
			session.DismissConfession()
		}
	})

	server.OnEvent("/", "replySend", func(c socketio.Conn) {
		if session := sessions.room(c.ID()); session != nil {
			if err := session.ConfirmReply(context.Background()); err != nil {
				log.Printf("❌ Failed to send reply in room %s: %v", session.RoomID, err)
			}
		}
	})

	server.OnEvent("/", "replyDismiss", func(c socketio.Conn) {
		if session := sessions.room(c.ID()); session != nil {
			session.DismissReply()
		}
	})

	server.OnEvent("/", "leave", func(c socketio.Conn) {
		if session := sessions.swapRoom(c.ID(), nil); session != nil {
			log.Printf("👋 User %s left room %s", session.Profile.Name, session.RoomID)
			session.Close(context.Background())
		}
	})

	server.OnError("/", func(c socketio.Conn, e error) {
		log.Println("❌ Socket error:", e)
		if c != nil {
			cleanup(sessions, c.ID())
		}
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", c.ID(), reason)
		cleanup(sessions, c.ID())
	})

	return server
}

func cleanup(sessions *registry, connID string) {
	if session := sessions.swapRoom(connID, nil); session != nil {
		session.Close(context.Background())
	}
	if lobby := sessions.swapLobby(connID, nil); lobby != nil {
		lobby.Close()
	}
}

func validRoom(roomID string) bool {
	for _, id := range models.RoomNumbers {
		if id == roomID {
			return true
		}
	}
	return false
}
