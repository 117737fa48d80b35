package models

// RoomInfo is the per-room read model shown on the room list. It is entirely
// derived and recomputed on every roster push; MatchingRate is present only
// when exactly one other occupant is in the room.
type RoomInfo struct {
	ID           string       `json:"id"`
	UserCount    int          `json:"userCount"`
	MatchingRate *int         `json:"matchingRate,omitempty"`
	Users        []ActiveUser `json:"users"`
	Available    bool         `json:"available"`
	ImageURL     string       `json:"imageUrl,omitempty"`
}
