package api

import "time"

// User mirrors the profile payload returned by /users/me.
type User struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
}

// Card describes a shared image post in transport-friendly form.
type Card struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Link      string `json:"link"`
	Owner     User   `json:"owner"`
	Likes     []User `json:"likes"`
	CreatedAt string `json:"createdAt"`
}

// LikedBy reports whether the user with the given id is among the card's likes.
// An empty id never matches.
func (c Card) LikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, u := range c.Likes {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// OwnedBy reports whether the card belongs to the user with the given id.
func (c Card) OwnedBy(userID string) bool {
	return userID != "" && c.Owner.ID == userID
}

// ParsedCreatedAt returns the creation timestamp as time.Time when possible.
// Invalid or missing timestamps return the zero time.
func (c Card) ParsedCreatedAt() time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, c.CreatedAt); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// ProfileUpdate is the request body for PATCH /users/me.
type ProfileUpdate struct {
	Name  string `json:"name"`
	About string `json:"about"`
}

// AvatarUpdate is the request body for PATCH /users/me/avatar.
type AvatarUpdate struct {
	Avatar string `json:"avatar"`
}

// NewCard is the request body for POST /cards.
type NewCard struct {
	Name string `json:"name"`
	Link string `json:"link"`
}
