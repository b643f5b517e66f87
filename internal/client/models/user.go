// Package models holds the canonical data types exchanged with the ChatFlow
// backend. Every screen and service consumes the single User definition
// below; optional fields are explicit (zero value or nil pointer means
// "not provided by the server").
package models

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"
)

// User is the one user record of consequence.
//
// ID is server-assigned. Email is the reconciliation key: it is immutable
// from the client's perspective and is used to re-fetch authoritative state.
// Name and Username are the only fields the profile editor may change
// (plus Avatar, which is an opaque URL).
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar,omitempty"`
	Bio       string     `json:"bio,omitempty"`
	IsOnline  bool       `json:"isOnline,omitempty"`
	LastSeen  *time.Time `json:"lastSeen,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// userAlias mirrors User but also accepts the backend's legacy "_id" key,
// which some endpoints still emit instead of "id".
type userAlias struct {
	ID        string     `json:"id"`
	LegacyID  string     `json:"_id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar"`
	Bio       string     `json:"bio"`
	IsOnline  bool       `json:"isOnline"`
	LastSeen  *time.Time `json:"lastSeen"`
	CreatedAt *time.Time `json:"createdAt"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	var a userAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	id := a.ID
	if id == "" {
		id = a.LegacyID
	}
	*u = User{
		ID:        id,
		Name:      a.Name,
		Username:  a.Username,
		Email:     a.Email,
		Avatar:    a.Avatar,
		Bio:       a.Bio,
		IsOnline:  a.IsOnline,
		LastSeen:  a.LastSeen,
		CreatedAt: a.CreatedAt,
	}
	return nil
}

// Initial returns the uppercase first character of the user's name, or
// "U" when the name is empty. Used as the avatar fallback.
func (u User) Initial() string {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return "U"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

// SameIdentity reports whether other refers to the same account as u,
// matching by ID and by email. Either key may be absent in malformed
// data, so a match on one suffices.
func (u User) SameIdentity(other User) bool {
	if u.ID != "" && other.ID != "" && u.ID == other.ID {
		return true
	}
	if u.Email != "" && other.Email != "" && strings.EqualFold(u.Email, other.Email) {
		return true
	}
	return false
}

// UpdateUserRequest is the partial-update payload for PUT /api/v1/users/:email.
// Only name, username and (optionally) avatar may be submitted; email never.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// SignupRequest is the payload for POST /api/v1/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
