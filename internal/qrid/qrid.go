// Package qrid turns a user identity into a short QR payload and back.
//
// The plain payload is "<id>-<name>". The name is free text and may itself
// contain hyphens, so Decode only trusts the segment before the first hyphen;
// Encode refuses ids that contain one. Scanners may also send a JSON object;
// its id (or uid) is tried first, then email, then studentId.
package qrid

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/Dias221467/FF_Points/internal/models"
)

const separator = "-"

var (
	ErrEmptyPayload = errors.New("empty qr payload")
	ErrInvalidID    = errors.New("qr id must be non-empty and contain no hyphen")
)

// Key is what a scanned payload can identify a user by.
type Key struct {
	ID        string
	Email     string
	StudentID string
}

// Encode builds the plain "<id>-<name>" payload.
func Encode(id, name string) (string, error) {
	if id == "" || strings.Contains(id, separator) {
		return "", ErrInvalidID
	}
	return id + separator + name, nil
}

type structured struct {
	StudentID string `json:"studentId,omitempty"`
	ID        string `json:"id,omitempty"`
	UID       string `json:"uid,omitempty"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
}

// EncodeStructured builds a self-describing JSON payload.
func EncodeStructured(id, name string) (string, error) {
	if id == "" {
		return "", ErrInvalidID
	}
	b, err := json.Marshal(structured{ID: id, Name: name})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode extracts a lookup key from a scanned payload.
func Decode(payload string) (Key, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return Key{}, ErrEmptyPayload
	}

	if strings.HasPrefix(payload, "{") {
		var s structured
		if err := json.Unmarshal([]byte(payload), &s); err == nil {
			key := Key{ID: s.ID, Email: s.Email, StudentID: s.StudentID}
			if key.ID == "" {
				key.ID = s.UID
			}
			if key.ID != "" || key.Email != "" || key.StudentID != "" {
				return key, nil
			}
		}
	}

	id, _, _ := strings.Cut(payload, separator)
	if id == "" {
		return Key{}, ErrEmptyPayload
	}
	return Key{ID: id, StudentID: id}, nil
}

// Resolve finds the user a key points at: by id, then email, then the
// separate student id field.
func Resolve(users []models.User, key Key) (*models.User, bool) {
	if key.ID != "" {
		for i := range users {
			if users[i].ID.Hex() == key.ID {
				return &users[i], true
			}
		}
	}
	if key.Email != "" {
		for i := range users {
			if users[i].Email != "" && strings.EqualFold(users[i].Email, key.Email) {
				return &users[i], true
			}
		}
	}
	if key.StudentID != "" {
		for i := range users {
			if users[i].StudentID != "" && users[i].StudentID == key.StudentID {
				return &users[i], true
			}
		}
	}
	return nil, false
}
