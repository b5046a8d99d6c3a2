// Package contracts defines interfaces that decouple the application layer from storage implementations.
package contracts

import (
	"database/sql"

	"audiorr/internal/models"
)

// Store allows access to the main store repo methods.
type Store interface {
	SessionStore() SessionStore
}

// SessionStore allows access to session repo methods.
type SessionStore interface {
	GetDB() *sql.DB

	// Add operations.
	AddSession(rec *models.SessionRecord) error
	AddVideoResults(sessionID string, results []models.VideoResult) error

	// Update operations.
	FinishSession(rec *models.SessionRecord) error

	// Get operations.
	GetSession(id string) (rec *models.SessionRecord, found bool, err error)
	GetSessionResults(id string) ([]models.VideoResult, error)
	ListSessions(limit int) ([]models.SessionRecord, error)
}
