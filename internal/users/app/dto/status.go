package dto

import "userapi/internal/users/domain/entities"

// StatusInput задает базу, о которой запрашивается состояние.
type StatusInput struct {
	DatabaseName string
}

// DatabaseStatusOutput описывает состояние базы.
type DatabaseStatusOutput struct {
	MaxConnections    int    `json:"max_connections"`
	ActiveConnections int    `json:"active_connections"`
	Version           string `json:"version"`
}

// StatusOutput представляет ответ /status.
type StatusOutput struct {
	Database DatabaseStatusOutput `json:"database"`
}

// NewStatusOutput копирует снимок состояния.
func NewStatusOutput(s *entities.Status) StatusOutput {
	return StatusOutput{
		Database: DatabaseStatusOutput{
			MaxConnections:    s.Database.MaxConnections,
			ActiveConnections: s.Database.ActiveConnections,
			Version:           s.Database.Version,
		},
	}
}
