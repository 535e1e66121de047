package entities

// DatabaseStatus описывает состояние хранилища.
type DatabaseStatus struct {
	MaxConnections    int    `json:"max_connections"`
	ActiveConnections int    `json:"active_connections"`
	Version           string `json:"version"`
}

// Status вычисляется на каждый запрос и нигде не хранится.
type Status struct {
	Database DatabaseStatus `json:"database"`
}

// NewStatus создает снимок состояния.
func NewStatus(maxConnections, activeConnections int, version string) *Status {
	return &Status{
		Database: DatabaseStatus{
			MaxConnections:    maxConnections,
			ActiveConnections: activeConnections,
			Version:           version,
		},
	}
}
