package service

import (
	"time"

	"github.com/crashsite/botcolony/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Snapshot       *engine.Snapshot   `json:"snapshot"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// TurnResult contains the outcome of a process-turn call: the per-turn report
// plus the full post-turn snapshot
type TurnResult struct {
	SessionID string             `json:"session_id"`
	Report    *engine.TurnReport `json:"report"`
	Snapshot  *engine.Snapshot   `json:"snapshot"`
}

// EventsResponse contains a tail read of a session's event log
type EventsResponse struct {
	SessionID string         `json:"session_id"`
	Events    []engine.Event `json:"events"`
	Total     int            `json:"total"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	MapWidth    int    `json:"map_width"`
	MapHeight   int    `json:"map_height"`
	Controllers int    `json:"controllers"`
}
