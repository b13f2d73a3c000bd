package models

import "time"

type CreateSessionRequest struct {
	LeagueSize              int   `json:"league_size" validate:"omitempty,gte=2,lte=32"`
	IncludeZeroPointPlayers *bool `json:"include_zero_point_players,omitempty"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Players   int    `json:"players"`
}

// SessionSummary describes a session's loaded inputs.
type SessionSummary struct {
	SessionID               string         `json:"session_id"`
	Tables                  map[string]int `json:"tables"`
	ADPRows                 int            `json:"adp_rows"`
	Drafted                 int            `json:"drafted"`
	LeagueSize              int            `json:"league_size,omitempty"`
	IncludeZeroPointPlayers *bool          `json:"include_zero_point_players,omitempty"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
}

type DraftedRequest struct {
	Players []string `json:"players" validate:"dive,required"`
}

// DraftedResponse reports the stored drafted set. Unknown lists names not
// present in the valued pool; they are kept but mark nothing.
type DraftedResponse struct {
	Drafted int      `json:"drafted"`
	Unknown []string `json:"unknown"`
}

type FreeAgentRequest struct {
	Players []string `json:"players" validate:"required,min=1,dive,required"`
}

type TableUploadResponse struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

type WeeklyFreeAgentRequest struct {
	FreeAgents []WeeklyPlayer `json:"free_agents" validate:"required,min=1,dive"`
	Roster     []WeeklyPlayer `json:"roster" validate:"dive"`
}
