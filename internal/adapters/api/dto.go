package api

import (
	playerCommands "github.com/andrescamacho/starlane/internal/application/player/commands"
	playerQueries "github.com/andrescamacho/starlane/internal/application/player/queries"
	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
)

// RouteStepDTO is one system along a planned route
type RouteStepDTO struct {
	Symbol   string  `json:"symbol"`
	Days     int     `json:"days"`
	Fuel     int     `json:"fuel"`
	FuelCost int     `json:"fuel_cost"`
	Danger   float64 `json:"danger"`
}

// PlanRouteDTO is the body of GET /routes/plan
type PlanRouteDTO struct {
	Found     bool           `json:"found"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	StartKind string         `json:"start_kind"`
	Days      int            `json:"days"`
	Fuel      int            `json:"fuel"`
	Danger    float64        `json:"danger"`
	Steps     []RouteStepDTO `json:"steps"`
}

// ReachableSystemDTO is one entry of GET /routes/reachable
type ReachableSystemDTO struct {
	Symbol string  `json:"symbol"`
	Via    string  `json:"via,omitempty"`
	Days   int     `json:"days"`
	Fuel   int     `json:"fuel"`
	Danger float64 `json:"danger"`
}

// ReachableDTO is the body of GET /routes/reachable
type ReachableDTO struct {
	Center  string               `json:"center"`
	Systems []ReachableSystemDTO `json:"systems"`
}

// WormholeExitDTO is a wormhole traversal leaving a system
type WormholeExitDTO struct {
	Wormhole     string `json:"wormhole"`
	To           string `json:"to"`
	AccessModule string `json:"access_module,omitempty"`
}

// SystemDTO is the body of GET /systems/:symbol
type SystemDTO struct {
	Symbol    string            `json:"symbol"`
	X         float64           `json:"x"`
	Y         float64           `json:"y"`
	Danger    float64           `json:"danger"`
	JumpRange float64           `json:"jump_range"`
	Links     []string          `json:"links"`
	Wormholes []WormholeExitDTO `json:"wormholes"`
}

// PlayerDTO is the body of GET /players/:id
type PlayerDTO struct {
	ID       int      `json:"id"`
	Agent    string   `json:"agent"`
	Flagship string   `json:"flagship,omitempty"`
	Visited  []string `json:"visited"`
	Seen     []string `json:"seen"`
}

// VisitRequest is the body of POST /players/:id/visits
type VisitRequest struct {
	System string `json:"system" binding:"required"`
}

// VisitDTO is the result of recording a visit
type VisitDTO struct {
	PlayerID       int      `json:"player_id"`
	Agent          string   `json:"agent"`
	System         string   `json:"system"`
	NewlySeen      []string `json:"newly_seen"`
	VisitedCount   int      `json:"visited_count"`
	SeenCount      int      `json:"seen_count"`
	AlreadyVisited bool     `json:"already_visited"`
}

// ToPlanRouteDTO converts a plan response for JSON output
func ToPlanRouteDTO(r *routingQueries.PlanRouteResponse) PlanRouteDTO {
	dto := PlanRouteDTO{
		Found:     r.Found,
		From:      r.From,
		To:        r.To,
		StartKind: r.StartKind,
		Days:      r.Days,
		Fuel:      r.Fuel,
		Danger:    r.Danger,
		Steps:     make([]RouteStepDTO, 0, len(r.Steps)),
	}
	for _, step := range r.Steps {
		dto.Steps = append(dto.Steps, RouteStepDTO(step))
	}
	return dto
}

// ToReachableDTO converts a reachable-systems response
func ToReachableDTO(r *routingQueries.ReachableSystemsResponse) ReachableDTO {
	dto := ReachableDTO{Center: r.Center, Systems: make([]ReachableSystemDTO, 0, len(r.Systems))}
	for _, system := range r.Systems {
		dto.Systems = append(dto.Systems, ReachableSystemDTO(system))
	}
	return dto
}

// ToSystemDTO converts system details
func ToSystemDTO(r *routingQueries.SystemDetails) SystemDTO {
	dto := SystemDTO{
		Symbol:    r.Symbol,
		X:         r.X,
		Y:         r.Y,
		Danger:    r.Danger,
		JumpRange: r.JumpRange,
		Links:     append([]string{}, r.Links...),
		Wormholes: make([]WormholeExitDTO, 0, len(r.Wormholes)),
	}
	for _, exit := range r.Wormholes {
		dto.Wormholes = append(dto.Wormholes, WormholeExitDTO(exit))
	}
	return dto
}

// ToPlayerDTO converts a player response
func ToPlayerDTO(r *playerQueries.GetPlayerResponse) PlayerDTO {
	return PlayerDTO{
		ID:       r.ID,
		Agent:    r.Agent,
		Flagship: r.Flagship,
		Visited:  append([]string{}, r.Visited...),
		Seen:     append([]string{}, r.Seen...),
	}
}

// ToVisitDTO converts a recorded visit
func ToVisitDTO(r *playerCommands.RecordVisitResponse) VisitDTO {
	return VisitDTO{
		PlayerID:       r.PlayerID,
		Agent:          r.AgentSymbol,
		System:         r.System,
		NewlySeen:      append([]string{}, r.NewlySeen...),
		VisitedCount:   r.VisitedCount,
		SeenCount:      r.SeenCount,
		AlreadyVisited: r.AlreadyVisited,
	}
}
