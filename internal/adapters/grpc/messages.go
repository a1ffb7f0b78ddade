package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	routingQueries "github.com/andrescamacho/starlane/internal/application/routing/queries"
)

// PlanRouteRequest is the PlanRoute request message
type PlanRouteRequest struct {
	From      string  `json:"from,omitempty"`
	To        string  `json:"to"`
	PlayerID  *int    `json:"player_id,omitempty"`
	Agent     string  `json:"agent,omitempty"`
	Ship      string  `json:"ship,omitempty"`
	Wormholes string  `json:"wormholes,omitempty"`
	JumpFuel  int     `json:"jump_fuel,omitempty"`
	JumpRange float64 `json:"jump_range,omitempty"`
}

// RouteStep is one system of a PlanRoute reply
type RouteStep struct {
	Symbol   string  `json:"symbol"`
	Days     int     `json:"days"`
	Fuel     int     `json:"fuel"`
	FuelCost int     `json:"fuel_cost"`
	Danger   float64 `json:"danger"`
}

// PlanRouteReply is the PlanRoute reply message
type PlanRouteReply struct {
	Found     bool        `json:"found"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	StartKind string      `json:"start_kind"`
	Days      int         `json:"days"`
	Fuel      int         `json:"fuel"`
	Danger    float64     `json:"danger"`
	Steps     []RouteStep `json:"steps"`
}

// ReachableSystemsRequest is the ReachableSystems request message.
// A missing max_days means no limit.
type ReachableSystemsRequest struct {
	From       string `json:"from,omitempty"`
	PlayerID   *int   `json:"player_id,omitempty"`
	Agent      string `json:"agent,omitempty"`
	MaxSystems int    `json:"max_systems,omitempty"`
	MaxDays    *int   `json:"max_days,omitempty"`
	Wormholes  string `json:"wormholes,omitempty"`
}

// ReachableSystem is one entry of a ReachableSystems reply
type ReachableSystem struct {
	Symbol string  `json:"symbol"`
	Via    string  `json:"via,omitempty"`
	Days   int     `json:"days"`
	Fuel   int     `json:"fuel"`
	Danger float64 `json:"danger"`
}

// ReachableSystemsReply is the ReachableSystems reply message
type ReachableSystemsReply struct {
	Center  string            `json:"center"`
	Systems []ReachableSystem `json:"systems"`
}

// GetSystemRequest is the GetSystem request message
type GetSystemRequest struct {
	Symbol string `json:"symbol"`
}

// WormholeExit is a wormhole traversal in a GetSystem reply
type WormholeExit struct {
	Wormhole     string `json:"wormhole"`
	To           string `json:"to"`
	AccessModule string `json:"access_module,omitempty"`
}

// GetSystemReply is the GetSystem reply message
type GetSystemReply struct {
	Symbol    string         `json:"symbol"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Danger    float64        `json:"danger"`
	JumpRange float64        `json:"jump_range"`
	Links     []string       `json:"links"`
	Wormholes []WormholeExit `json:"wormholes"`
}

// encode converts a wire message into a Struct
func encode(message interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}
	return out, nil
}

// decode fills a wire message from a Struct
func decode(in *structpb.Struct, message interface{}) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	if err := json.Unmarshal(data, message); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}

func (r *PlanRouteRequest) toQuery() *routingQueries.PlanRouteQuery {
	return &routingQueries.PlanRouteQuery{
		From:        r.From,
		To:          r.To,
		PlayerID:    r.PlayerID,
		AgentSymbol: r.Agent,
		ShipSymbol:  r.Ship,
		Wormholes:   r.Wormholes,
		JumpFuel:    r.JumpFuel,
		JumpRange:   r.JumpRange,
	}
}

func planRouteRequestFrom(q *routingQueries.PlanRouteQuery) *PlanRouteRequest {
	return &PlanRouteRequest{
		From:      q.From,
		To:        q.To,
		PlayerID:  q.PlayerID,
		Agent:     q.AgentSymbol,
		Ship:      q.ShipSymbol,
		Wormholes: q.Wormholes,
		JumpFuel:  q.JumpFuel,
		JumpRange: q.JumpRange,
	}
}

func planRouteReplyFrom(r *routingQueries.PlanRouteResponse) *PlanRouteReply {
	reply := &PlanRouteReply{
		Found:     r.Found,
		From:      r.From,
		To:        r.To,
		StartKind: r.StartKind,
		Days:      r.Days,
		Fuel:      r.Fuel,
		Danger:    r.Danger,
		Steps:     make([]RouteStep, 0, len(r.Steps)),
	}
	for _, step := range r.Steps {
		reply.Steps = append(reply.Steps, RouteStep(step))
	}
	return reply
}

func (r *PlanRouteReply) toResponse() *routingQueries.PlanRouteResponse {
	response := &routingQueries.PlanRouteResponse{
		Found:     r.Found,
		From:      r.From,
		To:        r.To,
		StartKind: r.StartKind,
		Days:      r.Days,
		Fuel:      r.Fuel,
		Danger:    r.Danger,
		Steps:     make([]routingQueries.RouteStep, 0, len(r.Steps)),
	}
	for _, step := range r.Steps {
		response.Steps = append(response.Steps, routingQueries.RouteStep(step))
	}
	return response
}

func (r *ReachableSystemsRequest) toQuery() *routingQueries.ReachableSystemsQuery {
	maxDays := -1
	if r.MaxDays != nil {
		maxDays = *r.MaxDays
	}
	return &routingQueries.ReachableSystemsQuery{
		From:        r.From,
		PlayerID:    r.PlayerID,
		AgentSymbol: r.Agent,
		MaxSystems:  r.MaxSystems,
		MaxDays:     maxDays,
		Wormholes:   r.Wormholes,
	}
}

func reachableSystemsRequestFrom(q *routingQueries.ReachableSystemsQuery) *ReachableSystemsRequest {
	request := &ReachableSystemsRequest{
		From:       q.From,
		PlayerID:   q.PlayerID,
		Agent:      q.AgentSymbol,
		MaxSystems: q.MaxSystems,
		Wormholes:  q.Wormholes,
	}
	if q.MaxDays >= 0 {
		maxDays := q.MaxDays
		request.MaxDays = &maxDays
	}
	return request
}

func reachableSystemsReplyFrom(r *routingQueries.ReachableSystemsResponse) *ReachableSystemsReply {
	reply := &ReachableSystemsReply{Center: r.Center, Systems: make([]ReachableSystem, 0, len(r.Systems))}
	for _, system := range r.Systems {
		reply.Systems = append(reply.Systems, ReachableSystem(system))
	}
	return reply
}

func (r *ReachableSystemsReply) toResponse() *routingQueries.ReachableSystemsResponse {
	response := &routingQueries.ReachableSystemsResponse{
		Center:  r.Center,
		Systems: make([]routingQueries.ReachableSystem, 0, len(r.Systems)),
	}
	for _, system := range r.Systems {
		response.Systems = append(response.Systems, routingQueries.ReachableSystem(system))
	}
	return response
}

func getSystemReplyFrom(r *routingQueries.SystemDetails) *GetSystemReply {
	reply := &GetSystemReply{
		Symbol:    r.Symbol,
		X:         r.X,
		Y:         r.Y,
		Danger:    r.Danger,
		JumpRange: r.JumpRange,
		Links:     append([]string{}, r.Links...),
		Wormholes: make([]WormholeExit, 0, len(r.Wormholes)),
	}
	for _, exit := range r.Wormholes {
		reply.Wormholes = append(reply.Wormholes, WormholeExit(exit))
	}
	return reply
}

func (r *GetSystemReply) toDetails() *routingQueries.SystemDetails {
	details := &routingQueries.SystemDetails{
		Symbol:    r.Symbol,
		X:         r.X,
		Y:         r.Y,
		Danger:    r.Danger,
		JumpRange: r.JumpRange,
		Links:     append([]string{}, r.Links...),
		Wormholes: make([]routingQueries.WormholeExit, 0, len(r.Wormholes)),
	}
	for _, exit := range r.Wormholes {
		details.Wormholes = append(details.Wormholes, routingQueries.WormholeExit(exit))
	}
	return details
}
