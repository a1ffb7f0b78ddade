package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starlane/internal/application/mediator"
	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// GetSystemQuery looks up one system of the galaxy
type GetSystemQuery struct {
	Symbol string
}

// WormholeExit is a wormhole traversal leaving a system
type WormholeExit struct {
	Wormhole     string
	To           string
	AccessModule string
}

// SystemDetails describes a system and its outgoing connections
type SystemDetails struct {
	Symbol    string
	X         float64
	Y         float64
	Danger    float64
	JumpRange float64
	Links     []string
	Wormholes []WormholeExit
}

// GetSystemHandler handles the GetSystem query
type GetSystemHandler struct {
	galaxies galaxy.Provider
}

// NewGetSystemHandler creates a new GetSystemHandler
func NewGetSystemHandler(galaxies galaxy.Provider) *GetSystemHandler {
	return &GetSystemHandler{galaxies: galaxies}
}

// Handle executes the GetSystem query
func (h *GetSystemHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetSystemQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSystemQuery")
	}
	if query.Symbol == "" {
		return nil, shared.NewValidationError("symbol", "cannot be empty")
	}

	g, err := h.galaxies.Galaxy(ctx)
	if err != nil {
		return nil, err
	}
	system, ok := g.System(query.Symbol)
	if !ok {
		return nil, shared.NewNotFoundError("system", query.Symbol)
	}

	details := &SystemDetails{
		Symbol:    system.Symbol(),
		X:         system.Position().X,
		Y:         system.Position().Y,
		Danger:    system.Danger(),
		JumpRange: system.JumpRange(),
		Links:     []string{},
		Wormholes: []WormholeExit{},
	}
	for _, link := range system.Links() {
		details.Links = append(details.Links, link.Symbol())
	}
	for _, exit := range system.WormholeLinks() {
		details.Wormholes = append(details.Wormholes, WormholeExit{
			Wormhole:     exit.Wormhole.Symbol(),
			To:           exit.To.Symbol(),
			AccessModule: exit.Wormhole.AccessModule(),
		})
	}
	return details, nil
}
