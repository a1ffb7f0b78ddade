package galaxyfile

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/navigation"
	"github.com/andrescamacho/starlane/internal/domain/player"
)

// Export describes the given galaxy, players and ships as a document.
//
// Hyperlanes are written as one-way links in each system's link order, so
// loading the file again rebuilds the same link order and the same routes.
func Export(g *galaxy.Galaxy, players []*player.Player, ships []*navigation.Ship) *Document {
	doc := &Document{}

	for _, system := range g.Systems() {
		doc.Systems = append(doc.Systems, SystemEntry{
			Symbol:    system.Symbol(),
			X:         system.Position().X,
			Y:         system.Position().Y,
			Danger:    system.Danger(),
			JumpRange: system.JumpRange(),
		})
	}
	for _, link := range g.Links() {
		doc.Links = append(doc.Links, []string{link.From, link.To})
	}
	for _, wormhole := range g.Wormholes() {
		entry := WormholeEntry{Symbol: wormhole.Symbol(), AccessModule: wormhole.AccessModule()}
		for _, stop := range wormhole.Stops() {
			entry.Stops = append(entry.Stops, stop.Symbol())
		}
		doc.Wormholes = append(doc.Wormholes, entry)
	}

	for _, p := range players {
		entry := PlayerEntry{
			ID:       p.ID,
			Agent:    p.AgentSymbol,
			Flagship: p.FlagshipSymbol,
			Visited:  p.VisitedSystems(),
		}
		// Visited systems are implied; only list what was seen without a visit
		for _, symbol := range p.SeenSystems() {
			if !p.HasVisited(symbol) {
				entry.Seen = append(entry.Seen, symbol)
			}
		}
		doc.Players = append(doc.Players, entry)
	}

	for _, ship := range ships {
		entry := ShipEntry{
			Symbol:   ship.ShipSymbol(),
			PlayerID: ship.PlayerID(),
			System:   ship.SystemSymbol(),
		}
		if target, ok := ship.HyperspaceTarget(); ok {
			entry.HyperspaceTarget = target
		}
		for _, module := range ship.Modules() {
			entry.Modules = append(entry.Modules, ModuleEntry{
				Symbol: module.Symbol(),
				Kind:   string(module.Kind()),
				Fuel:   module.Fuel(),
				Range:  module.Range(),
			})
		}
		doc.Ships = append(doc.Ships, entry)
	}

	return doc
}

// Write encodes doc as YAML
func Write(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write galaxy file: %w", err)
	}
	return enc.Close()
}
