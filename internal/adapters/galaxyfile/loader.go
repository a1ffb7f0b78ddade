package galaxyfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/starlane/internal/domain/galaxy"
	"github.com/andrescamacho/starlane/internal/domain/navigation"
	"github.com/andrescamacho/starlane/internal/domain/player"
	"github.com/andrescamacho/starlane/internal/domain/shared"
)

// Content is a galaxy file turned into domain objects
type Content struct {
	Galaxy  *galaxy.Galaxy
	Players []*player.Player
	Ships   []*navigation.Ship
}

// Load reads and builds the galaxy file at path
func Load(path string) (*Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open galaxy file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	content, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return content, nil
}

// Parse decodes a YAML document. Unknown keys are rejected.
func Parse(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, shared.NewValidationError("systems", "galaxy file is empty")
		}
		return nil, fmt.Errorf("failed to parse galaxy file: %w", err)
	}
	return &doc, nil
}

// Build turns the document into a galaxy, players and ships
func (d *Document) Build() (*Content, error) {
	g, err := d.buildGalaxy()
	if err != nil {
		return nil, err
	}

	players := make([]*player.Player, 0, len(d.Players))
	for _, entry := range d.Players {
		p, err := entry.build(g)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", entry.ID, err)
		}
		players = append(players, p)
	}

	ships := make([]*navigation.Ship, 0, len(d.Ships))
	for _, entry := range d.Ships {
		ship, err := entry.build()
		if err != nil {
			return nil, fmt.Errorf("ship %s: %w", entry.Symbol, err)
		}
		ships = append(ships, ship)
	}

	return &Content{Galaxy: g, Players: players, Ships: ships}, nil
}

func (d *Document) buildGalaxy() (*galaxy.Galaxy, error) {
	if len(d.Systems) == 0 {
		return nil, shared.NewValidationError("systems", "at least one system is required")
	}

	g := galaxy.New()
	for _, entry := range d.Systems {
		position, err := shared.NewPosition(entry.X, entry.Y)
		if err != nil {
			return nil, fmt.Errorf("system %q: %w", entry.Symbol, err)
		}
		if _, err := g.AddSystem(entry.Symbol, position, entry.Danger); err != nil {
			return nil, fmt.Errorf("system %q: %w", entry.Symbol, err)
		}
		if entry.JumpRange != 0 {
			if err := g.SetJumpRange(entry.Symbol, entry.JumpRange); err != nil {
				return nil, fmt.Errorf("system %q: %w", entry.Symbol, err)
			}
		}
	}

	for i, lane := range d.Hyperlanes {
		if len(lane) != 2 {
			return nil, shared.NewValidationError(fmt.Sprintf("hyperlanes[%d]", i), "must name exactly two systems")
		}
		if err := g.AddHyperlane(lane[0], lane[1]); err != nil {
			return nil, fmt.Errorf("hyperlane %s-%s: %w", lane[0], lane[1], err)
		}
	}

	for i, link := range d.Links {
		if len(link) != 2 {
			return nil, shared.NewValidationError(fmt.Sprintf("links[%d]", i), "must name exactly two systems")
		}
		if err := g.AddLink(link[0], link[1]); err != nil {
			return nil, fmt.Errorf("link %s->%s: %w", link[0], link[1], err)
		}
	}

	for _, entry := range d.Wormholes {
		if _, err := g.AddWormhole(entry.Symbol, entry.AccessModule, entry.Stops...); err != nil {
			return nil, fmt.Errorf("wormhole %q: %w", entry.Symbol, err)
		}
	}

	return g, nil
}

func (e PlayerEntry) build(g *galaxy.Galaxy) (*player.Player, error) {
	p, err := player.NewPlayer(e.ID, e.Agent)
	if err != nil {
		return nil, err
	}
	p.FlagshipSymbol = e.Flagship

	for _, symbol := range e.Visited {
		system, ok := g.System(symbol)
		if !ok {
			return nil, shared.NewNotFoundError("system", symbol)
		}
		p.Visit(system)
	}
	for _, symbol := range e.Seen {
		p.MarkSeen(symbol)
	}
	return p, nil
}

func (e ShipEntry) build() (*navigation.Ship, error) {
	modules := make([]*navigation.ShipModule, 0, len(e.Modules))
	for _, entry := range e.Modules {
		module, err := navigation.NewShipModule(entry.Symbol, navigation.ParseModuleKind(entry.Kind, entry.Symbol), entry.Fuel, entry.Range)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}

	ship, err := navigation.NewShip(e.Symbol, e.PlayerID, e.System, modules)
	if err != nil {
		return nil, err
	}
	if e.HyperspaceTarget != "" {
		if err := ship.EnterHyperspace(e.HyperspaceTarget); err != nil {
			return nil, err
		}
	}
	return ship, nil
}
