// Package player implements the free-flying camera and block interaction.
package player

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxcraft/internal/config"
	"voxcraft/internal/logger"
	"voxcraft/internal/world"
)

// Player is a flying camera with a block palette. It owns no physics; it
// moves freely and interacts with the world through raycasts.
type Player struct {
	World    *world.World
	Position mgl32.Vec3

	CamYaw   float64
	CamPitch float64

	// Mouse look state
	FirstMouse bool
	LastMouseX float64
	LastMouseY float64

	speed       float32
	sensitivity float64
	reach       float32

	// Block the crosshair ray currently rests on
	hovered    world.RayHit
	hasHovered bool

	palette []world.BlockType
	slot    int
}

// New creates a player at the given spawn position. The palette holds every
// placeable block from the registry, selectable via hotbar slots.
func New(w *world.World, cfg config.PlayerConfig, spawn mgl32.Vec3) *Player {
	p := &Player{
		World:       w,
		Position:    spawn,
		CamYaw:      -90,
		FirstMouse:  true,
		speed:       cfg.Speed,
		sensitivity: float64(cfg.Sensitivity),
		reach:       cfg.Reach,
	}

	for id := world.BlockType(0); int(id) < w.Registry.Len(); id++ {
		if w.Registry.Transparent(id) {
			continue
		}
		p.palette = append(p.palette, id)
	}
	if len(p.palette) == 0 {
		logger.Warn("player: registry has no placeable blocks")
	}
	return p
}

// SelectSlot picks a palette slot for subsequent placements.
func (p *Player) SelectSlot(slot int) {
	if slot >= 0 && slot < len(p.palette) {
		p.slot = slot
	}
}

// SelectedBlock returns the block type the player would place.
func (p *Player) SelectedBlock() world.BlockType {
	if len(p.palette) == 0 {
		return world.BlockTypeAir
	}
	return p.palette[p.slot]
}

// SelectedBlockName resolves the selected palette entry for the HUD.
func (p *Player) SelectedBlockName() string {
	return p.World.Registry.Data(p.SelectedBlock()).Name
}

// Hovered returns the block under the crosshair, if any.
func (p *Player) Hovered() (world.RayHit, bool) {
	return p.hovered, p.hasHovered
}

// updateHover refreshes the crosshair raycast.
func (p *Player) updateHover() {
	p.hovered, p.hasHovered = p.World.Raycast(p.Position, p.FrontVector(), p.reach)
}
