package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"voxcraft/internal/gpu"
	"voxcraft/internal/logger"
	"voxcraft/internal/world"
)

// BreakBlock removes the block under the crosshair.
func (p *Player) BreakBlock(dev gpu.Device) {
	if !p.hasHovered {
		return
	}
	hit := p.hovered
	if err := p.World.PlaceBlock(dev, hit.Chunk, hit.Index, world.BlockTypeAir, world.FaceFront); err != nil {
		logger.Error("break block", zap.Error(err))
		return
	}
	p.updateHover()
}

// PlaceBlock puts the selected block into the cell adjacent to the hovered
// face. Directional blocks are oriented to face the player.
func (p *Player) PlaceBlock(dev gpu.Device) {
	if !p.hasHovered {
		return
	}
	id := p.SelectedBlock()
	if id == world.BlockTypeAir {
		return
	}

	hit := p.hovered
	x, y, z := world.BlockIndexToPos(hit.Index)
	origin := hit.Chunk.Origin()
	n := hit.Face.Normal()
	wx := int(origin.X()) + x + int(n.X())
	wy := int(origin.Y()) + y + int(n.Y())
	wz := int(origin.Z()) + z + int(n.Z())

	target, idx, ok := p.World.Locate(wx, wy, wz)
	if !ok {
		return
	}
	if target.Blocks[idx].ID != world.BlockTypeAir {
		return
	}
	if p.occupies(wx, wy, wz) {
		return
	}

	if err := p.World.PlaceBlock(dev, target, idx, id, p.facingDirection()); err != nil {
		logger.Error("place block", zap.Error(err))
		return
	}
	p.updateHover()
}

// occupies reports whether the camera sits inside the given cell.
func (p *Player) occupies(wx, wy, wz int) bool {
	return int(math.Floor(float64(p.Position.X()))) == wx &&
		int(math.Floor(float64(p.Position.Y()))) == wy &&
		int(math.Floor(float64(p.Position.Z()))) == wz
}

// facingDirection is the horizontal orientation a placed block gets: its
// front turned towards the player.
func (p *Player) facingDirection() world.BlockFace {
	yaw := mgl32.DegToRad(float32(p.CamYaw))
	cx := math.Cos(float64(yaw))
	sz := math.Sin(float64(yaw))

	var look world.BlockFace
	if math.Abs(cx) >= math.Abs(sz) {
		look = world.FaceRight
		if cx < 0 {
			look = world.FaceLeft
		}
	} else {
		look = world.FaceBack
		if sz < 0 {
			look = world.FaceFront
		}
	}
	return look.Flip()
}
