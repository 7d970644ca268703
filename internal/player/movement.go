package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxcraft/internal/input"
)

const sprintMultiplier = 2.5

// Update advances movement for one frame and refreshes the hover raycast.
func (p *Player) Update(im *input.Manager, dt float64) {
	yaw := mgl32.DegToRad(float32(p.CamYaw))
	// Horizontal movement ignores pitch, Q/E style vertical flight is separate
	forward := mgl32.Vec3{
		float32(math.Cos(float64(yaw))),
		0,
		float32(math.Sin(float64(yaw))),
	}
	right := forward.Cross(mgl32.Vec3{0, 1, 0})

	var move mgl32.Vec3
	if im.IsActive(input.ActionMoveForward) {
		move = move.Add(forward)
	}
	if im.IsActive(input.ActionMoveBackward) {
		move = move.Sub(forward)
	}
	if im.IsActive(input.ActionMoveRight) {
		move = move.Add(right)
	}
	if im.IsActive(input.ActionMoveLeft) {
		move = move.Sub(right)
	}
	if im.IsActive(input.ActionFlyUp) {
		move = move.Add(mgl32.Vec3{0, 1, 0})
	}
	if im.IsActive(input.ActionFlyDown) {
		move = move.Sub(mgl32.Vec3{0, 1, 0})
	}

	if move.LenSqr() > 0 {
		speed := p.speed
		if im.IsActive(input.ActionSprint) {
			speed *= sprintMultiplier
		}
		p.Position = p.Position.Add(move.Normalize().Mul(speed * float32(dt)))
	}

	p.updateHover()
}
