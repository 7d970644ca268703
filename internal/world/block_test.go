package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxcraft/internal/world"
)

const maxFaceSlot = 1<<17 - 2

func TestFaceSlotRoundTrip(t *testing.T) {
	for _, f := range world.Faces {
		var b world.ChunkBlock
		for v := 0; v <= maxFaceSlot; v += 257 {
			b.SetFace(f, v)
			got, ok := b.Face(f)
			require.True(t, ok, "face %s value %d", f, v)
			require.Equal(t, v, got, "face %s", f)
		}
		// Boundary values exactly.
		for _, v := range []int{0, 1, 1<<16 - 1, 1 << 16, maxFaceSlot} {
			b.SetFace(f, v)
			got, ok := b.Face(f)
			require.True(t, ok)
			require.Equal(t, v, got)
		}
	}
}

func TestFaceSlotAbsentByDefault(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{})
	for _, f := range world.Faces {
		if _, ok := c.Blocks[0].Face(f); ok {
			t.Errorf("fresh block claims a %s face", f)
		}
	}
}

func TestFaceSlotClear(t *testing.T) {
	var b world.ChunkBlock
	for _, f := range world.Faces {
		b.SetFace(f, 12345)
		b.ClearFace(f)
		_, ok := b.Face(f)
		assert.False(t, ok, "cleared face %s still present", f)
	}
}

// Writing one direction must not disturb the other five, in either the
// 16-bit words or the packed high bits.
func TestFaceSlotIndependence(t *testing.T) {
	var b world.ChunkBlock
	values := map[world.BlockFace]int{
		world.FaceBack:   0,
		world.FaceFront:  1 << 16,
		world.FaceRight:  0xffff,
		world.FaceLeft:   0x1fffe,
		world.FaceTop:    42,
		world.FaceBottom: 1<<16 | 7,
	}
	for f, v := range values {
		b.SetFace(f, v)
	}
	for f, v := range values {
		got, ok := b.Face(f)
		require.True(t, ok, "face %s", f)
		require.Equal(t, v, got, "face %s", f)
	}

	// Clearing one face leaves the rest readable.
	b.ClearFace(world.FaceTop)
	for f, v := range values {
		if f == world.FaceTop {
			_, ok := b.Face(f)
			require.False(t, ok)
			continue
		}
		got, ok := b.Face(f)
		require.True(t, ok, "face %s after clear", f)
		require.Equal(t, v, got, "face %s after clear", f)
	}
}

func TestFaceSlotRejectsSentinelRange(t *testing.T) {
	var b world.ChunkBlock
	assert.Panics(t, func() { b.SetFace(world.FaceTop, 1<<17-1) })
	assert.Panics(t, func() { b.SetFace(world.FaceTop, 1<<17) })
	assert.Panics(t, func() { b.SetFace(world.FaceTop, -1) })
}
