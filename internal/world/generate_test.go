package world_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"voxcraft/internal/world"
)

func newTestGenerator(t *testing.T) (*world.Generator, *world.BlockRegistry) {
	t.Helper()
	reg := world.DefaultRegistry()
	gen, err := world.NewGenerator(reg)
	require.NoError(t, err)
	return gen, reg
}

func TestGenerateChunkDeterministic(t *testing.T) {
	gen, _ := newTestGenerator(t)

	a := gen.GenerateChunk(world.ChunkCoord{X: 3, Z: -2})
	b := gen.GenerateChunk(world.ChunkCoord{X: 3, Z: -2})
	for i := range a.Blocks {
		require.Equal(t, a.Blocks[i].ID, b.Blocks[i].ID, "block %d", i)
		require.Equal(t, a.Blocks[i].Dir, b.Blocks[i].Dir, "block %d", i)
	}
}

func TestGenerateChunkColumnBands(t *testing.T) {
	gen, reg := newTestGenerator(t)
	stone := mustLookup(t, reg, "cobblestone")
	dirt := mustLookup(t, reg, "dirt")
	grass := mustLookup(t, reg, "grass")

	c := gen.GenerateChunk(world.ChunkCoord{})
	for z := 0; z < world.ChunkSize; z++ {
		for x := 0; x < world.ChunkSize; x++ {
			surface := gen.SurfaceHeight(x, z)
			require.Greater(t, surface, 0, "column (%d,%d)", x, z)
			require.LessOrEqual(t, surface, world.ChunkSize, "column (%d,%d)", x, z)

			for y := 0; y < world.ChunkSize; y++ {
				id := c.Blocks[world.BlockPosToIndex(x, y, z)].ID
				var want world.BlockType
				switch {
				case y < surface-6:
					want = stone
				case y < surface-1:
					want = dirt
				case y == surface-1:
					want = grass
				default:
					want = world.BlockTypeAir
				}
				require.Equal(t, want, id, "column (%d,%d) y=%d surface=%d", x, z, y, surface)
			}
		}
	}
}

// Columns continue seamlessly across chunk borders: the chunk above the
// origin chunk must be all air wherever the surface sits below it, and the
// chunk below all stone.
func TestGenerateChunkVerticalStacking(t *testing.T) {
	gen, reg := newTestGenerator(t)
	stone := mustLookup(t, reg, "cobblestone")

	above := gen.GenerateChunk(world.ChunkCoord{Y: 1})
	for i := range above.Blocks {
		require.Equal(t, world.BlockTypeAir, above.Blocks[i].ID, "block %d", i)
	}

	below := gen.GenerateChunk(world.ChunkCoord{Y: -1})
	for i := range below.Blocks {
		require.Equal(t, stone, below.Blocks[i].ID, "block %d", i)
	}
}

func TestGeneratedBlocksHaveHorizontalOrientation(t *testing.T) {
	gen, _ := newTestGenerator(t)
	c := gen.GenerateChunk(world.ChunkCoord{})
	for i := range c.Blocks {
		if c.Blocks[i].ID == world.BlockTypeAir {
			continue
		}
		require.Less(t, uint8(c.Blocks[i].Dir), uint8(4), "block %d", i)
	}
}

func TestNewGeneratorRequiresTerrainBlocks(t *testing.T) {
	reg := world.NewBlockRegistry()
	_, err := world.NewGenerator(reg)
	require.Error(t, err)
}
