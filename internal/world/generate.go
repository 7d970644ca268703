package world

import (
	"fmt"

	"github.com/aquilax/go-perlin"
)

const (
	terrainSeed  = 1309
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
	noiseScale   = 0.02
	surfaceLevel = 16
	surfaceAmp   = 5.0
	soilDepth    = 6
)

// Generator fills chunks with height-band terrain: stone below, a soil
// layer, grass on the surface. The surface height varies with Perlin noise
// seeded from a fixed seed, so generation is a pure function of position.
type Generator struct {
	reg   *BlockRegistry
	noise *perlin.Perlin

	stone, dirt, grass BlockType
}

// NewGenerator resolves the terrain block types against the registry.
func NewGenerator(reg *BlockRegistry) (*Generator, error) {
	g := &Generator{
		reg:   reg,
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, terrainSeed),
	}
	var err error
	if g.stone, err = reg.Lookup("cobblestone"); err != nil {
		return nil, fmt.Errorf("terrain generator: %w", err)
	}
	if g.dirt, err = reg.Lookup("dirt"); err != nil {
		return nil, fmt.Errorf("terrain generator: %w", err)
	}
	if g.grass, err = reg.Lookup("grass"); err != nil {
		return nil, fmt.Errorf("terrain generator: %w", err)
	}
	return g, nil
}

// SurfaceHeight returns the terrain height at a world-space column.
func (g *Generator) SurfaceHeight(wx, wz int) int {
	n := g.noise.Noise2D(float64(wx)*noiseScale, float64(wz)*noiseScale)
	return surfaceLevel + int(surfaceAmp*n)
}

// GenerateChunk fills all cells of a new chunk at the given coordinate.
func (g *Generator) GenerateChunk(pos ChunkCoord) *Chunk {
	c := NewChunk(pos)

	for z := 0; z < ChunkSize; z++ {
		for x := 0; x < ChunkSize; x++ {
			wx := pos.X*ChunkSize + x
			wz := pos.Z*ChunkSize + z
			surface := g.SurfaceHeight(wx, wz)

			for y := 0; y < ChunkSize; y++ {
				wy := pos.Y*ChunkSize + y

				var id BlockType
				switch {
				case wy < surface-soilDepth:
					id = g.stone
				case wy < surface-1:
					id = g.dirt
				case wy == surface-1:
					id = g.grass
				default:
					continue // air, already zero
				}

				block := &c.Blocks[BlockPosToIndex(x, y, z)]
				block.ID = id
				block.Dir = orientationAt(wx, wy, wz)
			}
		}
	}
	return c
}

// orientationAt derives one of the four horizontal orientations from the
// block position, keeping generation deterministic.
func orientationAt(x, y, z int) BlockFace {
	h := uint(x)*0x9e3779b1 ^ uint(y)*0x85ebca77 ^ uint(z)*0xc2b2ae3d
	return BlockFace(h>>7) & 3
}
