package graphics

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"voxcraft/internal/player"
	"voxcraft/internal/profiling"
)

// Overlay draws the debug text layer: FPS, position, selected block and the
// per-frame profiling breakdown.
type Overlay struct {
	font *FontRenderer

	Visible bool

	frames    int
	lastCount time.Time
	fps       int
}

// NewOverlay bakes the font atlas and prepares the text renderer.
func NewOverlay(fontPath string, width, height int) (*Overlay, error) {
	atlas, err := BuildFontAtlas(fontPath, 32)
	if err != nil {
		return nil, err
	}
	font, err := NewFontRenderer(atlas, width, height)
	if err != nil {
		return nil, err
	}
	return &Overlay{font: font, lastCount: time.Now()}, nil
}

// SetViewport forwards a window resize to the text projection.
func (o *Overlay) SetViewport(width, height int) {
	o.font.SetViewport(width, height)
}

// Toggle flips overlay visibility.
func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
}

// Render draws the overlay for this frame. The FPS counter always ticks so
// the value is accurate the moment the overlay is opened.
func (o *Overlay) Render(p *player.Player) {
	o.frames++
	if since := time.Since(o.lastCount); since >= time.Second {
		o.fps = int(float64(o.frames) / since.Seconds())
		o.frames = 0
		o.lastCount = time.Now()
	}

	if !o.Visible {
		return
	}

	lines := make([]string, 0, 16)
	lines = append(lines, fmt.Sprintf("FPS: %d", o.fps))
	lines = append(lines, fmt.Sprintf("Pos: %.2f, %.2f, %.2f", p.Position.X(), p.Position.Y(), p.Position.Z()))
	lines = append(lines, fmt.Sprintf("Block: %s", p.SelectedBlockName()))

	if top := profiling.TopN(8); top != "" {
		lines = append(lines, "")
		for _, line := range strings.Split(top, ", ") {
			if line != "" {
				lines = append(lines, line)
			}
		}
	}

	o.font.RenderLines(lines, 10, 30, 18, 0.4, mgl32.Vec3{1, 1, 1})
}
