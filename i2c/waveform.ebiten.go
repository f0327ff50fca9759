package i2c

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

var emptyImage = ebiten.NewImage(2, 2)

func init() {
	emptyImage.Fill(color.RGBA{255, 255, 255, 255})
}

var (
	sclColor = color.RGBA{R: 255, G: 196, B: 0, A: 255}
	sdaColor = color.RGBA{R: 0, G: 196, B: 255, A: 255}
)

// An Ebitengine viewer that draws the waveforms captured by a Probe as
// two square-wave traces, clock on top, data below
type WaveformViewer struct {
	Probe  *Probe
	Width  int
	Height int

	vertices []ebiten.Vertex
	indices  []uint16
}

// Returns a new Ebitengine viewer for this probe
func (p *Probe) NewWaveformViewer() *WaveformViewer {
	return &WaveformViewer{
		Probe:  p,
		Width:  1024,
		Height: 320,
	}
}

// Opens a window and runs the viewer until it is closed
func (v *WaveformViewer) Run() error {
	ebiten.SetWindowSize(v.Width, v.Height)
	ebiten.SetWindowTitle("i2c waveform")
	return ebiten.RunGame(v)
}

func (v *WaveformViewer) Update() error {
	return nil
}

func (v *WaveformViewer) Draw(screen *ebiten.Image) {
	v.vertices = v.vertices[:0]
	v.indices = v.indices[:0]

	n := v.Probe.Length()
	if n < 2 {
		return
	}

	h := float32(v.Height) / 2
	v.pushTrace(v.Probe.SCL, 0, h, sclColor)
	v.pushTrace(v.Probe.SDA, h, h, sdaColor)

	op := &ebiten.DrawTrianglesOptions{}
	screen.DrawTriangles(v.vertices, v.indices, emptyImage, op)
}

func (v *WaveformViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.Width, v.Height
}

// Appends one channel as horizontal runs plus vertical connectors at
// every edge
func (v *WaveformViewer) pushTrace(samples []bool, top, h float32, clr color.RGBA) {
	const thickness = 2
	const margin = 12

	yHi := top + margin
	yLo := top + h - margin
	dx := float32(v.Width) / float32(len(samples))

	levelY := func(level bool) float32 {
		if level {
			return yHi
		}
		return yLo
	}

	runStart := 0
	for i := 1; i <= len(samples); i++ {
		if i < len(samples) && samples[i] == samples[runStart] {
			continue
		}

		// horizontal run [runStart, i)
		y := levelY(samples[runStart])
		v.pushRect(float32(runStart)*dx, y, float32(i)*dx, y+thickness, clr)

		// vertical connector at the edge
		if i < len(samples) {
			x := float32(i) * dx
			v.pushRect(x, yHi, x+thickness, yLo+thickness, clr)
			runStart = i
		}
	}
}

// Appends one solid rectangle to the vertex buffer
func (v *WaveformViewer) pushRect(x0, y0, x1, y1 float32, clr color.RGBA) {
	base := uint16(len(v.vertices))

	for _, pos := range [4][2]float32{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		v.vertices = append(v.vertices, ebiten.Vertex{
			DstX:   pos[0],
			DstY:   pos[1],
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(clr.R) / 255,
			ColorG: float32(clr.G) / 255,
			ColorB: float32(clr.B) / 255,
			ColorA: 1,
		})
	}

	v.indices = append(v.indices,
		base, base+1, base+2,
		base+1, base+3, base+2,
	)
}
