// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/bitecs/ecs"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Host implements ebiten.Game around a Scheduler. Each Update runs one
// scheduler frame between the ImGui BeginFrame and EndFrame calls, so systems
// and deferred render functions may issue ImGui widgets.
type Host[C ecs.Component, M, F ecs.Bits] struct {
	Backend   ImguiBackend
	Scheduler *ecs.Scheduler[C, M, F]

	// DrawWorld draws game content before the ImGui overlay. It may be nil.
	DrawWorld func(screen *ebiten.Image)

	tps float64
}

// NewHost creates a Host with a fresh backend window.
func NewHost[C ecs.Component, M, F ecs.Bits](title string, width, height int, scheduler *ecs.Scheduler[C, M, F]) *Host[C, M, F] {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)

	return &Host[C, M, F]{
		Backend:   ImguiBackend{EbitenBackend: backend},
		Scheduler: scheduler,
		tps:       float64(ebiten.DefaultTPS),
	}
}

func (h *Host[C, M, F]) Update() error {
	h.Backend.BeginFrame()
	h.Scheduler.Once(1.0 / h.tps)
	h.Backend.EndFrame()
	return nil
}

func (h *Host[C, M, F]) Draw(screen *ebiten.Image) {
	if h.DrawWorld != nil {
		h.DrawWorld(screen)
	}
	h.Backend.Draw(screen)
}

func (h *Host[C, M, F]) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.Backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run starts the ebiten game loop and blocks until the window closes.
func (h *Host[C, M, F]) Run() error {
	return ebiten.RunGame(h)
}
