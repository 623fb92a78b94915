package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/fractalview"
)

// keyboard turns held keys into flight controls. The pause key is latched
// once per frame and consumed by the first poll, so a frame that runs several
// ticks toggles pause only once.
type keyboard struct {
	pauseEdge bool
}

// latch records key-down edges for this frame. Call once per Update.
func (k *keyboard) latch() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		k.pauseEdge = true
	}
}

func (k *keyboard) poll() fractalview.Controls {
	c := fractalview.Controls{
		Up:          anyPressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Left:        anyPressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		Down:        anyPressed(ebiten.KeyS, ebiten.KeyArrowDown),
		Right:       anyPressed(ebiten.KeyD, ebiten.KeyArrowRight),
		Accelerate:  ebiten.IsKeyPressed(ebiten.KeyK),
		Decelerate:  ebiten.IsKeyPressed(ebiten.KeyJ),
		ZoomIn:      ebiten.IsKeyPressed(ebiten.KeyE),
		ZoomOut:     ebiten.IsKeyPressed(ebiten.KeyQ),
		PauseToggle: k.pauseEdge,
	}
	k.pauseEdge = false
	return c
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// commands are the discrete, once-per-press actions.
type commands struct {
	switchKind  bool
	cycleColour bool
	home        bool
	screenshot  bool
	quit        bool
}

func readCommands() commands {
	return commands{
		switchKind:  inpututil.IsKeyJustPressed(ebiten.KeyTab),
		cycleColour: inpututil.IsKeyJustPressed(ebiten.KeyC),
		home:        inpututil.IsKeyJustPressed(ebiten.KeyHome),
		screenshot:  inpututil.IsKeyJustPressed(ebiten.KeyF12),
		quit:        inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}
