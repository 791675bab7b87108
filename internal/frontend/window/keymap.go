//go:build !headless

package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/vm"
)

// keyMap maps every keypad key to the keyboard keys that press it:
// the digit row, the numpad and the letters A-F.
var keyMap = [vm.KeyCount][]ebiten.Key{
	0x0: {ebiten.KeyDigit0, ebiten.KeyNumpad0},
	0x1: {ebiten.KeyDigit1, ebiten.KeyNumpad1},
	0x2: {ebiten.KeyDigit2, ebiten.KeyNumpad2},
	0x3: {ebiten.KeyDigit3, ebiten.KeyNumpad3},
	0x4: {ebiten.KeyDigit4, ebiten.KeyNumpad4},
	0x5: {ebiten.KeyDigit5, ebiten.KeyNumpad5},
	0x6: {ebiten.KeyDigit6, ebiten.KeyNumpad6},
	0x7: {ebiten.KeyDigit7, ebiten.KeyNumpad7},
	0x8: {ebiten.KeyDigit8, ebiten.KeyNumpad8},
	0x9: {ebiten.KeyDigit9, ebiten.KeyNumpad9},
	0xA: {ebiten.KeyA},
	0xB: {ebiten.KeyB},
	0xC: {ebiten.KeyC},
	0xD: {ebiten.KeyD},
	0xE: {ebiten.KeyE},
	0xF: {ebiten.KeyF},
}

// Keyboard keys that change the clock speed.
var (
	fasterKeys = []ebiten.Key{ebiten.KeyEqual, ebiten.KeyNumpadAdd}
	slowerKeys = []ebiten.Key{ebiten.KeyMinus, ebiten.KeyNumpadSubtract}
)

func anyKeyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func anyKeyJustPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}
