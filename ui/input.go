package ui

import (
	"snake-arcade/game/types"

	"github.com/atotto/clipboard"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var directionKeys = []struct {
	key int32
	dir types.Direction
}{
	{rl.KeyLeft, types.Left},
	{rl.KeyUp, types.Up},
	{rl.KeyRight, types.Right},
	{rl.KeyDown, types.Down},
	{rl.KeyA, types.Left},
	{rl.KeyW, types.Up},
	{rl.KeyD, types.Right},
	{rl.KeyS, types.Down},
}

// PressedDirections returns the direction keys pressed since the last frame.
func PressedDirections() []types.Direction {
	var dirs []types.Direction
	for _, k := range directionKeys {
		if rl.IsKeyPressed(k.key) {
			dirs = append(dirs, k.dir)
		}
	}
	return dirs
}

// CopyRequested reports whether the copy-score key was pressed.
func CopyRequested() bool {
	return rl.IsKeyPressed(rl.KeyC)
}

// CopyToClipboard puts text on the system clipboard.
func CopyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}
