package ui

import (
	"fmt"

	"snake-arcade/game/types"
	"snake-arcade/stats"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding    = 10 // Padding around game area
	scoreboardHeight = 30
	statsPanelWidth  = 180
	fontSize         = 18
	lineHeight       = 22
	buttonWidth      = 120
	buttonHeight     = 40
)

type cell struct {
	p types.Point
	c types.Color
}

// Renderer is the raylib window. The engine draws into a cell buffer at tick
// rate; Draw repaints that buffer every frame.
type Renderer struct {
	cellSize int32

	canvasWidth  int32
	canvasHeight int32
	offsetX      int32
	offsetY      int32

	cells          []cell
	scoreLine      string
	restartVisible bool
}

func NewRenderer(grid types.Grid, cellSize int) *Renderer {
	r := &Renderer{
		cellSize:     int32(cellSize),
		canvasWidth:  int32(grid.Width * cellSize),
		canvasHeight: int32(grid.Height * cellSize),
		offsetX:      borderPadding,
		offsetY:      borderPadding,
		scoreLine:    scoreboardText(0, 0),
	}
	return r
}

// WindowSize returns the window dimensions needed for the canvas, the
// scoreboard and the stats panel.
func (r *Renderer) WindowSize() (int32, int32) {
	width := r.canvasWidth + borderPadding*3 + statsPanelWidth
	height := r.canvasHeight + borderPadding*3 + scoreboardHeight
	return width, height
}

func (r *Renderer) Clear() {
	r.cells = r.cells[:0]
}

func (r *Renderer) DrawCell(p types.Point, c types.Color) {
	r.cells = append(r.cells, cell{p: p, c: c})
}

func (r *Renderer) ShowRestartControl() {
	r.restartVisible = true
}

func (r *Renderer) HideRestartControl() {
	r.restartVisible = false
}

func (r *Renderer) UpdateScoreboard(score, highScore int) {
	r.scoreLine = scoreboardText(score, highScore)
}

// ScoreLine returns the text currently shown on the scoreboard.
func (r *Renderer) ScoreLine() string {
	return r.scoreLine
}

func (r *Renderer) RestartVisible() bool {
	return r.restartVisible
}

func scoreboardText(score, highScore int) string {
	return fmt.Sprintf("Score: %d | High Score: %d", score, highScore)
}

func (r *Renderer) Draw(summary stats.Summary) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	// Draw grid background
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.canvasWidth+2, r.canvasHeight+2, rl.DarkGray)
	rl.DrawRectangle(r.offsetX, r.offsetY, r.canvasWidth, r.canvasHeight, rl.Black)

	for _, c := range r.cells {
		rl.DrawRectangle(
			r.offsetX+int32(c.p.X)*r.cellSize,
			r.offsetY+int32(c.p.Y)*r.cellSize,
			r.cellSize, r.cellSize,
			rl.NewColor(c.c.R, c.c.G, c.c.B, 255))
	}

	rl.DrawText(r.scoreLine, r.offsetX, r.offsetY+r.canvasHeight+borderPadding, fontSize, rl.White)

	r.drawStatsPanel(summary)

	if r.restartVisible {
		r.drawRestartButton()
	}

	rl.EndDrawing()
}

func (r *Renderer) drawStatsPanel(summary stats.Summary) {
	statsX := r.offsetX + r.canvasWidth + borderPadding
	statsY := r.offsetY

	rl.DrawRectangle(statsX, statsY, statsPanelWidth, r.canvasHeight, rl.DarkGray)
	statsX += 8
	statsY += 8

	lines := []struct {
		text  string
		color rl.Color
	}{
		{"Stats:", rl.White},
		{fmt.Sprintf("Games: %d", summary.GamesPlayed), rl.White},
		{fmt.Sprintf("Avg Score: %.1f", summary.AverageScore), rl.Green},
		{fmt.Sprintf("Max Score: %d", summary.MaxScore), rl.Green},
		{fmt.Sprintf("Avg Duration: %.1fs", summary.AverageDuration.Seconds()), rl.Purple},
	}
	for _, l := range lines {
		rl.DrawText(l.text, statsX, statsY, fontSize, l.color)
		statsY += lineHeight
	}
}

func (r *Renderer) restartButton() rl.Rectangle {
	return rl.NewRectangle(
		float32(r.offsetX+(r.canvasWidth-buttonWidth)/2),
		float32(r.offsetY+(r.canvasHeight-buttonHeight)/2),
		buttonWidth, buttonHeight)
}

func (r *Renderer) drawRestartButton() {
	btn := r.restartButton()
	color := rl.Gray
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), btn) {
		color = rl.LightGray
	}
	rl.DrawRectangleRec(btn, color)

	label := "Restart"
	textWidth := rl.MeasureText(label, fontSize)
	rl.DrawText(label,
		int32(btn.X)+(buttonWidth-textWidth)/2,
		int32(btn.Y)+(buttonHeight-fontSize)/2,
		fontSize, rl.Black)

	hint := "R to restart, C to copy score"
	hintWidth := rl.MeasureText(hint, fontSize-4)
	rl.DrawText(hint,
		r.offsetX+(r.canvasWidth-hintWidth)/2,
		int32(btn.Y)+buttonHeight+8,
		fontSize-4, rl.White)
}

// RestartRequested reports whether the restart control was activated this
// frame, by click or by key.
func (r *Renderer) RestartRequested() bool {
	if !r.restartVisible {
		return false
	}
	if rl.IsKeyPressed(rl.KeyR) || rl.IsKeyPressed(rl.KeyEnter) {
		return true
	}
	return rl.IsMouseButtonPressed(rl.MouseButtonLeft) &&
		rl.CheckCollisionPointRec(rl.GetMousePosition(), r.restartButton())
}
