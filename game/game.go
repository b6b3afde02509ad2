package game

import (
	"time"

	"snake-arcade/game/clock"
	"snake-arcade/game/entity"
	"snake-arcade/game/manager"
	"snake-arcade/game/types"
	"snake-arcade/log"

	"golang.org/x/exp/rand"
)

// Renderer draws grid cells.
type Renderer interface {
	Clear()
	DrawCell(p types.Point, c types.Color)
}

// UI receives the out-of-grid signals: restart control visibility and the
// scoreboard line.
type UI interface {
	ShowRestartControl()
	HideRestartControl()
	UpdateScoreboard(score, highScore int)
}

// ScoreStore persists the all-time high score.
type ScoreStore interface {
	HighScore() (int, error)
	SaveHighScore(score int) error
}

// RunRecorder is told about every finished run.
type RunRecorder interface {
	RecordRun(score int, start, end time.Time) error
}

// Deps are the collaborators of a Game. Renderer, UI, Store and Clock are
// required; Recorder, Logger and Rand are optional.
type Deps struct {
	Renderer Renderer
	UI       UI
	Store    ScoreStore
	Clock    clock.Clock
	Recorder RunRecorder
	Logger   *log.Logger
	Rand     *rand.Rand
}

// State is a snapshot of the game.
type State struct {
	Snake        []types.Point
	Food         types.Point
	Direction    types.Direction
	Score        int
	HighScore    int
	TickInterval time.Duration
	Over         bool
}

type Game struct {
	grid types.Grid

	renderer Renderer
	ui       UI
	store    ScoreStore
	clock    clock.Clock
	recorder RunRecorder
	logger   *log.Logger

	collisions *manager.CollisionManager
	food       *manager.FoodManager
	speed      *manager.SpeedManager

	snake        *entity.Snake
	nextDir      types.Direction
	foodPos      types.Point
	score        int
	highScore    int
	tickInterval time.Duration
	over         bool
	startTime    time.Time
	ticker       clock.Handle
}

// NewGame builds a game on grid and reads the persisted high score. The game
// does not run until InitGame is called.
func NewGame(grid types.Grid, deps Deps) *Game {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	g := &Game{
		grid:       grid,
		renderer:   deps.Renderer,
		ui:         deps.UI,
		store:      deps.Store,
		clock:      deps.Clock,
		recorder:   deps.Recorder,
		logger:     logger,
		collisions: manager.NewCollisionManager(grid),
		food:       manager.NewFoodManager(grid, rng),
		speed:      manager.NewSpeedManager(),
		over:       true,
	}

	high, err := g.store.HighScore()
	if err != nil {
		g.logger.Warn("Failed to read high score, starting from 0: %v", err)
		high = 0
	}
	g.highScore = high
	return g
}

// InitGame starts a fresh run: one-cell snake at the grid center heading
// right, score 0, slowest speed and new food. Any running tick timer is
// replaced.
func (g *Game) InitGame() {
	g.snake = entity.NewSnake(g.grid.Center(), types.Right)
	g.nextDir = types.Right
	g.score = 0
	g.over = false
	g.tickInterval = manager.InitialInterval
	g.foodPos = g.food.Place()
	g.startTime = g.clock.Now()

	g.ui.UpdateScoreboard(g.score, g.highScore)
	g.ui.HideRestartControl()
	g.restartTicker()

	g.logger.Debug("New game on %dx%d grid, food at %v", g.grid.Width, g.grid.Height, g.foodPos)
}

// SetDirection queues d for the next tick. The reverse of the current heading
// and unknown directions are ignored.
func (g *Game) SetDirection(d types.Direction) {
	if g.over || !d.Valid() {
		return
	}
	if d == g.snake.Direction.Opposite() {
		return
	}
	g.nextDir = d
}

// Tick advances the game by one step.
func (g *Game) Tick() {
	if g.over {
		return
	}

	g.snake.Direction = g.nextDir
	newHead := g.snake.NextHead()

	if collision := g.collisions.Check(newHead, g.snake); collision != manager.NoCollision {
		g.gameOver(collision)
		return
	}

	g.snake.Move(newHead)

	if newHead == g.foodPos {
		g.score++
		if g.score > g.highScore {
			g.highScore = g.score
			if err := g.store.SaveHighScore(g.highScore); err != nil {
				g.logger.Warn("Failed to save high score %d: %v", g.highScore, err)
			}
		}
		g.ui.UpdateScoreboard(g.score, g.highScore)
		g.foodPos = g.food.Place()
		g.AdjustSpeed()
	} else {
		g.snake.RemoveTail()
	}

	if g.speed.BandFor(g.score).Teleport {
		g.RandomJump()
	}

	g.draw()
}

// AdjustSpeed sets the tick interval from the current score band and
// re-arms the clock, discarding any in-flight wait.
func (g *Game) AdjustSpeed() {
	band := g.speed.BandFor(g.score)
	if band.Interval != g.tickInterval {
		g.logger.Debug("Tick interval %v -> %v at score %d", g.tickInterval, band.Interval, g.score)
	}
	g.tickInterval = band.Interval
	g.restartTicker()
}

// RandomJump moves the head, and only the head, to a random cell.
func (g *Game) RandomJump() {
	g.snake.ReplaceHead(g.food.RandomCell())
}

// State returns a snapshot of the current game.
func (g *Game) State() State {
	s := State{
		Food:         g.foodPos,
		Direction:    types.None,
		Score:        g.score,
		HighScore:    g.highScore,
		TickInterval: g.tickInterval,
		Over:         g.over,
	}
	if g.snake != nil {
		s.Snake = g.snake.CopyBody()
		s.Direction = g.snake.Direction
	}
	return s
}

// Over reports whether the current run has ended.
func (g *Game) Over() bool {
	return g.over
}

func (g *Game) gameOver(collision manager.CollisionType) {
	g.over = true
	g.stopTicker()
	g.ui.ShowRestartControl()
	g.logger.Info("Game over (%s collision), score %d, high score %d", collision, g.score, g.highScore)

	if g.recorder != nil {
		if err := g.recorder.RecordRun(g.score, g.startTime, g.clock.Now()); err != nil {
			g.logger.Warn("Failed to record run: %v", err)
		}
	}
}

func (g *Game) restartTicker() {
	g.stopTicker()
	g.ticker = g.clock.Schedule(g.Tick, g.tickInterval)
}

func (g *Game) stopTicker() {
	if g.ticker != 0 {
		g.clock.Cancel(g.ticker)
		g.ticker = 0
	}
}

func (g *Game) draw() {
	g.renderer.Clear()
	for _, p := range g.snake.Body {
		g.renderer.DrawCell(p, types.Lime)
	}
	g.renderer.DrawCell(g.foodPos, types.Red)
}
