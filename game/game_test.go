package game

import (
	"testing"
	"time"

	"snake-arcade/game/clock"
	"snake-arcade/game/entity"
	"snake-arcade/game/types"
	"snake-arcade/log"
	"snake-arcade/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const testSeed = 7

type drawnCell struct {
	p types.Point
	c types.Color
}

type fakeRenderer struct {
	clears int
	cells  []drawnCell
}

func (r *fakeRenderer) Clear() {
	r.clears++
	r.cells = r.cells[:0]
}

func (r *fakeRenderer) DrawCell(p types.Point, c types.Color) {
	r.cells = append(r.cells, drawnCell{p: p, c: c})
}

type fakeUI struct {
	restartVisible bool
	shows, hides   int
	score, high    int
}

func (u *fakeUI) ShowRestartControl() {
	u.restartVisible = true
	u.shows++
}

func (u *fakeUI) HideRestartControl() {
	u.restartVisible = false
	u.hides++
}

func (u *fakeUI) UpdateScoreboard(score, highScore int) {
	u.score, u.high = score, highScore
}

type fakeRecorder struct {
	scores []int
}

func (r *fakeRecorder) RecordRun(score int, start, end time.Time) error {
	r.scores = append(r.scores, score)
	return nil
}

type harness struct {
	game     *Game
	renderer *fakeRenderer
	ui       *fakeUI
	store    *store.MemoryStore
	clock    *clock.FrameClock
	recorder *fakeRecorder
	now      time.Time
}

func newHarness(t *testing.T, grid types.Grid, highScore int) *harness {
	t.Helper()
	h := &harness{
		renderer: &fakeRenderer{},
		ui:       &fakeUI{},
		store:    store.NewMemoryStore(highScore),
		recorder: &fakeRecorder{},
		now:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	h.clock = clock.NewFrameClock(func() time.Time { return h.now })
	h.game = NewGame(grid, Deps{
		Renderer: h.renderer,
		UI:       h.ui,
		Store:    h.store,
		Clock:    h.clock,
		Recorder: h.recorder,
		Logger:   log.Discard(),
		Rand:     rand.New(rand.NewSource(testSeed)),
	})
	return h
}

func (h *harness) advance(d time.Duration) int {
	h.now = h.now.Add(d)
	return h.clock.Advance()
}

// place puts the snake and food at known cells.
func (h *harness) place(body []types.Point, dir types.Direction, food types.Point) {
	h.game.snake = entity.NewSnakeFromBody(body, dir)
	h.game.nextDir = dir
	h.game.foodPos = food
}

var grid20 = types.Grid{Width: 20, Height: 20}

func TestGame_InitGame(t *testing.T) {
	h := newHarness(t, grid20, 3)
	h.game.InitGame()

	st := h.game.State()
	assert.Equal(t, []types.Point{{X: 10, Y: 10}}, st.Snake)
	assert.Equal(t, types.Right, st.Direction)
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 3, st.HighScore, "high score is read from the store")
	assert.Equal(t, 200*time.Millisecond, st.TickInterval)
	assert.False(t, st.Over)
	assert.True(t, grid20.Contains(st.Food))

	assert.Equal(t, 1, h.clock.Active())
	assert.Equal(t, 1, h.ui.hides)
	assert.False(t, h.ui.restartVisible)
	assert.Equal(t, 3, h.ui.high)
}

func TestGame_ClockDrivesTicks(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.game.foodPos = types.Point{X: 0, Y: 0}

	assert.Equal(t, 0, h.advance(199*time.Millisecond))
	assert.Equal(t, 1, h.advance(time.Millisecond))
	assert.Equal(t, types.Point{X: 11, Y: 10}, h.game.State().Snake[0])
}

func TestGame_NonEatingTickKeepsLength(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.place([]types.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}, types.Right, types.Point{X: 15, Y: 15})

	for i := 0; i < 5; i++ {
		h.game.Tick()
		st := h.game.State()
		require.False(t, st.Over)
		assert.Len(t, st.Snake, 3)
		assert.Equal(t, 0, st.Score)
	}
	assert.Equal(t, []types.Point{{X: 10, Y: 5}, {X: 9, Y: 5}, {X: 8, Y: 5}}, h.game.State().Snake)
}

func TestGame_EatingTickGrowsAndScores(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.place([]types.Point{{X: 5, Y: 5}, {X: 4, Y: 5}}, types.Right, types.Point{X: 6, Y: 5})

	h.game.Tick()

	st := h.game.State()
	assert.Equal(t, []types.Point{{X: 6, Y: 5}, {X: 5, Y: 5}, {X: 4, Y: 5}}, st.Snake)
	assert.Equal(t, 1, st.Score)
	assert.Equal(t, 1, st.HighScore)
	assert.Equal(t, 1, h.store.Saves())
	assert.Equal(t, 1, h.ui.score)
	assert.Equal(t, 1, h.clock.Active())

	// redraw: every snake cell in lime, then the food in red
	require.Len(t, h.renderer.cells, 4)
	for i, p := range st.Snake {
		assert.Equal(t, drawnCell{p: p, c: types.Lime}, h.renderer.cells[i])
	}
	assert.Equal(t, drawnCell{p: st.Food, c: types.Red}, h.renderer.cells[3])
}

func TestGame_ReverseDirectionRejected(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.game.foodPos = types.Point{X: 0, Y: 0}

	h.game.SetDirection(types.Left)
	assert.Equal(t, types.Right, h.game.State().Direction)

	h.game.Tick()
	assert.Equal(t, types.Right, h.game.State().Direction)
	assert.Equal(t, types.Point{X: 11, Y: 10}, h.game.State().Snake[0])
}

func TestGame_DirectionAppliesOnNextTick(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.game.foodPos = types.Point{X: 0, Y: 0}

	h.game.SetDirection(types.Up)
	assert.Equal(t, types.Right, h.game.State().Direction, "not applied before the tick")

	// a second key in the same tick is still checked against the current heading
	h.game.SetDirection(types.Left)
	h.game.Tick()

	st := h.game.State()
	assert.Equal(t, types.Up, st.Direction)
	assert.Equal(t, types.Point{X: 10, Y: 9}, st.Snake[0])
}

func TestGame_UnknownDirectionIgnored(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.game.SetDirection(types.None)
	h.game.SetDirection(types.Direction(42))
	assert.Equal(t, types.Right, h.game.nextDir)
}

func TestGame_WallCollision(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.place([]types.Point{{X: 19, Y: 4}}, types.Right, types.Point{X: 0, Y: 0})

	h.game.Tick()

	st := h.game.State()
	assert.True(t, st.Over)
	assert.Equal(t, []types.Point{{X: 19, Y: 4}}, st.Snake, "snake does not move into the wall")
	assert.Equal(t, 0, h.clock.Active(), "ticks are halted")
	assert.True(t, h.ui.restartVisible)
	assert.Equal(t, []int{0}, h.recorder.scores)

	h.game.Tick()
	assert.Equal(t, 0, h.advance(time.Second))
	assert.Equal(t, []types.Point{{X: 19, Y: 4}}, h.game.State().Snake)
	assert.Equal(t, 1, h.ui.shows)
}

func TestGame_WallCollisionEachSide(t *testing.T) {
	tests := []struct {
		name string
		head types.Point
		dir  types.Direction
	}{
		{"left", types.Point{X: 0, Y: 7}, types.Left},
		{"top", types.Point{X: 7, Y: 0}, types.Up},
		{"bottom", types.Point{X: 7, Y: 19}, types.Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, grid20, 0)
			h.game.InitGame()
			h.place([]types.Point{tt.head}, tt.dir, types.Point{X: 10, Y: 10})
			h.game.Tick()
			assert.True(t, h.game.State().Over)
		})
	}
}

func TestGame_SelfCollision(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.place([]types.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}, types.Left, types.Point{X: 0, Y: 0})

	h.game.SetDirection(types.Down)
	h.game.Tick()

	assert.True(t, h.game.State().Over)
	assert.Equal(t, 0, h.clock.Active())
}

func TestGame_RestartAfterGameOver(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.place([]types.Point{{X: 19, Y: 4}}, types.Right, types.Point{X: 0, Y: 0})
	h.game.Tick()
	require.True(t, h.game.State().Over)

	h.game.SetDirection(types.Up)
	assert.Equal(t, types.Right, h.game.nextDir, "input is ignored once the game is over")

	h.game.InitGame()
	st := h.game.State()
	assert.False(t, st.Over)
	assert.Equal(t, []types.Point{{X: 10, Y: 10}}, st.Snake)
	assert.False(t, h.ui.restartVisible)
	assert.Equal(t, 1, h.clock.Active())
}

func TestGame_InitGameReplacesTimer(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.game.InitGame()
	h.game.InitGame()
	assert.Equal(t, 1, h.clock.Active())
}

func TestGame_AdjustSpeedIdempotent(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.game.score = 25

	h.game.AdjustSpeed()
	first := h.game.State().TickInterval
	h.game.AdjustSpeed()

	assert.Equal(t, 150*time.Millisecond, first)
	assert.Equal(t, first, h.game.State().TickInterval)
	assert.Equal(t, 1, h.clock.Active())
}

func TestGame_AdjustSpeedDiscardsInFlightWait(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.game.foodPos = types.Point{X: 0, Y: 0}

	h.advance(100 * time.Millisecond)
	h.game.score = 60
	h.game.AdjustSpeed()

	// the old 200ms deadline is gone, the new 50ms period starts now
	assert.Equal(t, 0, h.advance(49*time.Millisecond))
	assert.Equal(t, 1, h.advance(time.Millisecond))
	assert.Equal(t, 1, h.advance(50*time.Millisecond))
	assert.Equal(t, 1, h.clock.Active())
}

func TestGame_SpeedFollowsScore(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.place([]types.Point{{X: 5, Y: 5}}, types.Right, types.Point{X: 6, Y: 5})
	h.game.score = 20

	h.game.Tick()

	assert.Equal(t, 21, h.game.State().Score)
	assert.Equal(t, 150*time.Millisecond, h.game.State().TickInterval)
}

func TestGame_HighScoreMonotonic(t *testing.T) {
	h := newHarness(t, grid20, 1)
	h.game.InitGame()

	// eat twice in a row
	h.place([]types.Point{{X: 5, Y: 5}}, types.Right, types.Point{X: 6, Y: 5})
	h.game.Tick()
	h.game.foodPos = types.Point{X: 7, Y: 5}
	h.game.Tick()
	require.Equal(t, 2, h.game.State().HighScore)

	// die and restart
	h.place([]types.Point{{X: 19, Y: 0}}, types.Right, types.Point{X: 0, Y: 0})
	h.game.Tick()
	h.game.InitGame()
	assert.Equal(t, 2, h.game.State().HighScore)
	assert.Equal(t, 0, h.game.State().Score)

	// a lower score does not touch the stored value
	h.place([]types.Point{{X: 5, Y: 5}}, types.Right, types.Point{X: 6, Y: 5})
	h.game.Tick()
	assert.Equal(t, 2, h.game.State().HighScore)

	stored, err := h.store.HighScore()
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
	assert.Equal(t, 1, h.store.Saves(), "only the new maximum is written")
}

func TestGame_TeleportBandNoEat(t *testing.T) {
	h := newHarness(t, grid20, 0)
	mirror := rand.New(rand.NewSource(testSeed))
	h.game.InitGame()
	// InitGame consumed one food placement
	mirror.Intn(grid20.Width)
	mirror.Intn(grid20.Height)

	h.place([]types.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}, types.Right, types.Point{X: 15, Y: 15})
	h.game.score = 100

	h.game.Tick()

	want := types.Point{X: mirror.Intn(grid20.Width), Y: mirror.Intn(grid20.Height)}
	st := h.game.State()
	require.False(t, st.Over)
	assert.Equal(t, want, st.Snake[0])
	assert.Equal(t, []types.Point{{X: 5, Y: 5}, {X: 4, Y: 5}}, st.Snake[1:], "only the head moves")
}

func TestGame_TeleportBandOnEat(t *testing.T) {
	h := newHarness(t, grid20, 0)
	mirror := rand.New(rand.NewSource(testSeed))
	h.game.InitGame()
	mirror.Intn(grid20.Width)
	mirror.Intn(grid20.Height)

	h.place([]types.Point{{X: 5, Y: 5}}, types.Right, types.Point{X: 6, Y: 5})
	h.game.score = 99

	h.game.Tick()

	// the eat places new food first, then the jump
	wantFood := types.Point{X: mirror.Intn(grid20.Width), Y: mirror.Intn(grid20.Height)}
	wantHead := types.Point{X: mirror.Intn(grid20.Width), Y: mirror.Intn(grid20.Height)}
	st := h.game.State()
	assert.Equal(t, 100, st.Score)
	assert.Equal(t, 50*time.Millisecond, st.TickInterval)
	assert.Equal(t, wantFood, st.Food)
	assert.Equal(t, wantHead, st.Snake[0])
	assert.Equal(t, types.Point{X: 5, Y: 5}, st.Snake[1])
}

func TestGame_BelowTeleportBandNoJump(t *testing.T) {
	h := newHarness(t, grid20, 0)
	h.game.InitGame()
	h.place([]types.Point{{X: 5, Y: 5}}, types.Right, types.Point{X: 15, Y: 15})
	h.game.score = 99

	h.game.Tick()
	assert.Equal(t, types.Point{X: 6, Y: 5}, h.game.State().Snake[0])
}

// Food placement ignores the snake; on a one-cell grid it always lands on it.
func TestGame_FoodMaySpawnOnSnake(t *testing.T) {
	h := newHarness(t, types.Grid{Width: 1, Height: 1}, 0)
	h.game.InitGame()

	st := h.game.State()
	assert.Equal(t, st.Snake[0], st.Food)
}

type failingStore struct{}

func (failingStore) HighScore() (int, error) { return 0, assert.AnError }
func (failingStore) SaveHighScore(int) error { return assert.AnError }

func TestGame_StoreErrorsAreNotFatal(t *testing.T) {
	now := time.Now()
	clk := clock.NewFrameClock(func() time.Time { return now })
	g := NewGame(grid20, Deps{
		Renderer: &fakeRenderer{},
		UI:       &fakeUI{},
		Store:    failingStore{},
		Clock:    clk,
		Logger:   log.Discard(),
		Rand:     rand.New(rand.NewSource(testSeed)),
	})
	assert.Equal(t, 0, g.State().HighScore)

	g.InitGame()
	g.snake = entity.NewSnake(types.Point{X: 5, Y: 5}, types.Right)
	g.nextDir = types.Right
	g.foodPos = types.Point{X: 6, Y: 5}
	g.Tick()

	assert.Equal(t, 1, g.State().HighScore)
	assert.False(t, g.State().Over)
}
