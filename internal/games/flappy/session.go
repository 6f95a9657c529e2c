// Package flappy implements the side-scrolling gap-obstacle simulation:
// an actor falling under gravity, a procedurally spawned obstacle stream,
// collision detection and the Idle/Running/Ended session state machine.
package flappy

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyflap/internal/core"
)

// State is the session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// AbortPolicy decides what happens to the score when a running playthrough is aborted.
type AbortPolicy int

const (
	// AbortFoldScore folds the current score into the high score.
	AbortFoldScore AbortPolicy = iota
	// AbortDiscardScore drops the current score.
	AbortDiscardScore
)

func (p AbortPolicy) String() string {
	if p == AbortDiscardScore {
		return "discard"
	}
	return "fold"
}

// ParseAbortPolicy parses "fold" or "discard". Empty means fold.
func ParseAbortPolicy(s string) (AbortPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fold":
		return AbortFoldScore, nil
	case "discard":
		return AbortDiscardScore, nil
	default:
		return AbortFoldScore, fmt.Errorf("flappy: unknown abort policy %q", s)
	}
}

// TickResult summarizes one Tick call.
type TickResult struct {
	State  State    // State after the tick
	Passed int      // Obstacles passed during the tick
	Ended  bool     // The playthrough ended during this tick
	Cause  EndCause // Set when Ended
}

// Option configures a Session.
type Option func(*Session)

// WithSeed seeds the gap generator.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.seed = seed
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects a custom random source for gap placement.
func WithRand(r Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// WithListener registers the event listener.
func WithListener(l Listener) Option {
	return func(s *Session) {
		s.listener = l
	}
}

// WithRewardHook registers the per-pass reward hook.
func WithRewardHook(h RewardHook) Option {
	return func(s *Session) {
		s.reward = h
	}
}

// WithLogger sets the logger used for hook failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithGeometry sets the initial playfield geometry.
func WithGeometry(g Geometry) Option {
	return func(s *Session) {
		s.geometry = g
	}
}

// WithAccount marks whether a reward account is connected.
func WithAccount(present bool) Option {
	return func(s *Session) {
		s.accountPresent = present
	}
}

// Session owns one actor and obstacle field and drives them through
// Idle, Running and Ended. It is not safe for concurrent use; callers
// serialize Tick, Activate and the setters.
type Session struct {
	params   Params
	geometry Geometry

	seed int64
	rng  Rand

	state     State
	score     int
	highScore int
	ticks     uint64

	actor   Actor
	field   *ObstacleField
	attract *attract

	listener       Listener
	reward         RewardHook
	accountPresent bool
	logger         *log.Logger

	ticking bool
}

// NewSession creates an Idle session.
func NewSession(p Params, opts ...Option) *Session {
	if p.TickRate <= 0 {
		p.TickRate = 60
	}
	s := &Session{
		params: p,
		geometry: Geometry{
			Width:  800,
			Height: 600,
			Ground: 64,
		},
		seed:  time.Now().UnixNano(),
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.seed))
	}
	if s.listener == nil {
		s.listener = ListenerFuncs{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.attract = newAttract(p, rand.New(rand.NewSource(s.seed+1)))
	return s
}

// Reseed replaces the gap generator. It takes effect at the next spawn.
func (s *Session) Reseed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
	if s.field != nil {
		s.field.rng = s.rng
	}
}

// Start begins a fresh playthrough from Idle or Ended.
// It returns false when a playthrough is already running.
func (s *Session) Start() bool {
	if s.state == StateRunning {
		return false
	}
	s.actor = NewActor(s.params, s.geometry)
	s.field = NewObstacleField(s.params, s.rng)
	s.score = 0
	s.ticks = 0
	s.attract = nil
	s.state = StateRunning
	return true
}

// Jump applies the impulse. Ignored unless Running.
func (s *Session) Jump() bool {
	if s.state != StateRunning {
		return false
	}
	s.actor.ApplyImpulse(s.params.JumpForce)
	s.listener.OnJump()
	return true
}

// Activate is the single abstract input: jump while Running, start otherwise.
func (s *Session) Activate() {
	if s.state == StateRunning {
		s.Jump()
		return
	}
	s.Start()
}

// Abort returns to Idle, discarding the actor and field.
// A running score is folded into the high score according to the abort policy.
func (s *Session) Abort() {
	switch s.state {
	case StateIdle:
		return
	case StateRunning:
		if s.params.AbortPolicy == AbortFoldScore {
			s.highScore = max(s.highScore, s.score)
		}
	}
	s.state = StateIdle
	s.actor = Actor{}
	s.field = nil
	s.attract = newAttract(s.params, rand.New(rand.NewSource(s.seed+1)))
}

// Tick advances the session by one fixed step.
func (s *Session) Tick() TickResult {
	if s.ticking {
		return TickResult{State: s.state}
	}
	s.ticking = true
	defer func() { s.ticking = false }()

	switch s.state {
	case StateIdle:
		s.attract.tick(s.geometry)
		return TickResult{State: s.state}
	case StateRunning:
		return s.runTick()
	default:
		return TickResult{State: s.state}
	}
}

func (s *Session) runTick() TickResult {
	g := s.geometry
	s.ticks++

	s.actor.Step(s.params.Gravity)
	if s.actor.OutOfBounds(g) {
		s.actor.Y = core.ClampF(s.actor.Y, 0, s.actor.MaxY(g))
		s.end(CauseOutOfBounds)
		return TickResult{State: s.state, Ended: true, Cause: CauseOutOfBounds}
	}

	s.field.Advance()
	s.field.MaybeSpawn(s.simTime(), g)

	passed := s.field.EvaluatePasses(s.actor.X)
	for range passed {
		s.score++
		s.notifyReward()
		s.listener.OnScorePass(s.score)
	}

	res := TickResult{State: s.state, Passed: len(passed)}
	if Collides(s.actor, s.field.obstacles, s.field.Width(), g) {
		s.end(CauseCollision)
		res.State = s.state
		res.Ended = true
		res.Cause = CauseCollision
	}
	return res
}

func (s *Session) end(cause EndCause) {
	s.state = StateEnded
	record := s.score > s.highScore
	s.highScore = max(s.highScore, s.score)
	s.listener.OnGameOver(GameOver{
		Score:        s.score,
		HighScore:    s.highScore,
		NewHighScore: record,
		Cause:        cause,
	})
}

func (s *Session) notifyReward() {
	if s.reward == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("reward hook panicked", "panic", r, "score", s.score)
		}
	}()
	if err := s.reward.OnObstaclePassed(s.accountPresent); err != nil {
		s.logger.Warn("reward hook failed", "err", err, "score", s.score)
	}
}

// simTime is the elapsed simulation time of the current playthrough.
func (s *Session) simTime() time.Duration {
	return time.Duration(s.ticks) * time.Second / time.Duration(s.params.TickRate)
}

// SetGeometry updates the playfield size. It is read at the start of the next tick.
// Negative values are clamped to zero.
func (s *Session) SetGeometry(g Geometry) {
	g.Width = max(g.Width, 0)
	g.Height = max(g.Height, 0)
	g.Ground = core.ClampF(g.Ground, 0, g.Height)
	s.geometry = g
}

// SetAccountPresent updates the flag passed to the reward hook.
func (s *Session) SetAccountPresent(present bool) {
	s.accountPresent = present
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Score returns the score of the current or last playthrough.
func (s *Session) Score() int { return s.score }

// HighScore returns the best score of this session.
func (s *Session) HighScore() int { return s.highScore }

// Actor returns a copy of the actor.
func (s *Session) Actor() Actor { return s.actor }

// Geometry returns the current playfield geometry.
func (s *Session) Geometry() Geometry { return s.geometry }

// Params returns the session parameters.
func (s *Session) Params() Params { return s.params }

// Ticks returns the number of ticks in the current playthrough.
func (s *Session) Ticks() uint64 { return s.ticks }

// AccountPresent reports whether a reward account is connected.
func (s *Session) AccountPresent() bool { return s.accountPresent }

// Obstacles returns the live obstacles of the current playthrough in spawn order.
func (s *Session) Obstacles() []Obstacle {
	if s.field == nil {
		return nil
	}
	return s.field.Obstacles()
}

// DemoObstacles returns the attract-mode obstacles shown while Idle.
func (s *Session) DemoObstacles() []Obstacle {
	if s.attract == nil {
		return nil
	}
	return s.attract.obstacles()
}
