package flappy

// EndCause says why a playthrough ended.
type EndCause int

const (
	CauseNone EndCause = iota
	CauseOutOfBounds
	CauseCollision
)

func (c EndCause) String() string {
	switch c {
	case CauseOutOfBounds:
		return "out of bounds"
	case CauseCollision:
		return "collision"
	default:
		return "none"
	}
}

// GameOver is delivered with OnGameOver.
type GameOver struct {
	Score        int
	HighScore    int // Already updated with Score
	NewHighScore bool
	Cause        EndCause
}

// Listener receives the discrete session events.
// Callbacks run synchronously inside Tick or Jump and must not call back into the session.
type Listener interface {
	OnJump()
	OnScorePass(score int)
	OnGameOver(result GameOver)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Jump      func()
	ScorePass func(score int)
	GameOver  func(result GameOver)
}

func (l ListenerFuncs) OnJump() {
	if l.Jump != nil {
		l.Jump()
	}
}

func (l ListenerFuncs) OnScorePass(score int) {
	if l.ScorePass != nil {
		l.ScorePass(score)
	}
}

func (l ListenerFuncs) OnGameOver(result GameOver) {
	if l.GameOver != nil {
		l.GameOver(result)
	}
}

// Listeners fans events out to several listeners in order.
type Listeners []Listener

func (ls Listeners) OnJump() {
	for _, l := range ls {
		l.OnJump()
	}
}

func (ls Listeners) OnScorePass(score int) {
	for _, l := range ls {
		l.OnScorePass(score)
	}
}

func (ls Listeners) OnGameOver(result GameOver) {
	for _, l := range ls {
		l.OnGameOver(result)
	}
}

// RewardHook is notified once per passed obstacle.
// Implementations must return quickly; the session ignores errors and panics.
type RewardHook interface {
	OnObstaclePassed(accountPresent bool) error
}

// RewardHookFunc adapts a function to RewardHook.
type RewardHookFunc func(accountPresent bool) error

func (f RewardHookFunc) OnObstaclePassed(accountPresent bool) error {
	return f(accountPresent)
}
