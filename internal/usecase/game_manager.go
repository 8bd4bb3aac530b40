package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/laststep/internal/entity"
	"github.com/rocketscienceinc/laststep/internal/input"
)

type presenter interface {
	Render(frame entity.Frame)
	PlayCue(cue entity.Cue)
}

type resultRepo interface {
	Save(ctx context.Context, result *entity.RoundResult) error
	Top(ctx context.Context, limit int) ([]*entity.RoundResult, error)
}

// GameManager drives one Session for the host loop. It is not safe for concurrent
// use: the host calls it from a single goroutine.
type GameManager struct {
	logger *slog.Logger

	session   *entity.Session
	presenter presenter
	results   resultRepo

	player    string
	now       func() time.Time
	startedAt time.Time
	best      *entity.RoundResult
}

func NewGameManager(
	logger *slog.Logger,
	session *entity.Session,
	presenter presenter,
	results resultRepo,
	player string,
	now func() time.Time,
) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		session:   session,
		presenter: presenter,
		results:   results,

		player: player,
		now:    now,
	}
}

// Start - starts the round clock and draws the first frame.
func (that *GameManager) Start(ctx context.Context) {
	that.startedAt = that.now()
	that.refreshBest(ctx)

	that.logger.Info("Round started", "character", that.session.Character().String())
	that.render()
}

// Handle - applies a command to the session. Returns true when the host should exit.
func (that *GameManager) Handle(ctx context.Context, cmd input.Command) bool {
	log := that.logger.With("method", "Handle", "command", cmd.Kind)

	var outcome entity.Outcome

	switch cmd.Kind {
	case input.CommandMove:
		outcome = that.session.Move(cmd.Direction)
	case input.CommandDisarm:
		outcome = that.session.Disarm()
	case input.CommandReset:
		outcome = that.session.Reset()
		that.startedAt = that.now()
		log.Info("Round reset", "character", that.session.Character().String())
	case input.CommandEndGame:
		log.Info("End game requested", "phase", that.session.Phase())
		return true
	default:
		log.Debug("unknown command ignored")
		return false
	}

	if !outcome.Changed {
		log.Debug("command had no effect", "phase", outcome.Phase)
	}

	that.apply(ctx, outcome)

	return false
}

// Tick - advances the countdown from the wall clock and redraws.
func (that *GameManager) Tick(ctx context.Context) {
	elapsed := int(that.now().Sub(that.startedAt) / time.Second)

	that.apply(ctx, that.session.Tick(elapsed))
}

func (that *GameManager) Snapshot() entity.Snapshot {
	return that.session.Snapshot()
}

func (that *GameManager) Controls() input.Controls {
	return input.ControlsFrom(that.session.Snapshot())
}

func (that *GameManager) Frame() entity.Frame {
	return entity.Frame{Snapshot: that.session.Snapshot(), Best: that.best}
}

func (that *GameManager) apply(ctx context.Context, outcome entity.Outcome) {
	for _, cue := range outcome.Cues {
		that.presenter.PlayCue(cue)
	}

	if outcome.Changed && outcome.Phase.IsTerminal() {
		that.record(ctx)
	}

	that.render()
}

// record stores the finished round. Storage failures are logged and never reach the game.
func (that *GameManager) record(ctx context.Context) {
	snapshot := that.session.Snapshot()
	result := entity.NewRoundResult(that.player, snapshot, that.now())

	log := that.logger.With("method", "record", "roundID", result.ID)
	log.Info("Round finished",
		"phase", result.Phase,
		"mineScore", result.MineScore,
		"timeBonus", result.TimeBonus,
		"finalScore", result.FinalScore,
	)

	if err := that.results.Save(ctx, result); err != nil {
		log.Error("failed to save round result", "error", err)
		return
	}

	that.refreshBest(ctx)
}

func (that *GameManager) refreshBest(ctx context.Context) {
	top, err := that.results.Top(ctx, 1)
	if err != nil {
		that.logger.Error("failed to load best result", "error", err)
		return
	}

	if len(top) > 0 {
		that.best = top[0]
	}
}

func (that *GameManager) render() {
	that.presenter.Render(that.Frame())
}
