// Package terminal is the presentation adapter: it draws session frames with tview,
// rings the terminal bell for cues and feeds key presses and clicks back as signals.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/laststep/internal/entity"
	"github.com/rocketscienceinc/laststep/internal/input"
)

const (
	boardPage = "board"
	popupPage = "popup"

	// explosionDelay keeps the explosion on screen before the popup covers it.
	explosionDelay = 500 * time.Millisecond
)

type controller interface {
	Start(ctx context.Context)
	Handle(ctx context.Context, cmd input.Command) bool
	Tick(ctx context.Context)
	Controls() input.Controls
}

// View owns the tview application. Every method except Run must be called from
// the tview event goroutine once Run has started.
type View struct {
	logger *slog.Logger

	app    *tview.Application
	screen tcell.Screen
	pages  *tview.Pages
	board  *tview.Box
	popup  *tview.Modal

	frameRate  int
	popupDelay time.Duration

	frame        entity.Frame
	at           layout
	popupVisible bool
	popupPending bool
	popupGen     int

	dispatch func(signal input.Signal)
}

func New(logger *slog.Logger, screen tcell.Screen, frameRate int) *View {
	view := &View{
		logger: logger.With("component", "terminal"),

		app:    tview.NewApplication(),
		screen: screen,
		pages:  tview.NewPages(),
		board:  tview.NewBox(),
		popup:  tview.NewModal(),

		frameRate:  max(frameRate, 1),
		popupDelay: explosionDelay,

		dispatch: func(input.Signal) {},
	}

	view.board.SetBorder(true).SetTitle(" The Last Step ")
	view.board.SetDrawFunc(view.draw)
	view.board.SetMouseCapture(view.onMouse)

	view.popup.
		AddButtons([]string{tryAgainButton, endGameButton}).
		SetDoneFunc(view.onPopupDone)

	view.pages.
		AddPage(boardPage, view.board, true, true).
		AddPage(popupPage, view.popup, true, false)

	view.app.
		SetScreen(screen).
		SetRoot(view.pages, true).
		EnableMouse(true).
		SetInputCapture(view.onKey)

	return view
}

// Run - blocks in the UI loop until the game ends or ctx is cancelled.
func (that *View) Run(ctx context.Context, ctrl controller) error {
	that.bind(ctx, ctrl)
	ctrl.Start(ctx)

	done := make(chan struct{})
	defer close(done)

	go that.pump(ctx, ctrl, done)

	if err := that.app.Run(); err != nil {
		return fmt.Errorf("terminal loop failed: %w", err)
	}

	return nil
}

func (that *View) bind(ctx context.Context, ctrl controller) {
	that.dispatch = func(signal input.Signal) {
		cmd, ok := input.Map(signal, ctrl.Controls())
		if !ok {
			that.logger.Debug("signal dropped", "signal", signal)
			return
		}

		if ctrl.Handle(ctx, cmd) {
			that.app.Stop()
		}
	}
}

// pump drives the countdown. Ticks are queued onto the event goroutine so the
// session is only ever touched from there.
func (that *View) pump(ctx context.Context, ctrl controller, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(that.frameRate))
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			that.logger.Info("Context canceled, stopping terminal")
			that.app.Stop()
			return
		case <-ticker.C:
			that.app.QueueUpdateDraw(func() {
				ctrl.Tick(ctx)
			})
		}
	}
}

// Render - keeps the frame for the next draw and opens or closes the popup by phase.
func (that *View) Render(frame entity.Frame) {
	that.frame = frame

	phase := frame.Snapshot.Phase
	if !phase.IsTerminal() {
		if that.popupVisible || that.popupPending {
			that.hidePopup()
		}
		return
	}

	if that.popupVisible {
		that.popup.SetText(popupText(frame))
		return
	}

	if that.popupPending {
		return
	}

	that.popupPending = true
	that.popupGen++

	if phase != entity.PhaseLost || that.popupDelay <= 0 {
		that.showPopup()
		return
	}

	gen := that.popupGen
	time.AfterFunc(that.popupDelay, func() {
		that.app.QueueUpdateDraw(func() {
			if that.popupPending && that.popupGen == gen {
				that.showPopup()
			}
		})
	})
}

// PlayCue - rings the terminal bell. Playback is never waited on.
func (that *View) PlayCue(cue entity.Cue) {
	if err := that.screen.Beep(); err != nil {
		that.logger.Debug("failed to play cue", "cue", cue, "error", err)
	}
}

func (that *View) showPopup() {
	that.popupPending = false
	that.popupVisible = true

	that.popup.SetText(popupText(that.frame))
	that.popup.SetFocus(0)
	that.pages.ShowPage(popupPage)
	that.app.SetFocus(that.popup)
}

func (that *View) hidePopup() {
	that.popupPending = false
	that.popupVisible = false
	that.popupGen++

	that.pages.HidePage(popupPage)
	that.app.SetFocus(that.board)
}

func (that *View) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	// inside the border
	x, y, width, height = x+1, y+1, width-2, height-2

	if width < frameWidth || height < frameHeight {
		drawText(screen, x, y, "Window too small", styleText)
		return x, y, width, height
	}

	that.at = layout{
		originX: x + (width-frameWidth)/2,
		originY: y + (height-frameHeight)/2,
	}
	drawFrame(screen, that.at, that.frame)

	return x, y, width, height
}

func (that *View) onKey(event *tcell.EventKey) *tcell.EventKey {
	signal, ok := keySignal(event)
	if !ok {
		return event
	}

	if that.popupVisible && !popupSignal(signal) {
		return event
	}

	that.dispatch(signal)

	return nil
}

func (that *View) onMouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	if action != tview.MouseLeftClick {
		return action, event
	}

	signal, ok := that.at.hit(event.Position())
	if !ok {
		return action, event
	}

	that.dispatch(signal)

	return action, nil
}

func (that *View) onPopupDone(_ int, buttonLabel string) {
	switch buttonLabel {
	case tryAgainButton:
		that.dispatch(input.SignalReset)
	case endGameButton:
		that.dispatch(input.SignalEndGame)
	}
}
