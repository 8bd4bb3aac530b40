package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/laststep/internal/input"
)

var keySignals = map[tcell.Key]input.Signal{
	tcell.KeyUp:     input.SignalUp,
	tcell.KeyDown:   input.SignalDown,
	tcell.KeyLeft:   input.SignalLeft,
	tcell.KeyRight:  input.SignalRight,
	tcell.KeyEscape: input.SignalEndGame,
}

var runeSignals = map[rune]input.Signal{
	'k': input.SignalUp,
	'j': input.SignalDown,
	'h': input.SignalLeft,
	'l': input.SignalRight,
	' ': input.SignalDisarm,
	'x': input.SignalDisarm,
	'q': input.SignalEndGame,
	'r': input.SignalReset,
}

// keySignal - the signal bound to a key press, if any.
func keySignal(event *tcell.EventKey) (input.Signal, bool) {
	if event.Key() == tcell.KeyRune {
		signal, ok := runeSignals[event.Rune()]
		return signal, ok
	}

	signal, ok := keySignals[event.Key()]
	return signal, ok
}

// popupSignal reports whether a signal is handled while the popup is open.
// Everything else is left to the popup buttons.
func popupSignal(signal input.Signal) bool {
	return signal == input.SignalReset || signal == input.SignalEndGame
}
