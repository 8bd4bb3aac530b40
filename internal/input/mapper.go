// Package input turns host signals (keys, clicks, popup buttons) into session commands.
package input

import "github.com/rocketscienceinc/laststep/internal/entity"

type Signal string

const (
	SignalUp      Signal = "up"
	SignalDown    Signal = "down"
	SignalLeft    Signal = "left"
	SignalRight   Signal = "right"
	SignalDisarm  Signal = "disarm"
	SignalEndGame Signal = "end_game"
	SignalReset   Signal = "reset"
)

type CommandKind string

const (
	CommandMove    CommandKind = "move"
	CommandDisarm  CommandKind = "disarm"
	CommandReset   CommandKind = "reset"
	CommandEndGame CommandKind = "end_game"
)

type Command struct {
	Kind      CommandKind
	Direction entity.Direction
}

// Controls is the state of the on-screen controls as the host shows them.
type Controls struct {
	DisarmEnabled bool
}

func ControlsFrom(snapshot entity.Snapshot) Controls {
	return Controls{DisarmEnabled: snapshot.DisarmEnabled()}
}

var directions = map[Signal]entity.Direction{
	SignalUp:    entity.DirectionUp,
	SignalDown:  entity.DirectionDown,
	SignalLeft:  entity.DirectionLeft,
	SignalRight: entity.DirectionRight,
}

// Map - translates a signal into a command. A disarm signal is dropped while the
// disarm control is disabled, as are unknown signals.
func Map(signal Signal, controls Controls) (Command, bool) {
	if direction, ok := directions[signal]; ok {
		return Command{Kind: CommandMove, Direction: direction}, true
	}

	switch signal {
	case SignalDisarm:
		if !controls.DisarmEnabled {
			return Command{}, false
		}
		return Command{Kind: CommandDisarm}, true
	case SignalEndGame:
		return Command{Kind: CommandEndGame}, true
	case SignalReset:
		return Command{Kind: CommandReset}, true
	default:
		return Command{}, false
	}
}
