package sim

import "time"

type CommandType string

const (
	CmdStart CommandType = "start"
	CmdPause CommandType = "pause"
	CmdReset CommandType = "reset"
)

type Command interface {
	Type() CommandType
	ReceivedAt() time.Time
}

// StartCommand arms the tick loop. Starting an arrived mission is a no-op;
// reset it first.
type StartCommand struct{ At time.Time }

func (c StartCommand) Type() CommandType     { return CmdStart }
func (c StartCommand) ReceivedAt() time.Time { return c.At }

// PauseCommand suspends the tick loop, leaving the last computed state intact.
type PauseCommand struct{ At time.Time }

func (c PauseCommand) Type() CommandType     { return CmdPause }
func (c PauseCommand) ReceivedAt() time.Time { return c.At }

// ResetCommand puts the drone back on the first waypoint with a full battery
// and a fresh track. Ticking resumes only when the engine was configured to
// auto-start; otherwise a StartCommand arms it again.
type ResetCommand struct{ At time.Time }

func (c ResetCommand) Type() CommandType     { return CmdReset }
func (c ResetCommand) ReceivedAt() time.Time { return c.At }
