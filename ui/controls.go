// Package ui turns raw terminal input into game commands and formats the
// text shown under the map.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/pthm-cable/hunt/game"
)

const (
	keyEsc   = 0x1b
	keyCtrlC = 0x03
)

// keyBindings maps single-byte keys to commands.
var keyBindings = map[byte]game.Command{
	'w': game.CmdMoveUp,
	'W': game.CmdMoveUp,
	's': game.CmdMoveDown,
	'S': game.CmdMoveDown,
	'a': game.CmdMoveLeft,
	'A': game.CmdMoveLeft,
	'd': game.CmdMoveRight,
	'D': game.CmdMoveRight,
	' ': game.CmdConsume,
	'e': game.CmdConsume,
	'E': game.CmdConsume,
	'r': game.CmdRepel,
	'R': game.CmdRepel,
	'q': game.CmdQuit,
	'Q': game.CmdQuit,

	keyCtrlC: game.CmdQuit,
}

// arrowKeys maps the final byte of an arrow key escape sequence.
var arrowKeys = map[byte]game.Command{
	'A': game.CmdMoveUp,
	'B': game.CmdMoveDown,
	'C': game.CmdMoveRight,
	'D': game.CmdMoveLeft,
}

// escTimeout is how long a trailing ESC waits for the rest of a sequence
// before it counts as the Esc key.
const escTimeout = 50 * time.Millisecond

// Decoder turns a stream of raw-mode input into commands. An escape sequence
// split across reads is held back until the rest arrives.
type Decoder struct {
	pending []byte
}

// Feed decodes chunk after any bytes held back by the previous call.
func (d *Decoder) Feed(chunk []byte) []game.Command {
	buf := append(slices.Clone(d.pending), chunk...)
	cmds, rest := decode(buf)
	d.pending = slices.Clone(rest)
	return cmds
}

// Pending reports whether an unfinished escape sequence is held back.
func (d *Decoder) Pending() bool {
	return len(d.pending) > 0
}

// Flush ends the held-back input: a lone ESC is the Esc key and quits, a
// truncated sequence is dropped.
func (d *Decoder) Flush() []game.Command {
	held := d.pending
	d.pending = nil
	if len(held) == 1 && held[0] == keyEsc {
		return []game.Command{game.CmdQuit}
	}
	return nil
}

// Decode converts complete input into commands. Arrow keys arrive as ESC [ X
// or ESC O X; any other escape sequence is skipped whole, and a lone ESC
// quits. Unknown bytes are ignored.
func Decode(input []byte) []game.Command {
	var d Decoder
	return append(d.Feed(input), d.Flush()...)
}

// decode converts input up to an unfinished escape sequence at its end,
// which is returned as rest.
func decode(input []byte) (cmds []game.Command, rest []byte) {
	for i := 0; i < len(input); i++ {
		b := input[i]
		if b != keyEsc {
			if cmd, ok := keyBindings[b]; ok {
				cmds = append(cmds, cmd)
			}
			continue
		}

		if i+1 >= len(input) {
			return cmds, input[i:]
		}
		if input[i+1] != '[' && input[i+1] != 'O' {
			cmds = append(cmds, game.CmdQuit)
			continue
		}

		// Skip parameter and intermediate bytes up to the final byte
		j := i + 2
		for j < len(input) && (input[j] < 0x40 || input[j] > 0x7e) {
			j++
		}
		if j >= len(input) {
			return cmds, input[i:]
		}
		if cmd, ok := arrowKeys[input[j]]; ok && j == i+2 {
			cmds = append(cmds, cmd)
		}
		i = j
	}
	return cmds, nil
}

// ReadCommands decodes r into commands on out until r is exhausted or ctx is
// done. A trailing ESC that is not completed within escTimeout is the Esc
// key. out is closed on return.
func ReadCommands(ctx context.Context, r io.Reader, out chan<- game.Command) error {
	defer close(out)

	chunks := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				select {
				case chunks <- slices.Clone(buf[:n]):
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	send := func(cmds []game.Command) error {
		for _, cmd := range cmds {
			select {
			case out <- cmd:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}

	var dec Decoder
	var escWait <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunk := <-chunks:
			if err := send(dec.Feed(chunk)); err != nil {
				return err
			}
			escWait = nil
			if dec.Pending() {
				escWait = time.After(escTimeout)
			}
		case <-escWait:
			escWait = nil
			if err := send(dec.Flush()); err != nil {
				return err
			}
		case err := <-readErr:
			if sendErr := send(dec.Flush()); sendErr != nil {
				return sendErr
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
	}
}
