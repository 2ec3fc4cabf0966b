package ui

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/hunt/game"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []game.Command
	}{
		{"empty", "", nil},
		{"wasd", "wasd", []game.Command{game.CmdMoveUp, game.CmdMoveLeft, game.CmdMoveDown, game.CmdMoveRight}},
		{"upper case", "WD", []game.Command{game.CmdMoveUp, game.CmdMoveRight}},
		{"csi arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []game.Command{game.CmdMoveUp, game.CmdMoveDown, game.CmdMoveRight, game.CmdMoveLeft}},
		{"ss3 arrows", "\x1bOA\x1bOD", []game.Command{game.CmdMoveUp, game.CmdMoveLeft}},
		{"consume", " e", []game.Command{game.CmdConsume, game.CmdConsume}},
		{"repel", "rR", []game.Command{game.CmdRepel, game.CmdRepel}},
		{"quit keys", "qQ\x03", []game.Command{game.CmdQuit, game.CmdQuit, game.CmdQuit}},
		{"lone escape", "\x1b", []game.Command{game.CmdQuit}},
		{"escape then key", "\x1bw", []game.Command{game.CmdQuit, game.CmdMoveUp}},
		{"unknown bytes", "xyz12\n", nil},
		{"other csi skipped", "\x1b[3~w", []game.Command{game.CmdMoveUp}},
		{"modified arrow skipped", "\x1b[1;5Aa", []game.Command{game.CmdMoveLeft}},
		{"truncated sequence", "d\x1b[", []game.Command{game.CmdMoveRight}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode([]byte(tt.input))
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecoderSplitSequence(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []game.Command
	}{
		{"csi split after bracket", []string{"\x1b[", "A"}, []game.Command{game.CmdMoveUp}},
		{"csi split after escape", []string{"w\x1b", "[D"}, []game.Command{game.CmdMoveUp, game.CmdMoveLeft}},
		{"ss3 split", []string{"\x1bO", "B"}, []game.Command{game.CmdMoveDown}},
		{"parameters split", []string{"\x1b[1;", "5Ad"}, []game.Command{game.CmdMoveRight}},
		{"escape then plain key", []string{"\x1b", "w"}, []game.Command{game.CmdQuit, game.CmdMoveUp}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Decoder
			var got []game.Command
			for _, chunk := range tt.chunks {
				got = append(got, d.Feed([]byte(chunk))...)
			}
			if d.Pending() {
				t.Error("bytes still held back after a complete sequence")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecoderHoldsTrailingEscape(t *testing.T) {
	var d Decoder
	if got := d.Feed([]byte("\x1b")); len(got) != 0 {
		t.Errorf("got %v for a trailing ESC, want nothing yet", got)
	}
	if !d.Pending() {
		t.Fatal("trailing ESC not held back")
	}
	if got := d.Flush(); !slices.Equal(got, []game.Command{game.CmdQuit}) {
		t.Errorf("got %v on flush, want [quit]", got)
	}

	d.Feed([]byte("\x1b["))
	if got := d.Flush(); len(got) != 0 {
		t.Errorf("got %v for a truncated sequence, want nothing", got)
	}
}

// chunkReader returns one chunk per Read.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks = r.chunks[1:]
	return n, nil
}

func TestReadCommandsSplitSequence(t *testing.T) {
	out := make(chan game.Command, 8)
	r := &chunkReader{chunks: []string{"\x1b[", "A", "\x1bO", "C"}}
	if err := ReadCommands(context.Background(), r, out); err != nil {
		t.Fatalf("ReadCommands: %v", err)
	}

	var got []game.Command
	for cmd := range out {
		got = append(got, cmd)
	}
	want := []game.Command{game.CmdMoveUp, game.CmdMoveRight}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadCommandsLoneEscapeTimesOut(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	out := make(chan game.Command, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ReadCommands(ctx, pr, out)

	if _, err := pw.Write([]byte{0x1b}); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case cmd := <-out:
		if cmd != game.CmdQuit {
			t.Errorf("got %v, want quit", cmd)
		}
	case <-time.After(time.Second):
		t.Fatal("lone ESC never decoded")
	}
}

func TestReadCommands(t *testing.T) {
	out := make(chan game.Command, 8)
	err := ReadCommands(context.Background(), strings.NewReader("w \x1b[C"), out)
	if err != nil {
		t.Fatalf("ReadCommands: %v", err)
	}

	var got []game.Command
	for cmd := range out {
		got = append(got, cmd)
	}
	want := []game.Command{game.CmdMoveUp, game.CmdConsume, game.CmdMoveRight}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReadCommandsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Unbuffered and never read, so the send can only give up on ctx
	out := make(chan game.Command)
	err := ReadCommands(ctx, strings.NewReader("w"), out)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if _, ok := <-out; ok {
		t.Error("expected channel closed")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestReadCommandsError(t *testing.T) {
	out := make(chan game.Command, 1)
	err := ReadCommands(context.Background(), failingReader{}, out)
	if err == nil || !strings.Contains(err.Error(), "device gone") {
		t.Errorf("got %v, want wrapped read error", err)
	}
}
