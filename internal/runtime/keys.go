package runtime

import (
	"context"
	"io"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// escTimeout is how long the decoder waits for the continuation bytes
// of an escape sequence before treating the ESC as a bare key press.
const escTimeout = 30 * time.Millisecond

// KeyboardSource is the input producer: it reads raw terminal bytes,
// decodes them (including multi-byte arrow-key escape sequences) and
// submits the resulting commands to the engine. The terminal is
// expected to be in raw mode; raw-mode switching is the caller's job.
type KeyboardSource struct {
	r       io.Reader
	bytes   chan byte
	timeout time.Duration
}

// NewKeyboardSource creates a producer reading from r.
func NewKeyboardSource(r io.Reader) *KeyboardSource {
	return &KeyboardSource{
		r:       r,
		bytes:   make(chan byte, 16),
		timeout: escTimeout,
	}
}

// Run decodes keys and submits commands until the context is cancelled
// or the reader is exhausted. Unrecognized bytes simply yield no
// command this cycle.
func (k *KeyboardSource) Run(ctx context.Context, engine *Engine) {
	go k.pump(ctx)

	for {
		b, ok := k.next(ctx)
		if !ok {
			return
		}

		cmd := core.CmdNone
		if b == 0x1b {
			cmd = k.decodeEscape(ctx)
		} else {
			cmd = decodeKey(b)
		}
		if cmd == core.CmdNone {
			continue
		}
		if !engine.Submit(cmd) {
			return
		}
		if cmd == core.CmdQuit {
			return
		}
	}
}

// pump moves bytes from the blocking reader onto the channel so the
// decoder can apply timeouts while waiting for sequence continuations.
func (k *KeyboardSource) pump(ctx context.Context) {
	defer close(k.bytes)
	buf := make([]byte, 1)
	for {
		n, err := k.r.Read(buf)
		if n > 0 {
			select {
			case <-ctx.Done():
				return
			case k.bytes <- buf[0]:
			}
		}
		if err != nil {
			return
		}
	}
}

// next blocks for the next raw byte.
func (k *KeyboardSource) next(ctx context.Context) (byte, bool) {
	select {
	case <-ctx.Done():
		return 0, false
	case b, ok := <-k.bytes:
		return b, ok
	}
}

// nextWithin waits for a continuation byte with a short timeout.
func (k *KeyboardSource) nextWithin(ctx context.Context, d time.Duration) (byte, bool) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return 0, false
	case <-timer.C:
		return 0, false
	case b, ok := <-k.bytes:
		return b, ok
	}
}

// decodeEscape handles a received ESC byte: either the start of an
// arrow-key CSI sequence or, after the timeout, a bare escape (pause).
func (k *KeyboardSource) decodeEscape(ctx context.Context) core.Command {
	b, ok := k.nextWithin(ctx, k.timeout)
	if !ok {
		return core.CmdTogglePause
	}
	if b != '[' {
		// Not a CSI sequence; treat the ESC as a bare key and decode the
		// follow-up byte on its own.
		if cmd := decodeKey(b); cmd != core.CmdNone {
			return cmd
		}
		return core.CmdTogglePause
	}

	final, ok := k.nextWithin(ctx, k.timeout)
	if !ok {
		// Truncated sequence: no input this cycle.
		return core.CmdNone
	}
	switch final {
	case 'A': // up arrow
		return core.CmdRotateCW
	case 'B': // down arrow
		return core.CmdSoftDrop
	case 'C': // right arrow
		return core.CmdMoveRight
	case 'D': // left arrow
		return core.CmdMoveLeft
	default:
		return core.CmdNone
	}
}

// decodeKey maps a single byte to a command.
func decodeKey(b byte) core.Command {
	switch b {
	case 'a', 'h':
		return core.CmdMoveLeft
	case 'd', 'l':
		return core.CmdMoveRight
	case 's', 'j':
		return core.CmdSoftDrop
	case 'w', 'k', 'x':
		return core.CmdRotateCW
	case 'z':
		return core.CmdRotateCCW
	case ' ':
		return core.CmdHardDrop
	case 'p':
		return core.CmdTogglePause
	case 'q', 0x03, 0x04: // q, ctrl+c, ctrl+d
		return core.CmdQuit
	default:
		return core.CmdNone
	}
}
