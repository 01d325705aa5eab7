package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Action is a control decoded from keyboard input
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionMute
)

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// decodeKeys maps one read chunk to actions
// A lone ESC quits; ESC that starts a longer sequence (arrows, function keys) is ignored with its tail
func decodeKeys(data []byte, emit func(Action)) {
	if len(data) == 1 && data[0] == keyEscape {
		emit(ActionQuit)
		return
	}
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case keyEscape:
			return
		case keyCtrlC, 'q', 'Q':
			emit(ActionQuit)
		case ' ', 'p':
			emit(ActionPause)
		case 'm', 'M':
			emit(ActionMute)
		}
	}
}

// watchReader decodes r until it fails or returns EOF
func watchReader(r io.Reader, emit func(Action)) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			decodeKeys(buf[:n], emit)
		}
		if err != nil {
			return
		}
	}
}

// WatchKeys switches in to raw mode when it is a terminal and decodes keys on a background goroutine
// The returned restore must be called before exit to return the terminal to cooked mode
func WatchKeys(in *os.File, emit func(Action)) (restore func(), err error) {
	restore = func() {}
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		restore = func() { _ = term.Restore(fd, state) }
	}
	Go(func() { watchReader(in, emit) })
	return restore, nil
}
