package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/muesli/termenv"
)

var crashReset atomic.Pointer[func()]

// SetCrashReset registers the cleanup run by HandleCrash, replacing any previous one
func SetCrashReset(fn func()) {
	crashReset.Store(&fn)
}

// EmergencyReset writes the sequences that leave the alternate screen and restore cursor and attributes
func EmergencyReset(w io.Writer) {
	fmt.Fprint(w,
		termenv.CSI+termenv.ShowCursorSeq,
		termenv.CSI+termenv.ExitAltScreenSeq,
		termenv.CSI+termenv.ResetSeq+"m",
	)
	if f, ok := w.(*os.File); ok {
		_ = f.Sync()
	}
}

// HandleCrash restores the terminal, prints r with the stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := crashReset.Load(); fn != nil {
		(*fn)()
	} else {
		EmergencyReset(os.Stdout)
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

// Go runs fn on a new goroutine that restores the terminal on panic
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
