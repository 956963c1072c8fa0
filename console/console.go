//go:build js || wasm

package console

import (
	"bytes"
	"syscall/js"
)

func Log(args ...any) {
	js.Global().Get("console").Call("log", args...)
}

func Warn(args ...any) {
	js.Global().Get("console").Call("warn", args...)
}

func Error(args ...any) {
	js.Global().Get("console").Call("error", args...)
}

// Writer forwards each written line to the browser console. Lines that carry
// a zap level of WARN or higher go to console.warn / console.error so the
// devtools filters work.
type Writer struct{}

func (Writer) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte{'\n'}) {
		s := string(line)
		switch {
		case bytes.Contains(line, []byte("\tERROR\t")), bytes.Contains(line, []byte("\tDPANIC\t")),
			bytes.Contains(line, []byte("\tPANIC\t")), bytes.Contains(line, []byte("\tFATAL\t")):
			Error(s)
		case bytes.Contains(line, []byte("\tWARN\t")):
			Warn(s)
		default:
			Log(s)
		}
	}
	return len(p), nil
}

// Sync is a no-op; the browser console is unbuffered.
func (Writer) Sync() error { return nil }
