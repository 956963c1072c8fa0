//go:build !wasm
// +build !wasm

package console

import (
	"fmt"
	"os"
)

// Native builds print to stderr so the same call sites work outside the browser.

func Log(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
}

func Warn(args ...any) {
	fmt.Fprintln(os.Stderr, append([]any{"WARN:"}, args...)...)
}

func Error(args ...any) {
	fmt.Fprintln(os.Stderr, append([]any{"ERROR:"}, args...)...)
}

// Writer writes to stderr.
type Writer struct{}

func (Writer) Write(p []byte) (int, error) {
	return os.Stderr.Write(p)
}

func (Writer) Sync() error { return os.Stderr.Sync() }
