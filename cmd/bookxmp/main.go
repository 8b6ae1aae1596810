package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/jisj/bookxmp/internal/cli"
	"github.com/jisj/bookxmp/pkg/bookxmp"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(bookxmp.ExitPanic)
		}
	}()

	if os.Getenv("BOOKXMP_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(bookxmp.ExitCodeForError(err))
	}
}
