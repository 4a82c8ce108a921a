package config

import (
	"fmt"
	"io"
	"os"
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf prints a formatted message to stderr and exits with status 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(1)
}

// ExitOnError calls Exitf with prefix when err is non-nil.
func ExitOnError(prefix string, err error) {
	if err != nil {
		Exitf("%s: %v", prefix, err)
	}
}
