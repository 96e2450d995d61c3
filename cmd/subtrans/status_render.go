package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusOK statusKind = iota
	statusError
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

func statusLabel(kind statusKind, colorize bool) string {
	switch kind {
	case statusOK:
		if colorize {
			return ansiGreen + "OK" + ansiReset
		}
		return "OK"
	default:
		if colorize {
			return ansiRed + "FAILED" + ansiReset
		}
		return "FAILED"
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
