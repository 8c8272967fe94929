package main

import (
	"io"
	"log"
	"os"
)

const (
	LogErrorColor = "\033[31m"
	LogInfoColor  = "\033[32m"
	LogColorReset = "\033[0m"
)

// Color constants for component prefixes
const (
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorReset   = "\033[0m"
)

var (
	appLog     = newLogger("APP", ColorBlue, os.Stdout)
	sessionLog = newLogger("SESSION", ColorCyan, os.Stdout)
	httpLog    = newLogger("HTTP", ColorMagenta, os.Stdout)
)

// newLogger returns a std logger whose lines start with a coloured [name] tag.
func newLogger(name, color string, w io.Writer) *log.Logger {
	return log.New(w, color+"["+name+"]"+ColorReset+" ", log.LstdFlags|log.Lmsgprefix)
}
