package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
)

func main() {
	mode := flag.String("mode", "serve", "serve: websocket server, terminal: local game")
	pilot := flag.Bool("autopilot", false, "start the terminal game on autopilot")
	flag.Parse()

	cfg, err := LoadConfig()
	if err != nil {
		appLog.Fatalf("%s[ERROR]%s loading config: %v", LogErrorColor, LogColorReset, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "serve":
		gin.SetMode(cfg.GinMode)
		if err := NewServer(cfg).Run(ctx); err != nil {
			appLog.Fatalf("%s[ERROR]%s server error: %v", LogErrorColor, LogColorReset, err)
		}
	case "terminal":
		// Log lines would tear the board
		for _, l := range []*log.Logger{appLog, sessionLog, httpLog} {
			l.SetOutput(io.Discard)
		}
		if err := runTerminal(ctx, cfg, *pilot); err != nil {
			log.Fatalf("terminal: %v", err)
		}
	default:
		appLog.Fatalf("%s[ERROR]%s unknown mode %q", LogErrorColor, LogColorReset, *mode)
	}
}
