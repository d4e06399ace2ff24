package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	studyhallcmd "github.com/louisbranch/studyhall/internal/cmd/studyhall"
	"github.com/louisbranch/studyhall/internal/platform/config"
)

// main starts the study progress service over MCP on stdio or HTTP.
func main() {
	cfg, err := studyhallcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[STUDYHALL] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := studyhallcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
