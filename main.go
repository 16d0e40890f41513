package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"nitscrape/internal/commands"
)

func main() {
	log.SetFlags(log.LstdFlags)

	// Ctrl-C cancels the context so a running crawl checkpoints before
	// exiting.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	commands.ExecuteContext(ctx)
}
