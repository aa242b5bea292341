// Package main provides the applyhome subscription collector command-line tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"applyhome/cmd/applyhome/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.ExecuteContext(ctx)
}
