package main

import (
	"context"
	"fmt"
	"fromtodk/internal/cli"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "fromtodk:", err)
		stop()
		os.Exit(1)
	}
}
