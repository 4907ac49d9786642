package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf-project/spf/internal/interfaces/cli"
	_ "github.com/spf-project/spf/internal/plugins"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(cli.Execute(ctx, cli.NewCLIContainer(nil)))
}
