package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/blogkeeper/internal/app"
	"github.com/dmitrijs2005/blogkeeper/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg := config.LoadConfig()
	a, err := app.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer a.Close()

	if _, err := a.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
