package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/orderms/dashboard/internal/config"
	"github.com/orderms/dashboard/internal/dashboard"
	"github.com/orderms/dashboard/internal/orderstore"
	"github.com/orderms/dashboard/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := config.NewConfig()

	httpClient := &http.Client{Timeout: config.RequestTimeout}
	store := orderstore.NewClient(config.OrderAPIAddress, httpClient, config.Logger)

	feed := dashboard.NewFeed(config.Logger)
	ctrl := dashboard.NewController(store, feed, config.Logger)
	ctrl.Refresh(ctx)

	srv := server.NewServer(ctrl, store, feed, config)
	if err := srv.Run(ctx); err != nil {
		config.Logger.Fatal(err)
	}
}
