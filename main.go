package main

import (
	"context"
	"time"

	"sessiond/internal/activity"
	"sessiond/internal/authapi"
	"sessiond/internal/configuration"
	"sessiond/internal/core"
	"sessiond/internal/database"
	"sessiond/internal/effects"
	"sessiond/internal/messaging"
	"sessiond/internal/store"
	"sessiond/internal/toast"
	"sessiond/internal/workers"

	"go.uber.org/zap"
)

func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))

	config := configuration.Read()
	core.NewLogger(config.App.LogLevel)

	bus := messaging.NewBus()
	defer bus.Close()

	sessionStore := store.New(bus.Publisher(configuration.TopicActions))
	tokenStore := core.NewTokenStore(config.Tokens)
	defer tokenStore.Close()

	toaster := toast.NewEmitter(bus.Publisher(configuration.TopicToasts))
	toast.StartSink(bus.Subscriber(configuration.TopicToasts), core.NewToastSink(config.Toasts))

	journal := core.NewJournal(config.Journal)
	if journal != nil {
		defer journal.Close()
		activity.StartJournalWriter(bus.Subscriber(configuration.TopicActions), journal)
	}

	apiClient := authapi.NewClient(config.API, tokenStore.GetAccessToken)

	refreshLeeway := time.Duration(config.App.RefreshLeewaySeconds) * time.Second
	coordinator := effects.NewCoordinator(sessionStore, apiClient, tokenStore, toaster, refreshLeeway)

	db := database.InitDB(config.Database)
	snapshots := database.SnapshotStore{DB: db}

	accessToken, err := tokenStore.GetAccessToken()
	if err != nil {
		zap.L().Error("Failed to read access token on boot", zap.Error(err))
	}
	refreshToken, err := tokenStore.GetRefreshToken()
	if err != nil {
		zap.L().Error("Failed to read refresh token on boot", zap.Error(err))
	}
	database.Hydrate(sessionStore, snapshots, accessToken, refreshToken)
	database.StartSnapshotWriter(bus.Subscriber(configuration.TopicActions), sessionStore, snapshots)

	keeper := &workers.SessionKeeper{
		Store:       sessionStore,
		Effects:     coordinator,
		RunInterval: refreshLeeway / 2,
	}
	go keeper.Start(context.Background())

	core.StartHTTPServer(config, sessionStore, coordinator, journal)
}
