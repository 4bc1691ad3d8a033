package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ergo-assist-be/internal/config"
	"ergo-assist-be/pkg/events"
	pktNats "ergo-assist-be/pkg/nats"

	"github.com/fatih/color"
)

// Tails the shared event stream: verdict completions and logins as they
// reach external consumers. Handy when checking broker wiring without a
// downstream system attached.
func main() {
	color.Cyan("📡 ErgoAssist event tailer")

	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Unable to connect to NATS: %v", err)
	}
	defer sub.Close()

	err = sub.Subscribe("events.>", "event-tailer", func(_ context.Context, event events.Event) error {
		color.Green("%s", pktNats.FormatEventLine(event))
		return nil
	})
	if err != nil {
		log.Fatalf("Unable to subscribe to event stream: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
