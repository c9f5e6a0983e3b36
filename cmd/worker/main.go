package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"

	produceractor "github.com/podiumlink/podiumlink/internal/actors/pubsub/producer"
	subscriberactor "github.com/podiumlink/podiumlink/internal/actors/pubsub/subscriber"
	"github.com/podiumlink/podiumlink/internal/config"
	"github.com/podiumlink/podiumlink/internal/core/usecase"
)

func init() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)

	// Only log the DebugLevel severity or above.
	log.SetLevel(log.DebugLevel)
}

// The worker consumes raw notification events emitted by the server, drops
// the undeliverable ones, fills in default subjects and republishes them on
// the deliveries topic for the downstream mailer.
func run() error {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := pubsub.NewClient(ctx, cfg.PubsubProjectID)
	if err != nil {
		return err
	}
	defer client.Close()

	producer, err := produceractor.NewProducer(client.Topic(cfg.PubsubDeliveryTopic))
	if err != nil {
		return err
	}
	notifier := usecase.NewNotifier(producer)

	subscriber := subscriberactor.NewSubscriber(subscriberactor.SubscriberArgs{
		Subscription:        client.Subscription(cfg.PubsubSubscription),
		NotificationHandler: notifier,
	})

	// start subscriber
	go func(ctx context.Context) {
		if err := subscriber.Consume(ctx); err != nil {
			panic(err)
		}
	}(ctx)

	http.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	go func() {
		if err := http.ListenAndServe(cfg.HTTPAddr, nil); err != nil {
			panic(err)
		}
	}()

	log.
		WithField("http-server-addr", cfg.HTTPAddr).
		WithField("subscription", cfg.PubsubSubscription).
		Info("worker up or soon to be up. listening to SIGTERM, SIGINT, SIGQUIT for stoping the worker")

	// Wait for signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-ch

	return nil
}

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}
