// pubsubsetup provisions the notification topics and the worker subscription
// on the pubsub emulator for local development. Idempotent.
package main

import (
	"context"
	"strings"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"

	"github.com/podiumlink/podiumlink/internal/config"
)

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := pubsub.NewClient(ctx, cfg.PubsubProjectID)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := ensureTopic(ctx, client, cfg.PubsubTopic, cfg.PubsubSubscription); err != nil {
		return err
	}
	return ensureTopic(ctx, client, cfg.PubsubDeliveryTopic, "")
}

func ensureTopic(ctx context.Context, client *pubsub.Client, topicID, subscriptionID string) error {
	topic, err := client.CreateTopic(ctx, topicID)
	if err != nil && !strings.Contains(err.Error(), "Topic already exists") {
		return err
	}
	if topic == nil {
		topic = client.Topic(topicID)
	}
	log.WithField("topic", topicID).Info("topic ready")

	if subscriptionID == "" {
		return nil
	}
	_, err = client.CreateSubscription(ctx, subscriptionID, pubsub.SubscriptionConfig{Topic: topic})
	if err != nil && !strings.Contains(err.Error(), "Subscription already exists") {
		return err
	}
	log.WithField("subscription", subscriptionID).Info("subscription ready")
	return nil
}

func main() {
	if err := run(); err != nil {
		log.WithError(err).Fatal("pubsub setup failed")
	}
}
