package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Andrics/Beyond-Earth/pkg/config"
	"github.com/Andrics/Beyond-Earth/pkg/events"
	"github.com/Andrics/Beyond-Earth/pkg/kafka"
	kafkaconfig "github.com/Andrics/Beyond-Earth/pkg/kafka/config"
	kafkamiddleware "github.com/Andrics/Beyond-Earth/pkg/kafka/middleware"
	"github.com/Andrics/Beyond-Earth/pkg/logger"
)

const (
	ServiceName = "beyond-earth-notifier"
	GroupID     = "beyond-earth-notifier"
)

// The notifier tails the event topics and turns lifecycle events into
// customer notifications. Delivery is currently a structured log line; the
// fan-out to mail or push providers hangs off handleEvent.
func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Beyond Earth notifier")

	kafkaCfg := kafkaconfig.Load()
	log := cfg.Log

	topics := []string{
		cfg.BookingEventsTopic,
		cfg.LandEventsTopic,
		cfg.SubscriptionEventsTopic,
	}

	consumers := make([]*kafka.Consumer, 0, len(topics))
	for _, topic := range topics {
		consumer, err := kafka.NewConsumer(kafkaCfg, topic, GroupID, cfg.EventsDLQTopic, handleEvent(log))
		if err != nil {
			log.Fatal("Failed to create consumer", "topic", topic, "error", err)
		}
		consumer.Use(kafkamiddleware.LoggingConsumerMiddleware())
		consumers = append(consumers, consumer)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for i, consumer := range consumers {
		wg.Add(1)
		go func(topic string, c *kafka.Consumer) {
			defer wg.Done()
			log.Info("Consumer started", "topic", topic)
			if err := c.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error("Consumer stopped with error", "topic", topic, "error", err)
			}
		}(topics[i], consumer)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown
	log.Info("Shutdown signal received", "signal", sig)

	cancel()
	for _, consumer := range consumers {
		if err := consumer.Close(); err != nil {
			log.Error("Failed to close consumer", "error", err)
		}
	}
	wg.Wait()
	log.Info("Notifier stopped gracefully")
}

func handleEvent(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		switch msg.GetEventType() {
		case events.TypeBookingCreated:
			var payload events.BookingCreated
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				return err
			}
			log.Info("Notification: booking confirmed",
				"user_id", payload.UserID,
				"booking_id", payload.BookingID,
				"flight_date", payload.FlightDate,
			)

		case events.TypeBookingCancelled:
			var payload events.BookingCancelled
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				return err
			}
			log.Info("Notification: booking cancelled",
				"user_id", payload.UserID,
				"booking_id", payload.BookingID,
			)

		case events.TypeLandPurchased:
			var payload events.LandPurchased
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				return err
			}
			log.Info("Notification: land certificate issued",
				"user_id", payload.UserID,
				"certificate", payload.CertificateNumber,
				"land_type", payload.LandType,
			)

		case events.TypeSubscriptionActivated:
			var payload events.SubscriptionActivated
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				return err
			}
			log.Info("Notification: subscription activated",
				"user_id", payload.UserID,
				"plan", payload.Plan,
				"end_date", payload.EndDate,
			)

		default:
			log.Warn("Unknown event type, skipping", "event_type", msg.GetEventType(), "key", msg.Key)
		}

		return nil
	}
}
