package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/detailerhq/booking-api/internal/config"
	"github.com/detailerhq/booking-api/internal/email"
	bookingService "github.com/detailerhq/booking-api/internal/service/booking"
	"github.com/detailerhq/booking-api/pkg/logger"
	redisBroker "github.com/detailerhq/booking-api/pkg/messaging/redis"
)

// The notifier subscribes to booking lifecycle events and sends
// confirmation mail to the client. It runs as a separate process so mail
// latency never touches the API path.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Log.Pretty,
		Output:     os.Stdout,
	})

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     5,
		MinIdleConns: 1,
	}, log.Zerolog())
	if err != nil {
		log.Fatal(err, "failed to connect to Redis")
	}
	defer broker.Close()

	sender := email.NewSMTPSender(cfg.SMTP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channels := map[string]string{
		bookingService.EventBookingCreated:     "Booking confirmed",
		bookingService.EventBookingCancelled:   "Booking cancelled",
		bookingService.EventBookingRescheduled: "Booking rescheduled",
	}

	for channel, subject := range channels {
		messages, err := broker.Subscribe(ctx, channel)
		if err != nil {
			log.Fatal(err, "failed to subscribe", "channel", channel)
		}
		go consume(log, sender, subject, channel, messages)
	}

	log.Info("notifier started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("notifier shutting down")
}

func consume(log *logger.Logger, sender email.Sender, subject, channel string, messages <-chan []byte) {
	for payload := range messages {
		var event bookingService.BookingEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			log.Error(err, "failed to decode event", "channel", channel)
			continue
		}
		if event.UserEmail == "" {
			continue
		}

		body := fmt.Sprintf(
			"<p>%s</p><p>Service: %s<br>Date: %s</p>",
			subject, event.ServiceName, event.Date.Format("2006-01-02 15:04"),
		)
		if err := sender.Send(event.UserEmail, subject, body); err != nil {
			log.Error(err, "failed to send notification", "channel", channel)
			continue
		}
		log.Info("notification sent", "channel", channel, "submission_id", event.SubmissionID.String())
	}
}
