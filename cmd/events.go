/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/blogpessoal/blogapi/config"
	"github.com/blogpessoal/blogapi/internal/events"
	"github.com/blogpessoal/blogapi/internal/logging"
	"github.com/blogpessoal/blogapi/internal/mq"
	"github.com/spf13/cobra"
)

var (
	eventsChannel  string
	eventsListener string
)

// eventsCmd groups commands that work with the lifecycle event stream.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect blog lifecycle events",
}

var eventsListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Subscribe to the events channel and log every event received",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		logger := logging.New(os.Stdout, cfg.LogLevel)

		channel := eventsChannel
		if channel == "" {
			channel = cfg.MQ.EventsChannel
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		broker, err := mq.Open(ctx, cfg.MQ)
		if err != nil {
			return err
		}
		if broker == nil {
			return fmt.Errorf("MQ_BACKEND must be %q or %q", config.MQBackendRabbitMQ, config.MQBackendPubSub)
		}
		defer broker.Close()

		logger.Info("listening for events", slog.String("channel", channel), slog.String("listener", eventsListener))
		err = broker.Subscribe(ctx, channel, eventsListener, func(ctx context.Context, msg mq.Message) error {
			event, err := events.Decode(msg)
			if err != nil {
				// Malformed payloads are acked and dropped.
				logger.WarnContext(ctx, "discarding malformed event", slog.String("message_id", msg.ID), slog.Any("error", err))
				return nil
			}
			logger.InfoContext(ctx, "event received",
				slog.String("type", event.Type),
				slog.Int("id", event.ID),
				slog.Time("occurred_at", event.OccurredAt),
				slog.String("message_id", msg.ID),
			)
			return nil
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListenCmd)

	eventsListenCmd.Flags().StringVar(&eventsChannel, "channel", "", "events channel (defaults to EVENTS_CHANNEL)")
	eventsListenCmd.Flags().StringVar(&eventsListener, "listener", "audit", "listener name; listeners with the same name share deliveries")
}
