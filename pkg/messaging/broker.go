package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// Message is the envelope published on donation and notification channels
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Channels used by the platform
const (
	ChannelDonations     = "donations"
	ChannelNotifications = "notifications"
)

// NoopBroker discards every message. Used when no broker is configured.
type NoopBroker struct{}

func (NoopBroker) Publish(_ context.Context, _ string, _ interface{}) error { return nil }
func (NoopBroker) Close() error                                             { return nil }
