// Package notify announces schedule changes to subscribers over MQTT.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	publishQoS     = 1
	publishTimeout = 5 * time.Second
	disconnectWait = 250
)

// ScheduleUpdated is published after a month is replaced.
type ScheduleUpdated struct {
	Zone      string    `json:"zone"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Records   int       `json:"records"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Publisher interface {
	PublishScheduleUpdated(ctx context.Context, evt ScheduleUpdated) error
	Close()
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishScheduleUpdated(context.Context, ScheduleUpdated) error { return nil }
func (Nop) Close() {}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("Connected to MQTT broker")
}

type MQTTPublisher struct {
	client mqtt.Client
	prefix string
}

// NewMQTTPublisher connects to brokerURL. Topics are "{prefix}/solat/{zone}/updated".
func NewMQTTPublisher(brokerURL, clientID, prefix string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info().Str("broker", brokerURL).Msg("MQTT publisher initialized")
	return NewMQTTPublisherWithClient(client, prefix), nil
}

// NewMQTTPublisherWithClient wraps a connected client.
func NewMQTTPublisherWithClient(client mqtt.Client, prefix string) *MQTTPublisher {
	return &MQTTPublisher{client: client, prefix: strings.Trim(prefix, "/")}
}

// Topic is where updates for zone are published.
func (p *MQTTPublisher) Topic(zone string) string {
	return fmt.Sprintf("%s/solat/%s/updated", p.prefix, zone)
}

func (p *MQTTPublisher) PublishScheduleUpdated(ctx context.Context, evt ScheduleUpdated) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	topic := p.Topic(evt.Zone)
	token := p.client.Publish(topic, publishQoS, true, payload)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Msg("Schedule update published")
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(disconnectWait)
	log.Info().Msg("MQTT publisher disconnected")
}
