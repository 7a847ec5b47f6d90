// Package announce publishes next-prayer changes over MQTT for mosque
// display devices. The broker is optional; when none is configured the
// announcer is a silent no-op.
package announce

import (
	"encoding/json"
	"fmt"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Noor-Labs-LLC/minbar/internal/model"
)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// Announcer owns the MQTT client used for athan announcements.
type Announcer struct {
	client mqtt.Client
}

// NewAnnouncer connects to the broker. brokerURL like "tcp://host:1883".
func NewAnnouncer(brokerURL, clientID string) (*Announcer, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &Announcer{client: client}, nil
}

// announcement is the wire payload displays subscribe to.
type announcement struct {
	PrayerName string `json:"prayer_name"`
	Time       string `json:"time"`
	Remaining  string `json:"remaining"`
	Location   string `json:"location"`
}

// AnnounceNext publishes the projection to athan/<location>/announcements.
func (a *Announcer) AnnounceNext(location string, next model.NextPrayerProjection) error {
	payload, err := json.Marshal(announcement{
		PrayerName: next.PrayerName,
		Time:       next.Time.Clock12(),
		Remaining:  next.Remaining,
		Location:   location,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal announcement: %w", err)
	}

	topic := fmt.Sprintf("athan/%s/announcements", topicSegment(location))
	token := a.client.Publish(topic, 1, true, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish announcement to %s: %w", topic, token.Error())
	}

	log.Info().Str("topic", topic).Str("prayer", next.PrayerName).Msg("published athan announcement")
	return nil
}

// Close disconnects from the broker.
func (a *Announcer) Close() {
	a.client.Disconnect(250)
}

// topicSegment lowers a place label into a safe topic segment.
func topicSegment(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.NewReplacer(" ", "-", "/", "-", "+", "-", "#", "-", ",", "").Replace(s)
	if s == "" {
		s = "unknown"
	}
	return s
}
