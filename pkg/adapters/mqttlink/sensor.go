package mqttlink

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/user/bvfplay/pkg/ports"
)

// ErrNotConnected is returned by Sensor.Active while the broker is unreachable.
var ErrNotConnected = errors.New("mqtt not connected")

// Sensor implements ports.LevelSensor from retained level messages on a topic.
// Payloads "1", "on" and "true" assert the signal; "0", "off" and "false" clear it.
type Sensor struct {
	client mqtt.Client
	topic  string
	logger ports.Logger

	mu     sync.RWMutex
	active bool
}

// NewSensor subscribes to topic and returns a Sensor tracking its last level.
func NewSensor(client mqtt.Client, topic string, qos byte, timeout time.Duration, logger ports.Logger) (*Sensor, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s := &Sensor{client: client, topic: topic, logger: logger.WithComponent("mqtt")}
	if err := wait(client.Subscribe(topic, qos, s.handle), timeout, "subscribe "+topic); err != nil {
		return nil, err
	}
	s.logger.Debug("Subscribed to %s", topic)
	return s, nil
}

func (s *Sensor) handle(_ mqtt.Client, msg mqtt.Message) {
	level, ok := parseLevel(msg.Payload())
	if !ok {
		s.logger.Warn("Ignoring payload %q on %s", msg.Payload(), msg.Topic())
		return
	}
	s.mu.Lock()
	s.active = level
	s.mu.Unlock()
}

func parseLevel(payload []byte) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(string(payload))) {
	case "1", "on", "true":
		return true, true
	case "0", "off", "false":
		return false, true
	}
	return false, false
}

// Active reports the last level received.
func (s *Sensor) Active(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !s.client.IsConnected() {
		return false, ErrNotConnected
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, nil
}

// Close unsubscribes from the topic.
func (s *Sensor) Close() error {
	return wait(s.client.Unsubscribe(s.topic), DefaultTimeout, "unsubscribe "+s.topic)
}

var _ ports.LevelSensor = (*Sensor)(nil)
