// Package mqttlink connects the player to an MQTT broker: a start signal
// subscribed from a topic and per-part stats published to another.
package mqttlink

import (
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/user/bvfplay/pkg/ports"
)

// DefaultTimeout bounds connect, subscribe and publish round trips.
const DefaultTimeout = 5 * time.Second

// Options configures the broker connection.
type Options struct {
	Broker   string // host:port or a full tcp:// URL
	ClientID string
	Username string
	Password string
	Timeout  time.Duration
}

// Connect dials the broker with auto-reconnect enabled.
func Connect(opts Options, logger ports.Logger) (mqtt.Client, error) {
	log := logger.WithComponent("mqtt")
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	broker := opts.Broker
	if !strings.Contains(broker, "://") {
		broker = "tcp://" + broker
	}

	co := mqtt.NewClientOptions()
	co.AddBroker(broker)
	co.SetClientID(opts.ClientID)
	if opts.Username != "" {
		co.SetUsername(opts.Username)
		co.SetPassword(opts.Password)
	}
	co.SetAutoReconnect(true)
	co.SetConnectRetry(true)
	co.SetConnectRetryInterval(2 * time.Second)
	co.SetMaxReconnectInterval(30 * time.Second)
	co.OnConnect = func(mqtt.Client) {
		log.Debug("Connected to %s", broker)
	}
	co.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn("Connection to %s lost: %v", broker, err)
	}

	client := mqtt.NewClient(co)
	token := client.Connect()
	if !token.WaitTimeout(opts.Timeout) {
		return nil, fmt.Errorf("mqtt connect to %s: timeout", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}
	return client, nil
}

func wait(token mqtt.Token, timeout time.Duration, op string) error {
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt %s: timeout", op)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt %s: %w", op, err)
	}
	return nil
}
