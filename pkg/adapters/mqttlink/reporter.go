package mqttlink

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/user/bvfplay/pkg/pipeline"
	"github.com/user/bvfplay/pkg/ports"
)

// Reporter implements ports.StatsReporter by publishing msgpack-encoded
// PartStats to <topic>/part/<n>.
type Reporter struct {
	client  mqtt.Client
	topic   string
	qos     byte
	timeout time.Duration
}

// NewReporter creates a new Reporter.
func NewReporter(client mqtt.Client, topic string, qos byte, timeout time.Duration) *Reporter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Reporter{client: client, topic: topic, qos: qos, timeout: timeout}
}

// Report publishes stats. It fails fast when the broker is unreachable.
func (r *Reporter) Report(ctx context.Context, stats pipeline.PartStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !r.client.IsConnected() {
		return ErrNotConnected
	}
	payload, err := EncodeStats(stats)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("%s/part/%d", r.topic, stats.Part)
	return wait(r.client.Publish(topic, r.qos, false, payload), r.timeout, "publish "+topic)
}

// EncodeStats serializes stats as msgpack.
func EncodeStats(stats pipeline.PartStats) ([]byte, error) {
	data, err := msgpack.Marshal(&stats)
	if err != nil {
		return nil, fmt.Errorf("encode stats: %w", err)
	}
	return data, nil
}

// DecodeStats parses a payload produced by EncodeStats.
func DecodeStats(data []byte) (pipeline.PartStats, error) {
	var stats pipeline.PartStats
	if err := msgpack.Unmarshal(data, &stats); err != nil {
		return stats, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}

var _ ports.StatsReporter = (*Reporter)(nil)
