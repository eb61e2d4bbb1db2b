package mqttlink

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/user/bvfplay/pkg/adapters/logger"
	"github.com/user/bvfplay/pkg/pipeline"
)

type fakeToken struct {
	err      error
	timedOut bool
}

func (t *fakeToken) Wait() bool { return !t.timedOut }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return !t.timedOut }
func (t *fakeToken) Error() error { return t.err }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type published struct {
	topic   string
	payload []byte
}

// fakeClient implements the parts of mqtt.Client the adapters use.
type fakeClient struct {
	mqtt.Client

	mu        sync.Mutex
	connected bool
	handlers  map[string]mqtt.MessageHandler
	published []published
	token     *fakeToken
}

func newFakeClient() *fakeClient {
	return &fakeClient{connected: true, handlers: map[string]mqtt.MessageHandler{}, token: &fakeToken{}}
}

func (c *fakeClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *fakeClient) Subscribe(topic string, qos byte, cb mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[topic] = cb
	return c.token
}

func (c *fakeClient) Unsubscribe(topics ...string) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range topics {
		delete(c.handlers, t)
	}
	return c.token
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, published{topic: topic, payload: payload.([]byte)})
	return c.token
}

func (c *fakeClient) deliver(topic, payload string) {
	c.mu.Lock()
	cb := c.handlers[topic]
	c.mu.Unlock()
	cb(c, &fakeMessage{topic: topic, payload: []byte(payload)})
}

type fakeMessage struct {
	mqtt.Message
	topic   string
	payload []byte
}

func (m *fakeMessage) Topic() string   { return m.topic }
func (m *fakeMessage) Payload() []byte { return m.payload }

func TestSensor_TracksLastLevel(t *testing.T) {
	client := newFakeClient()
	s, err := NewSensor(client, "player/start", 1, time.Second, logger.NewNoop())
	if err != nil {
		t.Fatalf("NewSensor failed: %v", err)
	}
	ctx := context.Background()

	if active, _ := s.Active(ctx); active {
		t.Error("expected inactive before any message")
	}

	steps := []struct {
		payload string
		want    bool
	}{
		{"1", true},
		{"garbage", true},
		{" OFF\n", false},
		{"true", true},
		{"0", false},
	}
	for _, step := range steps {
		client.deliver("player/start", step.payload)
		active, err := s.Active(ctx)
		if err != nil {
			t.Fatalf("Active failed: %v", err)
		}
		if active != step.want {
			t.Errorf("after %q expected %v, got %v", step.payload, step.want, active)
		}
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if len(client.handlers) != 0 {
		t.Error("expected topic to be unsubscribed")
	}
}

func TestSensor_Disconnected(t *testing.T) {
	client := newFakeClient()
	s, _ := NewSensor(client, "player/start", 0, time.Second, logger.NewNoop())
	client.connected = false
	if _, err := s.Active(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestNewSensor_SubscribeFailure(t *testing.T) {
	client := newFakeClient()
	client.token = &fakeToken{timedOut: true}
	if _, err := NewSensor(client, "player/start", 0, time.Second, logger.NewNoop()); err == nil {
		t.Error("expected subscribe timeout error")
	}
}

func TestReporter_PublishesMsgpack(t *testing.T) {
	client := newFakeClient()
	r := NewReporter(client, "player/stats", 0, time.Second)
	stats := pipeline.PartStats{
		Part:        2,
		Frames:      30,
		Elapsed:     3 * time.Second,
		AvgDrift:    4 * time.Millisecond,
		MaxDrift:    20 * time.Millisecond,
		AvgProcess:  12 * time.Millisecond,
		AchievedFPS: 10,
	}

	if err := r.Report(context.Background(), stats); err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if len(client.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(client.published))
	}
	msg := client.published[0]
	if msg.topic != "player/stats/part/2" {
		t.Errorf("unexpected topic %q", msg.topic)
	}
	got, err := DecodeStats(msg.payload)
	if err != nil {
		t.Fatalf("DecodeStats failed: %v", err)
	}
	if got != stats {
		t.Errorf("expected %+v, got %+v", stats, got)
	}
}

func TestReporter_Errors(t *testing.T) {
	client := newFakeClient()
	r := NewReporter(client, "player/stats", 0, time.Second)

	client.token = &fakeToken{err: errors.New("broker refused")}
	if err := r.Report(context.Background(), pipeline.PartStats{Part: 1}); err == nil {
		t.Error("expected publish error")
	}

	client.connected = false
	if err := r.Report(context.Background(), pipeline.PartStats{Part: 1}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}
