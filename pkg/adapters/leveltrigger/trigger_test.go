package leveltrigger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/user/bvfplay/pkg/adapters/logger"
	"github.com/user/bvfplay/pkg/mocks"
)

func newTrigger(sensor *mocks.LevelSensor) *Trigger {
	return New(sensor, mocks.NewClock(time.Unix(100, 0)), logger.NewNoop(), Options{PollInterval: time.Millisecond})
}

func TestAwaitTrigger_FiresOnActivation(t *testing.T) {
	sensor := &mocks.LevelSensor{Levels: []bool{false, false, false, true}}
	at, err := newTrigger(sensor).AwaitTrigger(context.Background())
	if err != nil {
		t.Fatalf("AwaitTrigger failed: %v", err)
	}
	if !at.Equal(time.Unix(100, 0)) {
		t.Errorf("expected trigger time from clock, got %v", at)
	}
	if sensor.Reads != 4 {
		t.Errorf("expected 4 reads, got %d", sensor.Reads)
	}
}

func TestAwaitTrigger_HeldSignalMustClearFirst(t *testing.T) {
	sensor := &mocks.LevelSensor{Levels: []bool{true, true, false, true}}
	if _, err := newTrigger(sensor).AwaitTrigger(context.Background()); err != nil {
		t.Fatalf("AwaitTrigger failed: %v", err)
	}
	if sensor.Reads != 4 {
		t.Errorf("expected trigger only after release and re-activation, got %d reads", sensor.Reads)
	}
}

func TestAwaitTrigger_HeldForeverNeverFires(t *testing.T) {
	sensor := &mocks.LevelSensor{Levels: []bool{true}}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := newTrigger(sensor).AwaitTrigger(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestAwaitTrigger_ReadErrorsKeepPolling(t *testing.T) {
	reads := 0
	sensor := &mocks.LevelSensor{ActiveFunc: func(ctx context.Context) (bool, error) {
		reads++
		switch reads {
		case 1:
			return false, nil
		case 2, 3:
			return false, errors.New("i/o error")
		default:
			return true, nil
		}
	}}
	if _, err := newTrigger(sensor).AwaitTrigger(context.Background()); err != nil {
		t.Fatalf("AwaitTrigger failed: %v", err)
	}
	if reads != 4 {
		t.Errorf("expected 4 reads, got %d", reads)
	}
}

func TestNew_Defaults(t *testing.T) {
	tr := New(&mocks.LevelSensor{}, mocks.NewClock(time.Time{}), logger.NewNoop(), Options{})
	if tr.opts.PollInterval != DefaultPollInterval || tr.opts.ReadTimeout != DefaultReadTimeout {
		t.Errorf("unexpected defaults: %+v", tr.opts)
	}
}
