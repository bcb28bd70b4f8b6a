package sim

import (
	"context"
	"testing"
	"time"
)

func startEngine(t *testing.T, cfg Config) (*Engine, context.Context, context.CancelFunc, chan error) {
	t.Helper()
	eng := New(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()
	return eng, ctx, cancel, done
}

func waitForPhase(t *testing.T, eng *Engine, want Phase) TelemetryState {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		st, err := eng.GetState(ctx)
		cancel()
		if err != nil {
			t.Fatalf("GetState: %v", err)
		}
		if st.Phase == want {
			return st
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("engine never reached phase %q", want)
	return TelemetryState{}
}

func TestEngineRunsPlanToArrival(t *testing.T) {
	eng, _, cancel, done := startEngine(t, Config{
		TickInterval: time.Millisecond,
		AutoStart:    true,
	})
	defer func() { cancel(); <-done }()

	st := waitForPhase(t, eng, PhaseArrived)
	if st.Ticking {
		t.Error("engine still ticking after arrival")
	}
	if st.BatteryPct > 100 || st.BatteryPct < 0 {
		t.Errorf("battery = %v, want [0,100]", st.BatteryPct)
	}

	ctx, cancelReq := context.WithTimeout(context.Background(), time.Second)
	defer cancelReq()
	track, err := eng.Track(ctx)
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	plan := eng.Plan()
	if track[0] != plan.Start() {
		t.Errorf("track starts at %v, want %v", track[0], plan.Start())
	}
	if track[len(track)-1] != plan.End() {
		t.Errorf("track ends at %v, want %v", track[len(track)-1], plan.End())
	}
}

func TestEngineStaysIdleWithoutStart(t *testing.T) {
	eng, _, cancel, done := startEngine(t, Config{
		TickInterval: time.Millisecond,
		AutoStart:    false,
	})
	defer func() { cancel(); <-done }()

	time.Sleep(20 * time.Millisecond)

	ctx, cancelReq := context.WithTimeout(context.Background(), time.Second)
	defer cancelReq()
	st, err := eng.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	start := eng.Plan().Start()
	if st.Ticking {
		t.Error("engine ticking without a start command")
	}
	if st.Lat != start.Lat || st.Lon != start.Lon {
		t.Errorf("drone moved to (%v,%v) while idle", st.Lat, st.Lon)
	}
	if st.BatteryPct != 100 {
		t.Errorf("battery = %v, want 100 while idle", st.BatteryPct)
	}
}

func TestEngineStartPauseReset(t *testing.T) {
	eng, _, cancel, done := startEngine(t, Config{
		TickInterval: time.Millisecond,
		AutoStart:    false,
	})
	defer func() { cancel(); <-done }()

	eng.Submit(StartCommand{At: time.Now()})
	deadline := time.Now().Add(5 * time.Second)
	for {
		ctx, cancelReq := context.WithTimeout(context.Background(), time.Second)
		st, err := eng.GetState(ctx)
		cancelReq()
		if err != nil {
			t.Fatalf("GetState: %v", err)
		}
		if st.BatteryPct < 100 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("engine never ticked after start command")
		}
		time.Sleep(time.Millisecond)
	}

	eng.Submit(PauseCommand{At: time.Now()})
	// Let the pause land, then confirm the state holds still.
	time.Sleep(10 * time.Millisecond)
	ctx, cancelReq := context.WithTimeout(context.Background(), time.Second)
	paused, err := eng.GetState(ctx)
	cancelReq()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	ctx, cancelReq = context.WithTimeout(context.Background(), time.Second)
	after, err := eng.GetState(ctx)
	cancelReq()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if after.Lat != paused.Lat || after.Lon != paused.Lon || after.BatteryPct != paused.BatteryPct {
		t.Error("state changed while paused")
	}

	// Reset with AutoStart disabled leaves a fresh, idle mission.
	eng.Submit(ResetCommand{At: time.Now()})
	time.Sleep(10 * time.Millisecond)
	ctx, cancelReq = context.WithTimeout(context.Background(), time.Second)
	st, err := eng.GetState(ctx)
	cancelReq()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	start := eng.Plan().Start()
	if st.Ticking {
		t.Error("engine ticking after reset without auto-start")
	}
	if st.Lat != start.Lat || st.Lon != start.Lon {
		t.Errorf("reset position (%v,%v), want start waypoint", st.Lat, st.Lon)
	}
	if st.BatteryPct != 100 {
		t.Errorf("reset battery = %v, want 100", st.BatteryPct)
	}
	if st.TargetIndex != 1 {
		t.Errorf("reset target index = %d, want 1", st.TargetIndex)
	}
}

func TestEngineSubscribeStreamsStates(t *testing.T) {
	eng, ctx, cancel, done := startEngine(t, Config{
		TickInterval: time.Millisecond,
		AutoStart:    true,
	})
	defer func() { <-done }()
	defer cancel()

	subCtx, subCancel := context.WithTimeout(ctx, 5*time.Second)
	defer subCancel()
	ch, unsub := eng.Subscribe(subCtx)
	defer unsub()

	var states []TelemetryState
	for st := range ch {
		states = append(states, st)
		if st.Phase == PhaseArrived {
			break
		}
		if len(states) > 10000 {
			t.Fatal("stream never reported arrival")
		}
	}

	if len(states) < 2 {
		t.Fatalf("received %d states, want at least initial + ticks", len(states))
	}
	for i := 1; i < len(states); i++ {
		if states[i].BatteryPct > states[i-1].BatteryPct {
			t.Fatalf("battery increased across stream: %v -> %v",
				states[i-1].BatteryPct, states[i].BatteryPct)
		}
	}

	// Cancellation is safe at any point and closes subscriber channels.
	cancel()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscriber channel not closed after cancel")
		}
	}
}
