package sim

import (
	"context"
	"time"

	"drone-telemetry/internal/env"
	"drone-telemetry/internal/flightplan"
)

type stateReq struct {
	reply chan TelemetryState
}

type trackReq struct {
	reply chan []flightplan.Waypoint
}

type subscribeReq struct {
	ch chan TelemetryState
}

// Engine drives the simulated drone along its flight plan. All mutable state
// lives inside Run; callers interact through channels only, so there is no
// locking anywhere.
type Engine struct {
	plan    *flightplan.Plan
	effects env.Effect

	// Actor channels
	cmdCh       chan Command
	stateReqCh  chan stateReq
	trackReqCh  chan trackReq
	subscribeCh chan subscribeReq
	unsubCh     chan chan TelemetryState

	tickInterval time.Duration
	stepDeg      float64
	tolDeg       float64
	autoStart    bool
}

type Config struct {
	Plan *flightplan.Plan

	// TickInterval is the stepper period. Defaults to one second.
	TickInterval time.Duration
	// StepDeg is the per-tick movement in degree space. Defaults to 0.0004.
	StepDeg float64
	// ArrivalTolDeg is the snap-to-waypoint tolerance in degree space.
	// Defaults to 0.0005.
	ArrivalTolDeg float64

	// Effects shape the telemetry after each movement step.
	Effects env.Effect
	// AutoStart begins ticking as soon as Run starts.
	AutoStart bool
}

func New(cfg Config) *Engine {
	if cfg.Plan == nil {
		cfg.Plan = flightplan.Default()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.StepDeg <= 0 {
		cfg.StepDeg = 0.0004
	}
	if cfg.ArrivalTolDeg <= 0 {
		cfg.ArrivalTolDeg = 0.0005
	}
	if cfg.Effects == nil {
		start := cfg.Plan.Start()
		cfg.Effects = env.Chain{Effects: []env.Effect{
			env.DefaultBatteryDrain(),
			env.DefaultSignalFade(start.Lat, start.Lon),
		}}
	}
	return &Engine{
		plan:         cfg.Plan,
		effects:      cfg.Effects,
		cmdCh:        make(chan Command, 128),
		stateReqCh:   make(chan stateReq, 32),
		trackReqCh:   make(chan trackReq, 32),
		subscribeCh:  make(chan subscribeReq, 32),
		unsubCh:      make(chan chan TelemetryState, 32),
		tickInterval: cfg.TickInterval,
		stepDeg:      cfg.StepDeg,
		tolDeg:       cfg.ArrivalTolDeg,
		autoStart:    cfg.AutoStart,
	}
}

// Plan returns the flight plan the engine was built with.
func (e *Engine) Plan() *flightplan.Plan { return e.plan }

func (e *Engine) Submit(cmd Command) {
	select {
	case e.cmdCh <- cmd:
	default:
		// drop if overloaded
	}
}

func (e *Engine) GetState(ctx context.Context) (TelemetryState, error) {
	req := stateReq{reply: make(chan TelemetryState, 1)}
	select {
	case e.stateReqCh <- req:
	case <-ctx.Done():
		return TelemetryState{}, ctx.Err()
	}

	select {
	case st := <-req.reply:
		return st, nil
	case <-ctx.Done():
		return TelemetryState{}, ctx.Err()
	}
}

// Track returns a copy of the recorded trajectory so far.
func (e *Engine) Track(ctx context.Context) ([]flightplan.Waypoint, error) {
	req := trackReq{reply: make(chan []flightplan.Waypoint, 1)}
	select {
	case e.trackReqCh <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case tr := <-req.reply:
		return tr, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Engine) Subscribe(ctx context.Context) (<-chan TelemetryState, func()) {
	ch := make(chan TelemetryState, 32)

	select {
	case e.subscribeCh <- subscribeReq{ch: ch}:
	case <-ctx.Done():
		close(ch)
		return ch, func() {}
	}

	unsub := func() {
		select {
		case e.unsubCh <- ch:
		default:
		}
	}
	return ch, unsub
}

func (e *Engine) Run(ctx context.Context) error {
	// Actor-owned state
	now := time.Now()

	m := newMission(e.plan, e.effects, e.stepDeg, e.tolDeg)
	ticking := e.autoStart

	subs := map[chan TelemetryState]struct{}{}

	buildSnapshot := func(ts time.Time) TelemetryState {
		return TelemetryState{
			Lat:             m.lat,
			Lon:             m.lon,
			HeadingDeg:      m.headingDeg,
			HeadingCardinal: m.heading,
			BatteryPct:      m.batteryPct,
			SignalPct:       m.signalPct,
			SpeedMps:        m.speedMps,
			Phase:           m.phase,
			TargetIndex:     m.targetIdx,
			Ticking:         ticking,
			TS:              ts,
			Warning:         m.warning,
		}
	}

	publish := func(st TelemetryState) {
		for ch := range subs {
			select {
			case ch <- st:
			default:
				// slow subscriber -> drop frame
			}
		}
	}

	tick := time.NewTicker(e.tickInterval)
	defer tick.Stop()
	if !ticking {
		tick.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			for ch := range subs {
				close(ch)
			}
			return nil

		case req := <-e.subscribeCh:
			subs[req.ch] = struct{}{}
			req.ch <- buildSnapshot(now)

		case ch := <-e.unsubCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case req := <-e.stateReqCh:
			req.reply <- buildSnapshot(now)

		case req := <-e.trackReqCh:
			req.reply <- m.snapshotTrack()

		case cmd := <-e.cmdCh:
			switch cmd.Type() {
			case CmdStart:
				if m.phase != PhaseArrived && !ticking {
					ticking = true
					tick.Reset(e.tickInterval)
				}

			case CmdPause:
				ticking = false
				tick.Stop()

			case CmdReset:
				m = newMission(e.plan, e.effects, e.stepDeg, e.tolDeg)
				ticking = e.autoStart
				if ticking {
					tick.Reset(e.tickInterval)
				} else {
					tick.Stop()
				}
			}
			publish(buildSnapshot(now))

		case t := <-tick.C:
			dt := t.Sub(now).Seconds()
			if dt <= 0 {
				dt = e.tickInterval.Seconds()
			}
			now = t

			if !ticking {
				break
			}

			m.step(dt)
			if m.phase == PhaseArrived {
				// Terminal: halt further ticks. State stays queryable.
				ticking = false
				tick.Stop()
			}

			publish(buildSnapshot(t))
		}
	}
}
