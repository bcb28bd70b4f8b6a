package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drone-telemetry/internal/api"
	"drone-telemetry/internal/config"
	"drone-telemetry/internal/env"
	"drone-telemetry/internal/flightplan"
	"drone-telemetry/internal/sim"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to the YAML config file (optional)")
	port       = flag.Int("port", 0, "Port to listen on (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	plan, err := flightplan.New(cfg.FlightPlanWaypoints())
	if err != nil {
		log.Fatalf("Invalid flight plan: %v", err)
	}
	start := plan.Start()

	// Telemetry shaping applied after each movement step
	effects := env.Chain{
		Effects: []env.Effect{
			env.BatteryDrain{
				PerTickPct:   cfg.Simulation.BatteryDrainPct,
				WarnBelowPct: cfg.Simulation.BatteryWarnPct,
			},
			env.SignalFade{
				OriginLat: start.Lat,
				OriginLon: start.Lon,
				PctPerKm:  cfg.Simulation.SignalFadePctPerKm,
				FloorPct:  cfg.Simulation.SignalFloorPct,
			},
		},
	}

	// Create simulation engine
	simEngine := sim.New(sim.Config{
		Plan:          plan,
		TickInterval:  time.Duration(cfg.Simulation.TickIntervalMs) * time.Millisecond,
		StepDeg:       cfg.Simulation.StepDeg,
		ArrivalTolDeg: cfg.Simulation.ArrivalTolDeg,
		Effects:       effects,
		AutoStart:     cfg.Simulation.AutoStart,
	})

	// Create API server
	server := api.NewServer(simEngine)

	listenPort := cfg.Server.Port
	if *port != 0 {
		listenPort = *port
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", listenPort),
		Handler: server.Handler(),
	}

	// Start simulation engine in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := simEngine.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("simulation error: %v", err)
		}
	}()

	// Start HTTP server in background
	go func() {
		log.Printf("Starting HTTP server on :%d (plan: %d waypoints, %.2f km)",
			listenPort, plan.Len(), plan.TotalDistanceM()/1000)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	cancel()

	log.Println("Shutdown complete")
}
