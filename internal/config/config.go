package config

import (
	"errors"
	"io/fs"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"drone-telemetry/internal/flightplan"
)

var (
	configMutex   sync.RWMutex
	currentConfig *AppConfig
)

// ServerConfig holds the HTTP listen settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// SimulationConfig holds the stepper tuning.
type SimulationConfig struct {
	TickIntervalMs     int     `mapstructure:"tick_interval_ms"`
	StepDeg            float64 `mapstructure:"step_deg"`
	ArrivalTolDeg      float64 `mapstructure:"arrival_tolerance_deg"`
	BatteryDrainPct    float64 `mapstructure:"battery_drain_pct"`
	BatteryWarnPct     float64 `mapstructure:"battery_warn_pct"`
	SignalFadePctPerKm float64 `mapstructure:"signal_fade_pct_per_km"`
	SignalFloorPct     float64 `mapstructure:"signal_floor_pct"`
	AutoStart          bool    `mapstructure:"auto_start"`
}

// WaypointConfig is one flight-plan coordinate.
type WaypointConfig struct {
	Lat float64 `mapstructure:"lat"`
	Lon float64 `mapstructure:"lon"`
}

// AppConfig holds entire config
type AppConfig struct {
	Server     ServerConfig     `mapstructure:"server"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Waypoints  []WaypointConfig `mapstructure:"waypoints"`
}

// FlightPlanWaypoints converts the configured waypoints, falling back to the
// built-in demo path when the config carries none.
func (c *AppConfig) FlightPlanWaypoints() []flightplan.Waypoint {
	if len(c.Waypoints) == 0 {
		return flightplan.DefaultWaypoints()
	}
	wps := make([]flightplan.Waypoint, 0, len(c.Waypoints))
	for _, w := range c.Waypoints {
		wps = append(wps, flightplan.Waypoint{Lat: w.Lat, Lon: w.Lon})
	}
	return wps
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("simulation.tick_interval_ms", 1000)
	v.SetDefault("simulation.step_deg", 0.0004)
	v.SetDefault("simulation.arrival_tolerance_deg", 0.0005)
	v.SetDefault("simulation.battery_drain_pct", 0.5)
	v.SetDefault("simulation.battery_warn_pct", 20)
	v.SetDefault("simulation.signal_fade_pct_per_km", 12)
	v.SetDefault("simulation.signal_floor_pct", 35)
	v.SetDefault("simulation.auto_start", true)
}

// LoadConfig initializes and loads the configuration. A missing config file
// is fine: every value has a default and the service runs without one.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("drone")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	configMutex.Lock()
	currentConfig = &cfg
	configMutex.Unlock()

	if path != "" {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var newCfg AppConfig
			if err := v.Unmarshal(&newCfg); err == nil {
				configMutex.Lock()
				currentConfig = &newCfg
				configMutex.Unlock()
			}
		})
	}

	return &cfg, nil
}

// GetCurrentConfig returns the current configuration in a thread-safe way
func GetCurrentConfig() *AppConfig {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return currentConfig
}
