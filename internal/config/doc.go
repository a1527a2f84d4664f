// Package config provides configuration types and parsing for HUD runs.
//
// This package defines the YAML/JSON schema for a HUD: which metric
// providers to register, the graph curves and scale settings, and the bar
// panel. It loads, defaults, and validates configurations and converts
// them into the engine types used by package hud.
//
// # Configuration Schema
//
//	name: "Demo HUD"
//	run:
//	  fps: 60
//	  frames: 600
//
//	providers:
//	  builtin: true
//	  refreshInterval: 500ms
//	  simulated:
//	    - id: sim/load
//	      waveform: sine
//	      offset: 50
//	      amplitude: 40
//	      period: 240
//	  jsonpath:
//	    - id: diag/heap_mb
//	      path: $.go.heap_mb
//	  gatherer:
//	    - id: go/goroutines
//	      family: go_goroutines
//
//	graph:
//	  historyCapacity: 256
//	  smoothing: 0.2
//	  scale: {minY: 0, maxY: 50, minSpan: 10, margin: 0.1, smoothing: 0.15}
//	  curves:
//	    - {key: frame_time_ms, label: Frame, unit: ms, precision: 1, color: green}
//
//	bars:
//	  - key: sim/load
//	    label: Load
//	    unit: "%"
//	    scale: {mode: percentile, min: 0, max: 100, maxLimit: 150}
//
// Unset graph and bar fields take the engine defaults, so a partial
// "scale" block only overrides what it names.
//
// # Loading Configuration
//
//	cfg, err := config.LoadConfig("hud.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	config.ApplyDefaults(cfg)
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
