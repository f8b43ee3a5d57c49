// Package config provides configuration management for the composition engine.
//
// This package handles loading, validation, and access to engine configuration
// from YAML files, environment variables, and built-in defaults.
//
// Configuration Types:
//
//   - EngineConfig: Root settings (verbosity, season, parallelism, tolerance)
//   - SolverConfig: Quantity solver strategy and iteration bounds
//   - QuantityConfig: Per-food gram bounds
//   - CompositionConfig: Composer attempts, food bounds, scoring weights,
//     overshoot penalties, low-carb filtering, per-meal-type overrides
//
// Configuration Sources:
//
//  1. MEALPLAN_* environment variables (highest priority)
//  2. YAML configuration file
//  3. .env file in the working directory
//  4. Default values (lowest priority)
//
// Example usage:
//
//	// Load configuration, overlaying the file and environment over defaults
//	cfg, err := config.Load("engine.yaml")
//	if err != nil {
//	    log.Fatal(err, "failed to load configuration")
//	}
//
//	// Access configuration values
//	log.Info("engine configuration",
//	    "tolerance", cfg.Tolerance,
//	    "solverStrategy", cfg.Solver.Strategy,
//	    "attempts", cfg.Composition.Attempts)
//
//	// Watch for configuration changes
//	watcher, err := config.Watch(ctx, "engine.yaml")
//	if err != nil {
//	    log.Error(err, "failed to start config watcher")
//	}
//	defer watcher.Stop()
//
//	go func() {
//	    for newCfg := range watcher.Updates() {
//	        log.Info("configuration updated", "config", newCfg)
//	        // Apply new configuration
//	    }
//	}()
//
// Configuration Validation:
//
// All configuration values are validated on load:
//   - Numeric ranges (e.g., 0.0 < tolerance < 1.0)
//   - Enumerations (e.g., solver strategy, tie-break policy)
//   - Cross-field constraints (e.g., minFoodsPerMeal <= maxFoodsPerMeal)
//   - Ladder shapes (overshoot thresholds strictly decreasing)
//
// The config package is designed to be:
//   - Type-safe with strong typing
//   - Validated at load time
//   - Observable with structured logging
//   - Hot-reloadable for file changes
package config
