// Package logging provides the small logging interface the simulation
// depends on, with an adapter over log/slog and a no-op implementation.
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LevelInfo, "text", os.Stderr)
//	world := swarmlogic.NewWorld(scene, swarmlogic.WithLogger(logger))
package logging
