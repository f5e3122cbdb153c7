// Package game implements the target-acquisition game: a player moves a
// tracked fingertip onto randomly placed targets before a 20 second countdown
// runs out, then restarts by touching a hotspot with the index finger.
//
// The main type is Engine, which owns the single Session and turns one frame
// of tracker output into a Frame describing what to draw.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	e := game.NewEngine(game.NewRandomTargets(rng))
//	points := game.NewPointSet([]game.TrackedPoint{{ID: 8, X: 300, Y: 250}})
//	frame := e.Advance(points, game.FieldBounds{Width: 800, Height: 600}, time.Now())
//
// # Hit Regions
//
// Targets are drawn as circles of TargetRadius but hit-tested against an
// axis-aligned square of half-width TargetTolerance. The restart hotspot uses
// the same square test with HotspotTolerance.
//
// # Small Fields
//
// Targets keep FieldMargin pixels from each edge. On an axis of 300 pixels or
// less that range is empty, and the target is placed on the field's center
// for that axis instead.
package game
