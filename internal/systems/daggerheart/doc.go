// Package daggerheart holds the character sheet rules: resource projection,
// stress overflow, damage thresholds, domain card filtering, loadouts and
// gold. Everything here is a pure function over value types; callers own
// persistence and clamping.
package daggerheart
