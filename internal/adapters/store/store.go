// Package store is the data synchronization layer. Each collection is backed
// by exactly one of two sources, decided once at load time: the upstream
// backend (remote-authoritative) or an in-memory seed (local fallback).
//
// Contract per collection:
//   - Read-through: Load attempts an upstream fetch; success adopts the
//     upstream collection and marks the store available, any failure falls
//     back to the seed and marks it unavailable for the rest of the session.
//   - Write-through: when available, a mutation goes upstream first; on
//     success the whole collection is re-fetched and replaces local state.
//     No optimistic merge — full reload is the consistency mechanism.
//   - Silent degradation: a failed upstream write is applied to the in-memory
//     collection instead, without flipping the availability flag.
//
// Mutations report which source served them, for observability and tests.
package store

// Source identifies which backing variant served a mutation.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)
