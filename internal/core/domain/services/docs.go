// Package services provides domain services that orchestrate business
// decisions across multiple domain entities in the dispatch system.
//
// The package includes:
//   - DispatchEngine: selects or preempts a robot for a request from a
//     registry snapshot, under a tunable dispatch policy
//
// Domain services hold logic that does not belong to a single aggregate,
// following Domain-Driven Design principles.
package services
