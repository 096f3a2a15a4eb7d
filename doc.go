// SPDX-License-Identifier: MIT

// Package schoolbus plans the route of a single school bus that must collect
// every waiting student, deliver each one to the stop of their school and
// return to where it started, at minimum total cost.
//
// The search is A* over world configurations (bus position, bus manifest,
// waiting students per stop). Driving along an edge costs the edge weight;
// every boarding and every drop-off costs one.
//
// Packages:
//
//	transit/       - immutable stop graph, Bellman-Ford shortest-path rows (LRU-cached), reachability
//	ledger/        - closed list of compact expansion records keyed by state identity
//	state/         - immutable search state: successors, heuristics, identity hashing
//	solver/        - A* control loop, route reconstruction and rendering
//	problem/       - loader for the plain-text .prob format
//	report/        - .statistics and .output writers
//	config/        - YAML, dotenv and environment settings
//	cmd/schoolbus/ - command-line front end
//
// Quick example (P1 ⇄ P2, one student at P1 for school C1 at P2, cost 5 per leg):
//
//	P1 (S: 1 C1) -> P2 (B: 1 C1) -> P1      total cost 12
package schoolbus
