// Package domain contains the core entities and value objects for launchdash.
//
// This package is the innermost layer of the application. It has no
// dependencies on infrastructure concerns (HTTP, file system, logging, chart
// rendering) and contains only data and the invariants that go with it.
//
// # Entities
//
//   - [LaunchRecord]: one row of the launch dataset
//   - [Dataset]: the immutable, in-memory table of launch records
//   - [FilterState]: the user's current site and payload-range selection
//   - [ProportionChart], [CorrelationChart]: chart input data derived from a
//     Dataset and a FilterState
//
// # Design Principles
//
// Domain values are:
//   - Immutable after construction (Dataset never hands out its backing slice)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
