// Package ports defines the interfaces that connect the application layer to
// infrastructure adapters.
//
// # Port Interfaces
//
//   - [DatasetLoader]: builds the immutable Dataset once at startup
//   - [ChartRenderer]: turns chart input data into a displayable image
//   - [Logger]: structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (CSV files, go-chart SVG output, zerolog).
package ports
