// Package testutil provides test doubles for the capture capabilities and an
// in-memory local store for integration-style tests.
package testutil
