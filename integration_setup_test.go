//go:build integration

package datasheet

// Notes:
// - Integration test setup: one RodRenderer (one Chrome) for all tests
// - testRenderer is created in TestMain and closed after all tests complete
// - Tests using testRenderer do not run in parallel: ensureBrowser is not
//   synchronized, matching the sequential Generator

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Configuration
// ---------------------------------------------------------------------------

// testTimeout is the standard timeout for integration test operations.
const testTimeout = 60 * time.Second

// testRenderer is the shared browser-backed renderer.
var testRenderer *RodRenderer

// ---------------------------------------------------------------------------
// TestMain - Integration Test Setup and Teardown
// ---------------------------------------------------------------------------

func TestMain(m *testing.M) {
	var logger *slog.Logger
	if os.Getenv("DATASHEETS_TEST_VERBOSE") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	testRenderer = NewRodRenderer(testTimeout, logger)

	code := m.Run()

	// Cleanup the browser instance
	_ = testRenderer.Close()
	os.Exit(code)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// sharedRenderer wraps testRenderer so a Generator's Close does not shut
// down the browser other tests still use.
type sharedRenderer struct{ *RodRenderer }

func (sharedRenderer) Close() error { return nil }
