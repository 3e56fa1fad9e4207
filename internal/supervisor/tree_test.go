// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package supervisor

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/flickpicks/internal/logging"
)

// mockService runs until cancelled, optionally failing its first runs.
type mockService struct {
	name     string
	starts   atomic.Int32
	failures atomic.Int32
	maxFails int32
}

func (m *mockService) Serve(ctx context.Context) error {
	m.starts.Add(1)
	if m.failures.Add(1) <= m.maxFails {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockService) String() string { return m.name }

func testTree(t *testing.T, buf *bytes.Buffer) *SupervisorTree {
	t.Helper()
	logger := logging.NewSlogLogger(zerolog.New(buf))
	return NewSupervisorTree(logger, TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree := NewSupervisorTree(logging.NewSlogLogger(zerolog.Nop()), TreeConfig{})

	if got := tree.Config(); got != DefaultTreeConfig() {
		t.Errorf("Config() = %+v, want %+v", got, DefaultTreeConfig())
	}
}

func TestSupervisorTree_RunsBothLayers(t *testing.T) {
	var buf bytes.Buffer
	tree := testTree(t, &buf)

	refresh := &mockService{name: "corpus-refresh"}
	ops := &mockService{name: "ops-http-server"}
	tree.AddEngineService(refresh)
	tree.AddAPIService(ops)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	waitFor(t, func() bool { return refresh.starts.Load() == 1 && ops.starts.Load() == 1 })

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services: %v", report)
	}
}

func TestSupervisorTree_RestartsFailedService(t *testing.T) {
	var buf bytes.Buffer
	tree := testTree(t, &buf)

	flaky := &mockService{name: "corpus-refresh", maxFails: 2}
	tree.AddEngineService(flaky)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	waitFor(t, func() bool { return flaky.starts.Load() >= 3 })

	cancel()
	<-errCh

	if !bytes.Contains(buf.Bytes(), []byte("corpus-refresh")) {
		t.Errorf("expected supervisor events for the failing service in log output: %s", buf.String())
	}
}
