package db

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type scriptedPinger struct {
	mu      sync.Mutex
	results []error
}

// PingContext returns the scripted results in order, then nil forever.
func (p *scriptedPinger) PingContext(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.results) == 0 {
		return nil
	}
	err := p.results[0]
	p.results = p.results[1:]
	return err
}

func TestStartPinger_LogsTransitions(t *testing.T) {
	refused := fmt.Errorf("connection refused")
	p := &scriptedPinger{results: []error{refused, refused, refused}}

	core, logs := observer.New(zap.InfoLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartPinger(ctx, p, 5*time.Millisecond, zap.New(core))

	deadline := time.Now().Add(2 * time.Second)
	for logs.FilterMessage("database reachable again").Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("no recovery logged, got %v", logs.All())
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	// consecutive failures are logged once
	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %v", entries)
	}
	if entries[0].Message != "database unreachable" {
		t.Errorf("first entry = %q; want outage", entries[0].Message)
	}
	if entries[1].Message != "database reachable again" {
		t.Errorf("second entry = %q; want recovery", entries[1].Message)
	}
}

type countingPinger struct{ calls chan struct{} }

func (p countingPinger) PingContext(context.Context) error {
	p.calls <- struct{}{}
	return nil
}

func TestStartPinger_HealthyIsQuiet(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := countingPinger{calls: make(chan struct{}, 16)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartPinger(ctx, p, 5*time.Millisecond, zap.New(core))

	for range 3 {
		select {
		case <-p.calls:
		case <-time.After(time.Second):
			t.Fatal("pinger did not tick")
		}
	}
	if logs.Len() != 0 {
		t.Errorf("expected no logs while healthy, got %v", logs.All())
	}
}

func TestStartPinger_CancelBeforeTicker(t *testing.T) {
	dbMock, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer dbMock.Close()

	ctx, cancel := context.WithCancel(context.Background())
	StartPinger(ctx, dbMock, 100*time.Millisecond, zap.NewNop())
	cancel()

	time.Sleep(50 * time.Millisecond)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected sql calls: %v", err)
	}
}
