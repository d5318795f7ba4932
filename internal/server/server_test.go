package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServer_ServeAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	srv := New(handler, 0, time.Second, time.Second, 5*time.Second, testLogger())

	var mu sync.Mutex
	var order []string
	record := func(name string) ShutdownFunc {
		return func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}
	srv.OnShutdown("first", record("first"))
	srv.OnShutdown("second", record("second"))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("expected status 418, got %d", resp.StatusCode)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}

	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("expected LIFO shutdown order, got %v", order)
	}
}

func TestServer_ShutdownErrorsAreReturned(t *testing.T) {
	srv := New(http.NotFoundHandler(), 0, time.Second, time.Second, time.Second, testLogger())

	boom := errors.New("boom")
	srv.OnShutdown("cache", func(ctx context.Context) error { return boom })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := srv.Serve(ctx, ln); !errors.Is(err, boom) {
		t.Errorf("expected shutdown error to be returned, got %v", err)
	}
}

func TestServer_RunListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	srv := New(http.NotFoundHandler(), port, time.Second, time.Second, time.Second, testLogger())
	srv.httpServer.Addr = "127.0.0.1:" + strconv.Itoa(port)

	if err := srv.Run(context.Background()); err == nil {
		t.Error("expected error when the port is taken")
	}
}
