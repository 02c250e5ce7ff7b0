package table

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/plandes/rend/internal/config"
)

func testLayout() *Layout {
	settings := config.Default()
	source := NewCachedSource("people", &Rows{
		Columns: []string{"name", "age"},
		Records: [][]string{{"alice", "30"}, {"bob", "25"}},
	})
	layout := NewLayout(source, &settings.Table)
	layout.Description = "test data"
	return layout
}

func TestServerServesPage(t *testing.T) {
	srv := NewServer(testLayout(), "localhost", 0, 0, 100*time.Millisecond)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer srv.Shutdown()

	resp, err := http.Get(srv.URL())
	if err != nil {
		t.Fatalf("GET %s failed: %v", srv.URL(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, expected 200", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	page := string(body)
	if !strings.Contains(page, "people") {
		t.Error("page does not contain the table title")
	}
	if !strings.Contains(page, "alice") {
		t.Error("page does not contain table data")
	}
	if !strings.Contains(page, "/done") {
		t.Error("page does not ping the completion endpoint")
	}
}

func TestServerShutdownAfterDone(t *testing.T) {
	srv := NewServer(testLayout(), "localhost", 0, 0, 2*time.Second)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	resp, err := http.Post(srv.URL()+"/done", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST /done failed: %v", err)
	}
	resp.Body.Close()

	start := time.Now()
	srv.Shutdown()
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Shutdown() took %v after done signal, expected immediate", elapsed)
	}
}

func TestServerShutdownOnce(t *testing.T) {
	timeout := 150 * time.Millisecond
	srv := NewServer(testLayout(), "localhost", 0, 0, timeout)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// no done signal: the first call waits out the timeout and terminates
	start := time.Now()
	srv.Shutdown()
	if elapsed := time.Since(start); elapsed < timeout {
		t.Errorf("first Shutdown() returned after %v, expected at least %v", elapsed, timeout)
	}

	// the second call must not wait or terminate again
	start = time.Now()
	srv.Shutdown()
	if elapsed := time.Since(start); elapsed >= timeout {
		t.Errorf("second Shutdown() took %v, expected no-op", elapsed)
	}
}

func TestServerStartPortTaken(t *testing.T) {
	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	srv := NewServer(testLayout(), "localhost", port, 0, 100*time.Millisecond)
	err = srv.Start()
	if err == nil {
		srv.Shutdown()
		t.Fatal("Start() succeeded on an occupied port")
	}

	var startErr *ServerStartError
	if !errors.As(err, &startErr) {
		t.Fatalf("Start() error = %T, expected *ServerStartError", err)
	}
	if startErr.Port != port {
		t.Errorf("ServerStartError.Port = %d, expected %d", startErr.Port, port)
	}
}
