package table

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ServerStartError means a table server could not bind its listener, such
// as when the port is already taken.
type ServerStartError struct {
	Host string
	Port int
	Err  error
}

func (e *ServerStartError) Error() string {
	return fmt.Sprintf("could not start server %s:%d: %v", e.Host, e.Port, e.Err)
}

func (e *ServerStartError) Unwrap() error {
	return e.Err
}

// Server serves one rendered table page from its own HTTP listener. The
// lifecycle is: Start binds the listener and serves from a dedicated
// goroutine; the page pings /done once it has rendered in the browser;
// Shutdown waits for that ping up to a timeout and then force-closes the
// listener. Shutdown happens exactly once per server.
type Server struct {
	layout  *Layout
	host    string
	port    int
	settle  time.Duration
	timeout time.Duration

	id      string
	httpSrv *http.Server
	done    chan struct{}

	mu      sync.Mutex
	stopped bool
}

// NewServer creates a server for a laid-out table on a preallocated port.
// A port of zero picks a free port at Start, used by tests.
func NewServer(layout *Layout, host string, port int, settle, timeout time.Duration) *Server {
	return &Server{
		layout:  layout,
		host:    host,
		port:    port,
		settle:  settle,
		timeout: timeout,
		id:      uuid.NewString(),
		done:    make(chan struct{}, 1),
	}
}

// URL returns the address the server renders its page at
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s:%d", s.host, s.port)
}

// Start binds the listener and begins serving. A bind failure is returned
// synchronously as a ServerStartError. After a successful bind the caller
// is held for the settle duration so the page is ready to browse when the
// URL is handed out.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, s.port))
	if err != nil {
		return &ServerStartError{Host: s.host, Port: s.port, Err: err}
	}
	if s.port == 0 {
		s.port = ln.Addr().(*net.TCPAddr).Port
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/done", s.handleDone)
	s.httpSrv = &http.Server{Handler: mux}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("rend: table server %s: %v", s.id, err)
		}
	}()

	log.Printf("rend: table server %s for %q listening at %s", s.id, s.layout.Title, s.URL())
	time.Sleep(s.settle)
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.layout.Render(w); err != nil {
		log.Printf("rend: table server %s render: %v", s.id, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleDone(w http.ResponseWriter, r *http.Request) {
	// one-shot mailbox: later pings are dropped
	select {
	case s.done <- struct{}{}:
	default:
	}
	w.WriteHeader(http.StatusNoContent)
}

// Shutdown waits up to the configured timeout for the page to report it
// rendered, then closes the server. A second call is a no-op.
func (s *Server) Shutdown() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	if s.httpSrv == nil {
		return
	}
	select {
	case <-s.done:
	case <-time.After(s.timeout):
		log.Printf("rend: table server %s did not report render after %v", s.id, s.timeout)
	}
	if err := s.httpSrv.Close(); err != nil {
		log.Printf("rend: table server %s close: %v", s.id, err)
	}
}
