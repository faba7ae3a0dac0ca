// Package adminhttp serves a tiny read-only HTTP status page reporting
// volume occupancy and user counts. It runs alongside the TCP request
// pipeline but never mutates volume state; it reads server state only
// through its StatsFunc callback, which is responsible for any
// synchronization with the worker goroutine. Adapted from the teacher's
// directory-index HTTP server, repurposed as a stats dashboard.
package adminhttp

import (
	"html/template"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/Abdulbasit24075/omnifs/internal/logger"
)

// Stats is the read-only snapshot the page renders. Callers supply a
// StatsFunc that gathers this from the server's dispatcher on every
// request, since the admin page has no access to worker-only state.
type Stats struct {
	TotalSize  uint64
	UsedSpace  uint64
	FreeSpace  uint64
	UserCount  int
	FileCount  int
	DirCount   int
}

// StatsFunc produces a fresh Stats snapshot. Implementations must be
// safe to call from the HTTP server's goroutines.
type StatsFunc func() Stats

var pageTemplate = template.Must(template.New("status").Funcs(template.FuncMap{
	"humanBytes": func(n uint64) string { return humanize.Bytes(n) },
}).Parse(statusTemplate))

const statusTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>omnifs status</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 0; padding: 20px; background: #f5f5f5; }
        .container { max-width: 600px; margin: 0 auto; background: white; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); overflow: hidden; }
        h1 { margin: 0; padding: 20px; background: #2c3e50; color: white; font-size: 1.2em; }
        table { width: 100%; border-collapse: collapse; }
        th, td { padding: 10px 20px; text-align: left; border-bottom: 1px solid #eee; }
        th { color: #666; font-weight: 600; }
    </style>
</head>
<body>
    <div class="container">
        <h1>omnifs status</h1>
        <table>
            <tr><th>Total size</th><td>{{humanBytes .TotalSize}}</td></tr>
            <tr><th>Used</th><td>{{humanBytes .UsedSpace}}</td></tr>
            <tr><th>Free</th><td>{{humanBytes .FreeSpace}}</td></tr>
            <tr><th>Users</th><td>{{.UserCount}}</td></tr>
            <tr><th>Files</th><td>{{.FileCount}}</td></tr>
            <tr><th>Directories</th><td>{{.DirCount}}</td></tr>
        </table>
    </div>
</body>
</html>
`

// Server is the admin HTTP status page.
type Server struct {
	httpServer *http.Server
	statsFn    StatsFunc
}

// New constructs an admin HTTP server bound to addr. It is not started
// until Start is called.
func New(addr string, statsFn StatsFunc) *Server {
	s := &Server{statsFn: statsFn}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealthz)
	s.httpServer = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Start begins serving in a background goroutine. Listen errors other
// than a clean shutdown are logged, not returned, since the admin page
// is a diagnostic convenience, not part of the core wire protocol.
func (s *Server) Start() {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin http server: %v", err)
		}
	}()
}

// Close shuts the admin HTTP server down.
func (s *Server) Close() error {
	return s.httpServer.Close()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	stats := s.statsFn()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, stats); err != nil {
		logger.Error("admin http: render status page: %v", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
