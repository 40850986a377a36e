// Package report serves the artifacts directory over HTTP so coverage
// reports, profiles, and logs can be browsed from another machine or a CI
// artifact viewer.
package report

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goqa/internal/artifact"
)

// NewHandler builds the HTTP handler for an artifact directory: an index page
// at / and raw file serving under /files/.
func NewHandler(mgr *artifact.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		writeIndex(w, mgr)
	})
	r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(mgr.Dir()))))

	return r
}

// Serve blocks, serving the artifact directory on addr until the server fails.
func Serve(addr string, mgr *artifact.Manager) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(mgr),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func writeIndex(w http.ResponseWriter, mgr *artifact.Manager) {
	artifacts, err := mgr.List()
	if err != nil {
		http.Error(w, "cannot list artifacts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var b strings.Builder
	b.WriteString("<!doctype html><html><head><title>QA artifacts</title></head><body>\n")
	b.WriteString("<h1>QA artifacts</h1>\n")
	if len(artifacts) == 0 {
		b.WriteString("<p>No artifacts yet. Run <code>goqa</code> first.</p>\n")
	} else {
		b.WriteString("<ul>\n")
		for _, a := range artifacts {
			name := html.EscapeString(a.Name)
			fmt.Fprintf(&b, "<li><a href=\"/files/%s\">%s</a> (%s)</li>\n", name, name, formatSize(a.Size))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</body></html>\n")
	_, _ = w.Write([]byte(b.String()))
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
