package ui

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/launchdash/launchdash/server/internal/reactive"
)

//go:embed page/index.html
var content embed.FS

var page = template.Must(template.ParseFS(content, "page/index.html"))

// pageData is the template input. IDs are shared with the hub so the page
// and the callbacks agree on input and output names.
type pageData struct {
	Title         string
	StreamPath    string
	InputSite     string
	InputPayload  string
	OutputPie     string
	OutputScatter string
}

// Handler serves the dashboard page at "/" and 404 for anything else.
// streamPath is the WebSocket endpoint the page connects to.
func Handler(title, streamPath string) http.Handler {
	data := pageData{
		Title:         title,
		StreamPath:    streamPath,
		InputSite:     reactive.InputSite,
		InputPayload:  reactive.InputPayload,
		OutputPie:     reactive.OutputPie,
		OutputScatter: reactive.OutputScatter,
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Render into a buffer so a template error can still produce a 500.
		var buf bytes.Buffer
		if err := page.Execute(&buf, data); err != nil {
			slog.Error("ui: render page", "err", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		buf.WriteTo(w) //nolint:errcheck
	})
}

// Dir serves static files from dir, falling back to dir/index.html for
// unknown paths so client-side routing keeps working.
func Dir(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	})
}
