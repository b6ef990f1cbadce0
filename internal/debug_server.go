package internal

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed inspect.html
var templatesFS embed.FS

type StatsProvider func() map[string]any

type InspectRow struct {
	Key   string
	Value string
}

type PageData struct {
	Generated string
	Items     []InspectRow
}

// DebugHandler serves prometheus metrics on /metrics and a snapshot of the
// client state on /inspect.
func DebugHandler(gatherer prometheus.Gatherer, stats StatsProvider) http.Handler {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/inspect", func(w http.ResponseWriter, r *http.Request) {
		data := PageData{Generated: time.Now().Format(time.RFC822)}
		if stats != nil {
			for key, value := range stats() {
				data.Items = append(data.Items, InspectRow{Key: key, Value: fmt.Sprint(value)})
			}
		}
		sort.Slice(data.Items, func(i, j int) bool { return data.Items[i].Key < data.Items[j].Key })

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})
	return mux
}

// StartDebugServer listens on localhost:port until ctx is cancelled.
func StartDebugServer(ctx context.Context, port int, gatherer prometheus.Gatherer, stats StatsProvider, log *slog.Logger) {
	server := &http.Server{
		Addr:              fmt.Sprintf("localhost:%d", port),
		Handler:           DebugHandler(gatherer, stats),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Debug server stopped", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	log.Info("Debug server started", "url", fmt.Sprintf("http://localhost:%d/inspect", port))
}
