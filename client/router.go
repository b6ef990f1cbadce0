package client

import (
	"log/slog"
	"sync"

	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/ngongtopro/love-story-chat/runtime"
)

// Router is an in-memory navigable address. It stands in for a browser location
// when the client runs outside a browser.
type Router struct {
	mu      sync.RWMutex
	current string
	changes *runtime.Registry[string]
	log     *slog.Logger
}

func NewRouter(initial string, log *slog.Logger) *Router {
	return &Router{current: initial, changes: runtime.NewRegistry[string](), log: log}
}

func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Navigate moves to path and notifies subscribers when the address changed.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	if r.current == path {
		r.mu.Unlock()
		return
	}
	r.current = path
	r.mu.Unlock()

	r.log.Debug("Navigated", "path", path)
	r.changes.Publish(path)
}

func (r *Router) RedirectToLogin() {
	r.Navigate(domain.LoginPath)
}

// Subscribe reports every address change.
func (r *Router) Subscribe() (<-chan string, func()) {
	return r.changes.Subscribe()
}
