package workspace

import (
	"log/slog"
	"sync"

	id "cdp/pkg/domain"
)

// Registry hands out one Workspace per authenticated user.
type Registry struct {
	mu         sync.Mutex
	workspaces map[id.UserID]*Workspace
	deps       deps
}

type Option func(*deps)

func WithLogger(logger *slog.Logger) Option {
	return func(d *deps) {
		d.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(d *deps) {
		d.auditPublisher = publisher
	}
}

func NewRegistry(catalog Catalog, drafts DraftStore, submitter Submitter, opts ...Option) *Registry {
	d := deps{
		catalog:   catalog,
		drafts:    drafts,
		submitter: submitter,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return &Registry{workspaces: make(map[id.UserID]*Workspace), deps: d}
}

// For returns the user's workspace, creating it on first use. The role is
// refreshed on every call so a role change applies to the next operation.
// It never waits on an operation in progress on the workspace.
func (r *Registry) For(userID id.UserID, role id.Role) *Workspace {
	r.mu.Lock()
	ws, ok := r.workspaces[userID]
	if !ok {
		ws = newWorkspace(userID, role, r.deps)
		r.workspaces[userID] = ws
	}
	r.mu.Unlock()
	ws.role.Store(role)
	return ws
}

// Drop forgets a user's workspace, discarding any open form.
func (r *Registry) Drop(userID id.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.workspaces, userID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}
