// Package server exposes the executables listing over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/computerscienceiscool/vscode-icons-server/pkg/sandbox"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/scanner"
	"github.com/computerscienceiscool/vscode-icons-server/pkg/workerpool"
)

// Lister lists the executables in a directory relative to the root
type Lister interface {
	List(requestedPath string) scanner.Result
}

// ExecutablesHandler serves GET .../vscode-icons/executables?path=DIR.
// The response is always 200 with a JSON array of file names; rejected or
// unreadable directories give an empty array.
type ExecutablesHandler struct {
	lister Lister
	pool   *workerpool.Pool
	audit  *sandbox.AuditLogger
	log    hclog.Logger
}

// NewExecutablesHandler creates the handler. audit may be nil.
func NewExecutablesHandler(lister Lister, pool *workerpool.Pool, audit *sandbox.AuditLogger, logger hclog.Logger) *ExecutablesHandler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExecutablesHandler{
		lister: lister,
		pool:   pool,
		audit:  audit,
		log:    logger,
	}
}

func (h *ExecutablesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()
	requestedPath := r.URL.Query().Get("path")

	result, err := workerpool.Do(r.Context(), h.pool, func() scanner.Result {
		return h.lister.List(requestedPath)
	})
	if r.Context().Err() != nil {
		// Client went away while queued or scanning
		h.log.Debug("request abandoned", "request_id", requestID, "path", requestedPath)
		return
	}
	if err != nil {
		h.log.Warn("scan not completed", "request_id", requestID, "path", requestedPath, "error", err)
		result = scanner.Result{Names: []string{}, Outcome: scanner.OutcomeUnavailable, Reason: err}
	}
	if result.Names == nil {
		result.Names = []string{}
	}

	h.audit.Log(requestID, "executables", requestedPath, result.OK(), auditDetail(result))
	h.log.Debug("request handled",
		"request_id", requestID,
		"path", requestedPath,
		"outcome", result.Outcome.String(),
		"count", len(result.Names),
		"duration", time.Since(start),
	)

	writeJSON(w, http.StatusOK, result.Names)
}

func auditDetail(result scanner.Result) string {
	if result.OK() {
		return fmt.Sprintf("count=%d", len(result.Names))
	}
	switch {
	case errors.Is(result.Reason, sandbox.ErrPathSecurity):
		return sandbox.ErrPathSecurity.Error()
	case errors.Is(result.Reason, sandbox.ErrPathResolve):
		return sandbox.ErrPathResolve.Error()
	}
	return result.Outcome.String()
}

// HealthHandler reports liveness and pool size. It never touches the
// filesystem.
func HealthHandler(pool *workerpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"workers": pool.Size(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"message":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
