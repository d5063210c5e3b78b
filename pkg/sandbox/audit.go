package sandbox

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

var auditEscaper = strings.NewReplacer("|", `\|`, "\n", `\n`, "\r", `\r`)

// AuditLogger appends one line per lookup to an audit file. A nil
// *AuditLogger is valid and discards everything.
type AuditLogger struct {
	logger *log.Logger
	file   *os.File
	lock   *flock.Flock
	mu     sync.Mutex
}

// NewAuditLogger opens (or creates) the audit log at logPath. Appends are
// serialized across processes with an advisory lock on logPath + ".lock".
func NewAuditLogger(logPath string) (*AuditLogger, error) {
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open audit log: %w", err)
	}

	return &AuditLogger{
		logger: log.New(file, "", 0),
		file:   file,
		lock:   flock.New(logPath + ".lock"),
	}, nil
}

// Log writes an audit log entry
func (a *AuditLogger) Log(requestID, operation, argument string, success bool, detail string) {
	if a == nil || a.logger == nil {
		return
	}

	status := "success"
	if !success {
		status = "failed"
	}

	logEntry := fmt.Sprintf("%s|request:%s|%s|%s|%s|%s",
		time.Now().Format(time.RFC3339),
		requestID,
		operation,
		auditEscaper.Replace(argument),
		status,
		auditEscaper.Replace(detail),
	)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.lock.Lock(); err != nil {
		// Lock unavailable: write unguarded.
		a.logger.Println(logEntry)
		return
	}
	defer a.lock.Unlock()

	a.logger.Println(logEntry)
}

// Close closes the audit log file
func (a *AuditLogger) Close() error {
	if a == nil {
		return nil
	}
	if a.lock != nil {
		a.lock.Close()
	}
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}
