package dgpl

import (
	"context"
	"time"
)

const (
	auditEventAccountCreated         = "account_created"
	auditEventAccountDuplicate       = "account_duplicate"
	auditEventAccountCreationFailure = "account_creation_failure"
	auditEventLoginSuccess           = "login_success"
	auditEventLoginFailure           = "login_failure"
)

// emitAudit builds and queues one event. The metadata closure is only
// invoked when auditing is enabled, keeping the disabled path
// allocation-free.
func (e *Engine) emitAudit(ctx context.Context, eventType string, success bool, username string, failure error, metadata func() map[string]string) {
	if e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Username:  username,
		IP:        clientIPFromContext(ctx),
		UserAgent: userAgentFromContext(ctx),
		Success:   success,
	}
	if failure != nil {
		event.Error = failure.Error()
	}
	if metadata != nil {
		event.Metadata = metadata()
	}

	e.audit.Emit(ctx, event)
}
