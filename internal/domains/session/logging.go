package session

import (
	"strings"
	"time"

	"aptos-wallet/go-adapter/internal/domains/contracts"
)

const componentName = "session"

const (
	opConnect                  = "connect"
	opDisconnect               = "disconnect"
	opAccount                  = "account"
	opNetwork                  = "network"
	opSignTransaction          = "sign_transaction"
	opSignAndSubmitTransaction = "sign_and_submit_transaction"
	opSignMessage              = "sign_message"
	opAccountChange            = "account_change"
	opNetworkChange            = "network_change"
)

func (r *Reconciler) logInfo(operation, correlationID, message string, attrs ...any) {
	base := []any{
		"component", componentName,
		"operation", strings.TrimSpace(operation),
		"correlation_id", strings.TrimSpace(correlationID),
	}
	r.logger.Info(message, append(base, attrs...)...)
}

func (r *Reconciler) logWarn(operation, correlationID, message string, attrs ...any) {
	base := []any{
		"component", componentName,
		"operation", strings.TrimSpace(operation),
		"correlation_id", strings.TrimSpace(correlationID),
	}
	r.logger.Warn(message, append(base, attrs...)...)
}

// fail records err against operation and hands it back unchanged.
func (r *Reconciler) fail(operation, correlationID string, started time.Time, err error, attrs ...any) error {
	if err == nil {
		return nil
	}
	err = contracts.WrapCategorizedError(contracts.KindOf(err).Category(), err)
	category := contracts.ErrorCategory(err)
	r.metrics.RecordOpError(operation, category, started)
	base := []any{
		"component", componentName,
		"operation", strings.TrimSpace(operation),
		"category", category,
		"kind", string(contracts.KindOf(err)),
		"correlation_id", strings.TrimSpace(correlationID),
		"error", err.Error(),
	}
	r.logger.Error("session operation failed", append(base, attrs...)...)
	return err
}

func (r *Reconciler) succeed(operation string, started time.Time) {
	r.metrics.RecordOp(operation, started)
}
