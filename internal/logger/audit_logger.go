// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for administrative actions.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogVenueReset logs a rebuild of the persisted venue table.
func (al *AuditLogger) LogVenueReset(driver string, venues int, remoteAddr string, timestamp time.Time, err error) {
	entry := al.WithFields(logrus.Fields{
		"event_type":  "venue_reset",
		"driver":      driver,
		"venues":      venues,
		"remote_addr": remoteAddr,
		"timestamp":   timestamp.Unix(),
	})
	if err != nil {
		entry.WithError(err).Error("Venue table reset failed")
		return
	}
	entry.Info("Venue table reset")
}
