// Package logger provides race pipeline logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// RaceLogger provides dedicated logging for the fetch, extract and score pipeline.
type RaceLogger struct {
	*logrus.Entry
}

// NewRaceLogger creates a new race logger.
func NewRaceLogger(baseLogger *logrus.Logger) *RaceLogger {
	return &RaceLogger{
		Entry: baseLogger.WithField("component", "race"),
	}
}

// LogFetch logs the outcome of a race page fetch.
func (rl *RaceLogger) LogFetch(race, url string, bytes int, duration time.Duration, err error) {
	entry := rl.WithFields(logrus.Fields{
		"race":        race,
		"url":         url,
		"bytes":       bytes,
		"duration_ms": duration.Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Warn("Race page fetch failed")
		return
	}
	entry.Debug("Race page fetched")
}

// LogExtraction logs which strategy matched and how many lanes it produced.
func (rl *RaceLogger) LogExtraction(race, strategy string, records int) {
	rl.WithFields(logrus.Fields{
		"race":     race,
		"strategy": strategy,
		"records":  records,
	}).Info("Roster extracted")
}

// LogFallback logs that synthetic lanes were used.
func (rl *RaceLogger) LogFallback(race, dataSource string, extracted, synthetic int, reason string) {
	rl.WithFields(logrus.Fields{
		"race":        race,
		"data_source": dataSource,
		"extracted":   extracted,
		"synthetic":   synthetic,
		"reason":      reason,
	}).Info("Synthetic roster data used")
}

// LogPrediction logs a completed prediction.
func (rl *RaceLogger) LogPrediction(predictionID, race, venueName, dataSource, policy string, duration time.Duration) {
	rl.WithFields(logrus.Fields{
		"prediction_id":  predictionID,
		"race":           race,
		"venue_name":     venueName,
		"data_source":    dataSource,
		"scoring_policy": policy,
		"duration_ms":    duration.Milliseconds(),
	}).Info("Race prediction completed")
}
