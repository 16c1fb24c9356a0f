package metrics

import (
	"context"
	"time"
)

// Generation describes the outcome of one model call
type Generation struct {
	Strategy     string
	Provider     string
	Model        string
	Duration     time.Duration
	Success      bool
	InputTokens  int
	OutputTokens int
}

// Recorder fans a generation out to Prometheus, Sentry and CloudWatch
type Recorder struct {
	sentry     *SentryMetrics
	cloudwatch *CloudWatchClient
}

// NewRecorder creates a recorder; a nil CloudWatch client disables that sink
func NewRecorder(cloudwatch *CloudWatchClient) *Recorder {
	return &Recorder{
		sentry:     NewSentryMetrics(),
		cloudwatch: cloudwatch,
	}
}

// RecordGeneration records a finished generation in every configured sink
func (r *Recorder) RecordGeneration(ctx context.Context, g Generation) {
	observeGeneration(g)
	r.sentry.RecordGeneration(ctx, g)
	r.cloudwatch.RecordGeneration(g)
}
