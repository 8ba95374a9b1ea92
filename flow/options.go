package flow

import (
	"github.com/kbukum/syncflow/logger"
	"github.com/kbukum/syncflow/observability"
)

// Option configures a Flow.
type Option func(*options)

type options struct {
	name       string
	log        *logger.Logger
	tracing    bool
	spanPrefix string
	metrics    *observability.FlowMetrics
}

func defaultOptions() options {
	return options{
		log:        logger.Nop(),
		spanPrefix: "flow",
	}
}

// WithName names the flow in logs, spans and metrics. Defaults to the flow ID.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger enables debug logging of halts, routes and classification errors.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithTracing creates one span per node visit named "{prefix}.{kind}".
// The span of a node is the parent of its children's spans.
func WithTracing(prefix string) Option {
	return func(o *options) {
		o.tracing = true
		if prefix != "" {
			o.spanPrefix = prefix
		}
	}
}

// WithMetrics records every node evaluation on m. A nil m disables metrics.
func WithMetrics(m *observability.FlowMetrics) Option {
	return func(o *options) { o.metrics = m }
}
