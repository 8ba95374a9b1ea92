package flow

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/syncflow/errors"
	"github.com/kbukum/syncflow/logger"
	"github.com/kbukum/syncflow/observability"
)

// dispatch evaluates node id on v and recurses into whatever it forwards to.
func (f *Flow[V]) dispatch(ctx context.Context, id NodeID, v V) (err error) {
	nd := f.nodes[id]

	if f.opts.tracing {
		var span trace.Span
		ctx, span = observability.StartSpan(ctx, f.opts.spanPrefix+"."+nd.kind.String(),
			trace.WithAttributes(
				attribute.String(observability.AttrFlowID, f.id.String()),
				attribute.String(observability.AttrFlowName, f.opts.name),
				attribute.Int(observability.AttrNode, int(id)),
				attribute.String(observability.AttrKind, nd.kind.String()),
			))
		defer func() {
			if err != nil {
				observability.SetSpanError(ctx, err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}()
	}

	if nd.router != nil {
		return f.route(ctx, id, nd.router, v)
	}

	start := time.Now()
	out, ok := nd.cap.Execute(ctx, v)
	if !ok {
		f.observe(ctx, id, nd.kind, OutcomeHalted, time.Since(start))
		return nil
	}
	f.observe(ctx, id, nd.kind, OutcomeForwarded, time.Since(start))

	for _, child := range nd.children {
		if err := f.dispatch(ctx, child, out); err != nil {
			return err
		}
	}
	return nil
}

// route runs a classifier and sends v into each selected sub-pipeline.
func (f *Flow[V]) route(ctx context.Context, id NodeID, r router[V], v V) error {
	start := time.Now()
	routes, skipped, err := r.route(v)
	if err != nil {
		f.observe(ctx, id, KindClassifier, OutcomeFailed, time.Since(start))
		f.fail(ctx, id, err)
		return fmt.Errorf("flow %s: classifier #%d: %w", f.opts.name, id, err)
	}
	f.observe(ctx, id, KindClassifier, OutcomeRouted, time.Since(start))

	if len(skipped) > 0 && f.log.Enabled() {
		f.log.WithContext(ctx).Debug("undeclared labels ignored", logger.Fields(
			logger.FieldNode, int(id),
			logger.FieldLabel, skipped,
		))
	}

	if f.opts.tracing {
		labels := make([]string, len(routes))
		for i, rt := range routes {
			labels[i] = rt.label
		}
		observability.SetSpanAttribute(ctx, observability.AttrRoutes, labels)
	}

	for _, rt := range routes {
		if f.opts.metrics != nil {
			f.opts.metrics.RecordRoute(ctx, f.opts.name, rt.label)
		}
		if err := f.dispatch(ctx, rt.root, v); err != nil {
			return err
		}
	}
	return nil
}

// observe reports the outcome of one node evaluation to every configured sink.
func (f *Flow[V]) observe(ctx context.Context, id NodeID, kind Kind, outcome string, d time.Duration) {
	if f.opts.tracing {
		observability.SetSpanAttribute(ctx, observability.AttrOutcome, outcome)
	}
	if f.opts.metrics != nil {
		f.opts.metrics.RecordDispatch(ctx, f.opts.name, kind.String(), outcome, d)
	}
	if outcome == OutcomeHalted && f.log.Enabled() {
		f.log.WithContext(ctx).Debug("propagation halted", logger.Fields(
			logger.FieldNode, int(id),
			logger.FieldKind, kind.String(),
		))
	}
}

func (f *Flow[V]) fail(ctx context.Context, id NodeID, err error) {
	code := string(errors.ErrCodeInternal)
	if appErr, ok := errors.AsAppError(err); ok {
		code = string(appErr.Code)
	}
	if f.opts.metrics != nil {
		f.opts.metrics.RecordError(ctx, f.opts.name, code)
	}
	f.log.WithContext(ctx).WithError(err).Debug("classification failed", logger.Fields(
		logger.FieldNode, int(id),
		logger.FieldKind, KindClassifier.String(),
	))
}
