package observer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	groto "github.com/Ritam-910/groto"
)

// ObservedTools wraps a groto.ToolExecutor with OTEL instrumentation.
type ObservedTools struct {
	inner groto.ToolExecutor
	inst  *Instruments
}

var _ groto.ToolExecutor = (*ObservedTools)(nil)

// WrapTools returns an instrumented tool executor.
func WrapTools(inner groto.ToolExecutor, inst *Instruments) *ObservedTools {
	return &ObservedTools{inner: inner, inst: inst}
}

func (o *ObservedTools) Descriptions() map[string]string {
	return o.inner.Descriptions()
}

func (o *ObservedTools) Execute(ctx context.Context, name string, params map[string]any) (string, error) {
	ctx, span := o.inst.Tracer.Start(ctx, "tool.execute", trace.WithAttributes(
		AttrToolName.String(name),
	))
	defer span.End()
	start := time.Now()

	result, err := o.inner.Execute(ctx, name, params)

	durationMs := float64(time.Since(start).Milliseconds())
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.SetAttributes(
		AttrToolStatus.String(status),
		AttrToolResultLength.Int(len(result)),
	)

	o.inst.ToolExecutions.Add(ctx, 1, metric.WithAttributes(
		AttrToolName.String(name),
		attribute.String("status", status),
	))
	o.inst.ToolDuration.Record(ctx, durationMs, metric.WithAttributes(
		AttrToolName.String(name),
	))

	return result, err
}
