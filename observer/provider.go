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

// ObservedProvider wraps a groto.Provider with OTEL instrumentation.
type ObservedProvider struct {
	inner groto.Provider
	inst  *Instruments
}

var _ groto.Provider = (*ObservedProvider)(nil)

// WrapProvider returns an instrumented provider that emits traces and metrics.
func WrapProvider(inner groto.Provider, inst *Instruments) *ObservedProvider {
	return &ObservedProvider{inner: inner, inst: inst}
}

func (o *ObservedProvider) Name() string  { return o.inner.Name() }
func (o *ObservedProvider) Model() string { return o.inner.Model() }

func (o *ObservedProvider) Chat(ctx context.Context, req groto.ChatRequest) (string, error) {
	ctx, span := o.inst.Tracer.Start(ctx, "llm.chat", trace.WithAttributes(
		AttrLLMModel.String(o.inner.Model()),
		AttrLLMProvider.String(o.inner.Name()),
	))
	defer span.End()
	start := time.Now()

	reply, err := o.inner.Chat(ctx, req)

	durationMs := float64(time.Since(start).Milliseconds())
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	o.record(ctx, "chat", status, durationMs)
	return reply, err
}

func (o *ObservedProvider) ChatStream(ctx context.Context, req groto.ChatRequest, ch chan<- string) (string, error) {
	ctx, span := o.inst.Tracer.Start(ctx, "llm.chat_stream", trace.WithAttributes(
		AttrLLMModel.String(o.inner.Model()),
		AttrLLMProvider.String(o.inner.Name()),
	))
	defer span.End()
	start := time.Now()

	// Forward through an inner channel so chunks can be counted.
	// Buffer it generously so the inner provider never blocks on send
	// while nobody reads ch until ChatStream returns.
	bufSize := max(cap(ch), 64)
	wrappedCh := make(chan string, bufSize)
	chunks := 0
	done := make(chan struct{})
	go func() {
		defer close(ch)
		defer close(done)
		for chunk := range wrappedCh {
			chunks++
			select {
			case ch <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	reply, err := o.inner.ChatStream(ctx, req, wrappedCh)
	<-done // wait for the forwarder before reading chunks

	durationMs := float64(time.Since(start).Milliseconds())
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.SetAttributes(AttrStreamChunks.Int(chunks))
	o.record(ctx, "chat_stream", status, durationMs)
	return reply, err
}

func (o *ObservedProvider) Show(ctx context.Context) error {
	ctx, span := o.inst.Tracer.Start(ctx, "llm.show", trace.WithAttributes(
		AttrLLMModel.String(o.inner.Model()),
		AttrLLMProvider.String(o.inner.Name()),
	))
	defer span.End()

	err := o.inner.Show(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (o *ObservedProvider) record(ctx context.Context, method, status string, durationMs float64) {
	o.inst.LLMRequests.Add(ctx, 1, metric.WithAttributes(
		AttrLLMModel.String(o.inner.Model()),
		AttrLLMProvider.String(o.inner.Name()),
		AttrLLMMethod.String(method),
		attribute.String("status", status),
	))
	o.inst.LLMDuration.Record(ctx, durationMs, metric.WithAttributes(
		AttrLLMModel.String(o.inner.Model()),
		AttrLLMProvider.String(o.inner.Name()),
		AttrLLMMethod.String(method),
	))
}
