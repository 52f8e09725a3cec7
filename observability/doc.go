// Package observability wires OpenTelemetry metrics and traces for import runs.
//
// Setup builds a meter and a tracer provider. With an OTLP endpoint configured
// they export over HTTP. Without one, instruments still record in-process so
// callers never branch on whether telemetry is on.
//
//	tel, err := observability.Setup(ctx, cfg.Telemetry, version.Get().Short())
//	metrics, err := observability.NewImportMetrics(tel.Meter())
//	app.OnStop(tel.Shutdown)
package observability
