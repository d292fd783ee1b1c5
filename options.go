package offsetgrid

// Option configures Matrix construction behavior. The zero configuration
// (noop logger, noop metrics) is always valid.
type Option[T comparable] func(*Matrix[T])

// WithLogger configures the logger used for container operations.
//
// If nil is passed, NoopLogger() is used.
func WithLogger[T comparable](l *Logger) Option[T] {
	return func(m *Matrix[T]) {
		if l == nil {
			l = NoopLogger()
		}
		m.logger = l
	}
}

// WithMetrics configures the metrics collector notified by Set/Get and by
// the persistence codec.
//
// If nil is passed, NoopMetricsCollector{} is used.
func WithMetrics[T comparable](c MetricsCollector) Option[T] {
	return func(m *Matrix[T]) {
		if c == nil {
			c = NoopMetricsCollector{}
		}
		m.metrics = c
	}
}
