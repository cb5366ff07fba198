package aggregate

// Option configures an Aggregate call.
type Option func(*options)

type options struct {
	workers int
	sink    LogSink
}

func newOptions(opts []Option) options {
	o := options{workers: 1, sink: Discard}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWorkers parses rows on up to n goroutines. The reduction still runs in
// row order, so the result does not depend on n. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithLogSink routes dropped rows to sink. A nil sink discards them.
func WithLogSink(sink LogSink) Option {
	return func(o *options) {
		if sink == nil {
			sink = Discard
		}
		o.sink = sink
	}
}
