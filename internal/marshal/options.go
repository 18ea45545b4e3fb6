package marshal

import (
	"iter"

	"go.uber.org/zap"

	"github.com/born-ml/fieldkit/internal/field"
	"github.com/born-ml/fieldkit/internal/parallel"
)

// Option configures a single kernel call.
type Option func(*options)

type options struct {
	cfg parallel.Config
}

// WithConfig sets the execution config for the pass.
func WithConfig(cfg parallel.Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// Sequential runs the pass on the calling goroutine.
func Sequential() Option {
	return WithConfig(parallel.Sequential())
}

func buildOptions(opts []Option) options {
	o := options{cfg: parallel.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Buffer is the view of an external buffer the kernels need.
// *buffer.Buffer satisfies it.
type Buffer[U field.Numeric] interface {
	Shape() field.Shape
	Strides() []int
	Data() []U
}

// run performs one pass of body over seq.
func run(op string, seq iter.Seq[field.Index], o options, body func(idx field.Index)) {
	if ce := Logger().Check(zap.DebugLevel, "pass"); ce != nil {
		ce.Write(zap.String("op", op), zap.Bool("parallel", o.cfg.Enabled), zap.Int("workers", o.cfg.NumWorkers))
	}
	parallel.ForEach(seq, body, o.cfg)
}

// linear returns the row-major offset of a leading multi-index.
func linear(strides []int, idx field.Index) int {
	offset := 0
	for i, v := range idx {
		offset += v * strides[i]
	}
	return offset
}
