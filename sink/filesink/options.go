package filesink

import (
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/philipp01105/logsink/core"
)

const (
	// DefaultSizeLimit is the size limit applied when no WithSizeLimit
	// option is given: 1 GiB.
	DefaultSizeLimit int64 = 1 << 30

	// DefaultLockTimeout bounds the cross-process lock wait of a mutex
	// sink when no WithLockTimeout option is given.
	DefaultLockTimeout = 10 * time.Second
)

// HeaderFunc produces the synthetic entries written once at the top of a
// newly created or empty file, before any ordinary entry. It is invoked
// lazily and at most once per sink.
type HeaderFunc func() []*core.Entry

// Option configures a file sink at construction time.
type Option func(*options)

type options struct {
	limit       int64
	header      HeaderFunc
	encoding    encoding.Encoding
	buffered    bool
	lockTimeout time.Duration
	diag        *zap.Logger
}

// defaultOptions returns the option set applied before user options.
func defaultOptions() *options {
	return &options{
		limit:       DefaultSizeLimit,
		lockTimeout: DefaultLockTimeout,
		diag:        zap.NewNop(),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithSizeLimit caps the file at approximately n bytes: once the
// observed size reaches n, Append refuses further entries. The cap is
// approximate because an accepted entry is always written whole, so the
// file may end up past the limit by one entry (or one header batch).
// Zero is legal and makes every ordinary append overflow immediately;
// negative values fail construction with ErrNegativeSizeLimit.
func WithSizeLimit(n int64) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithNoSizeLimit removes the size cap entirely.
func WithNoSizeLimit() Option {
	return func(o *options) {
		o.limit = math.MaxInt64
	}
}

// WithHeader installs a header provider. The provider runs at most
// once, on the first append, and only when the file was absent or
// zero-length when the sink was constructed. Header entries are never
// checked against the size limit.
func WithHeader(h HeaderFunc) Option {
	return func(o *options) {
		o.header = h
	}
}

// WithEncoding sets the character encoding of the output bytes. The
// default writes the formatter's UTF-8 output unchanged, without a byte
// order mark. Each record is encoded as a unit before it is written, so
// the single-write discipline of the shared sinks is preserved.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) {
		o.encoding = enc
	}
}

// WithBufferedWrites makes an exclusive sink keep entries in its text
// buffer until Sync or Close instead of flushing after every append,
// trading durability for throughput. Ignored by the shared sinks, whose
// correctness depends on unbuffered writes.
func WithBufferedWrites() Option {
	return func(o *options) {
		o.buffered = true
	}
}

// WithLockTimeout bounds how long a mutex sink waits for the
// cross-process lock before dropping the entry. Values <= 0 keep the
// default.
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.lockTimeout = d
		}
	}
}

// WithDiagnostics sets the logger used for the sink's own diagnostic
// notes: abandoned lock acquisitions, tolerated size-check races, and
// entries dropped on lock timeout. The default discards them.
func WithDiagnostics(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.diag = l
		}
	}
}
