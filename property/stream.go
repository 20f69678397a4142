package property

import (
	"go.uber.org/zap"

	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/internal/binary"
)

// State is the state of a tagged-property stream.
type State uint8

const (
	StateDecoding State = iota
	// StateTerminated: the None terminator was read.
	StateTerminated
	// StateExhausted: the byte range ended without a terminator.
	StateExhausted
	// StateUnknownProperty: a tag had no decoder; earlier values are kept.
	StateUnknownProperty
	// StateError: a read failed inside the range; earlier values are kept.
	StateError
)

func (s State) String() string {
	switch s {
	case StateDecoding:
		return "decoding"
	case StateTerminated:
		return "terminated"
	case StateExhausted:
		return "exhausted"
	case StateUnknownProperty:
		return "unknown_property"
	case StateError:
		return "error"
	default:
		return "invalid"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status describes where and why a stream stopped.
type Status struct {
	Err    error
	Offset int64
	State  State
}

// Complete reports whether the stream ended without an error.
func (s Status) Complete() bool {
	return s.State == StateTerminated || s.State == StateExhausted
}

// Result is the outcome of decoding one stream.
type Result struct {
	Values []Value
	Status
	// Padding counts zero bytes skipped, Sentinels entity markers consumed.
	Padding   int
	Sentinels int
}

// DefaultMaxDepth bounds nested struct streams.
const DefaultMaxDepth = 16

// Options configures Decode.
type Options struct {
	Registry *Registry   // nil uses DefaultRegistry
	Logger   *zap.Logger // nil uses the package logger
	Path     []string    // prefix for error paths, e.g. exports.3
	MaxDepth int         // 0 uses DefaultMaxDepth
}

// Decode walks the tagged-property stream stored in buf[start:start+size].
// Only bytes inside that range are read. Decode never panics on malformed
// input; failures are reported through the Result's Status.
func Decode(buf []byte, start, size int64, names Names, opts Options) *Result {
	ctx := &Context{
		Names:    names,
		Registry: opts.Registry,
		Log:      opts.Logger,
		Path:     opts.Path,
		MaxDepth: opts.MaxDepth,
	}
	if ctx.Registry == nil {
		ctx.Registry = DefaultRegistry()
	}
	if ctx.Log == nil {
		ctx.Log = Logger()
	}
	if ctx.MaxDepth <= 0 {
		ctx.MaxDepth = DefaultMaxDepth
	}

	c, err := binary.NewCursor(buf).Window(start, size)
	if err != nil {
		return &Result{Status: Status{
			State:  StateError,
			Offset: start,
			Err:    errors.At(errors.PhaseProperties, err, opts.Path...),
		}}
	}
	ctx.Cursor = c
	return decodeStream(ctx)
}

// decodeStream runs the state machine over ctx.Cursor until it leaves
// StateDecoding.
func decodeStream(ctx *Context) *Result {
	res := &Result{Status: Status{State: StateDecoding}}
	for res.State == StateDecoding {
		step(ctx, res)
	}

	log := ctx.Log.With(zap.Strings("path", ctx.Path))
	switch {
	case ctx.Depth > 0:
		// nested streams are reported by the outermost one
	case res.State == StateUnknownProperty:
		log.Warn("property stream stopped at unknown property",
			zap.Int64("offset", res.Offset),
			zap.Int("values", len(res.Values)),
			zap.Error(res.Err))
	case res.State == StateError:
		log.Warn("property stream failed",
			zap.Int64("offset", res.Offset),
			zap.Int("values", len(res.Values)),
			zap.Error(res.Err))
	default:
		log.Debug("property stream done",
			zap.Stringer("state", res.State),
			zap.Int("values", len(res.Values)),
			zap.Int("padding", res.Padding))
	}
	return res
}

// step consumes one tag, padding run or sentinel.
func step(ctx *Context, res *Result) {
	c := ctx.Cursor
	start := c.Position()

	if c.Remaining() == 0 {
		res.State, res.Offset = StateExhausted, start
		return
	}
	if c.Remaining() < 8 {
		// Trailing alignment shorter than a tag.
		n := c.SkipPadding()
		if c.Remaining() == 0 {
			res.Padding += n
			res.State, res.Offset = StateExhausted, c.Position()
			return
		}
		if err := c.Seek(start); err != nil {
			fail(ctx, res, err, start, "")
			return
		}
	}

	raw, err := c.ReadLE64()
	if err != nil {
		fail(ctx, res, err, start, "")
		return
	}

	if raw == 0 {
		res.Padding += 8 + c.SkipPadding()
		return
	}

	ref := binary.SplitNameRef(raw)
	if ref.Index == 0 && isEntitySentinel(ref.Number) {
		vals, err := decodeEntity(ctx)
		if err != nil {
			fail(ctx, res, err, start, entityName)
			return
		}
		res.Values = append(res.Values, vals...)
		res.Sentinels++
		return
	}

	name := ref.Display(ctx.Names.Resolve)
	if name == Terminator {
		res.State, res.Offset = StateTerminated, c.Position()
		return
	}

	tag := &Tag{Name: name, Offset: start}
	if err := readTagBody(ctx, tag); err != nil {
		fail(ctx, res, err, start, name)
		return
	}
	if tag.PayloadEnd() > c.End() {
		fail(ctx, res, errors.OutOfBounds(errors.PhaseRead, tag.PayloadOffset, tag.Size, c.End()-tag.PayloadOffset), start, name)
		return
	}

	dec, src := ctx.Registry.Lookup(tag)
	if dec == nil {
		res.State, res.Offset = StateUnknownProperty, start
		res.Err = errors.UnknownProperty(ctx.path(name), start, name, tag.Type)
		return
	}

	vals, err := dec.Decode(ctx, tag)
	if err != nil {
		if errors.Is(err, errors.ErrUnknownProperty) {
			res.Values = append(res.Values, vals...)
			res.State, res.Offset, res.Err = StateUnknownProperty, start, err
			return
		}
		fail(ctx, res, err, start, name)
		return
	}

	if consumed := c.Position() - tag.PayloadOffset; consumed != tag.Size {
		ctx.Log.Warn("property consumed a different size than declared",
			zap.Strings("path", ctx.path(name)),
			zap.String("type", tag.Type),
			zap.Stringer("table", src),
			zap.Int64("declared", tag.Size),
			zap.Int64("consumed", consumed),
			zap.Int64("offset", tag.PayloadOffset))
	}
	res.Values = append(res.Values, vals...)
}

func fail(ctx *Context, res *Result, err error, at int64, name string) {
	res.State, res.Offset = StateError, at

	var se *errors.Error
	if errors.As(err, &se) && se.Phase == errors.PhaseProperties {
		res.Err = err
		return
	}
	path := ctx.Path
	if name != "" {
		path = ctx.path(name)
	}
	res.Err = errors.At(errors.PhaseProperties, err, path...)
}
