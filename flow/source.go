package flow

import (
	"context"
	"fmt"
	"iter"
)

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Integer is the set of types Range can count over.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// SendMany sends every element of values, in order, stopping at the first error.
func (f *Flow[V]) SendMany(ctx context.Context, values iter.Seq[V]) error {
	for v := range values {
		if err := f.Send(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// SendValues sends each argument in order, stopping at the first error.
func (f *Flow[V]) SendValues(ctx context.Context, values ...V) error {
	for _, v := range values {
		if err := f.Send(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

// Drain pulls src until it is exhausted and sends each value. The iterator
// is closed before Drain returns.
func (f *Flow[V]) Drain(ctx context.Context, src Iterator[V]) error {
	defer src.Close()
	for {
		v, ok, err := src.Next(ctx)
		if err != nil {
			return fmt.Errorf("flow %s: reading source: %w", f.opts.name, err)
		}
		if !ok {
			return nil
		}
		if err := f.Send(ctx, v); err != nil {
			return err
		}
	}
}

// Range yields from, from+1, ..., to. It yields nothing when from > to.
func Range[T Integer](from, to T) iter.Seq[T] {
	return func(yield func(T) bool) {
		if from > to {
			return
		}
		for v := from; ; v++ {
			if !yield(v) || v == to {
				return
			}
		}
	}
}

// FromSlice returns an Iterator over items.
func FromSlice[T any](items []T) Iterator[T] {
	return &sliceIter[T]{items: items}
}

// FromSeq returns an Iterator pulling from seq. Close stops seq early.
func FromSeq[T any](seq iter.Seq[T]) Iterator[T] {
	next, stop := iter.Pull(seq)
	return &seqIter[T]{next: next, stop: stop}
}

// Concat returns an Iterator yielding every value of each source in turn.
// Close closes all sources and reports the first error.
func Concat[T any](sources ...Iterator[T]) Iterator[T] {
	return &concatIter[T]{iters: sources}
}

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type seqIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *seqIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	v, ok := it.next()
	return v, ok, nil
}

func (it *seqIter[T]) Close() error {
	it.stop()
	return nil
}

type concatIter[T any] struct {
	iters []Iterator[T]
	index int
}

func (it *concatIter[T]) Next(ctx context.Context) (T, bool, error) {
	for it.index < len(it.iters) {
		val, ok, err := it.iters[it.index].Next(ctx)
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		it.index++
	}
	var zero T
	return zero, false, nil
}

func (it *concatIter[T]) Close() error {
	var firstErr error
	for _, src := range it.iters {
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
