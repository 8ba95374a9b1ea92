package flow

import "context"

// Capability is the behavior a node performs when a value reaches it.
// Execute returns the value to forward and whether to forward at all.
type Capability[V any] interface {
	Execute(ctx context.Context, v V) (V, bool)
}

// CapabilityFunc adapts a function to the Capability interface.
type CapabilityFunc[V any] func(ctx context.Context, v V) (V, bool)

// Execute calls fn(ctx, v).
func (fn CapabilityFunc[V]) Execute(ctx context.Context, v V) (V, bool) {
	return fn(ctx, v)
}

// Pass forwards every value unchanged.
func Pass[V any]() CapabilityFunc[V] {
	return func(_ context.Context, v V) (V, bool) {
		return v, true
	}
}

// Transform forwards the value produced by fn, or nothing when fn reports false.
func Transform[V any](fn func(V) (V, bool)) CapabilityFunc[V] {
	return func(_ context.Context, v V) (V, bool) {
		return fn(v)
	}
}

// Filter forwards the original value when pred holds.
func Filter[V any](pred func(V) bool) CapabilityFunc[V] {
	return func(_ context.Context, v V) (V, bool) {
		if pred(v) {
			return v, true
		}
		var zero V
		return zero, false
	}
}

// Observer calls fn for its side effect and always forwards the original value.
func Observer[V any](fn func(V)) CapabilityFunc[V] {
	return func(_ context.Context, v V) (V, bool) {
		fn(v)
		return v, true
	}
}
