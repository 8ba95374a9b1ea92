package flow

import (
	"context"

	"github.com/kbukum/syncflow/errors"
)

// Node is a handle to one node of a Flow. It is a small value that stays
// valid for the lifetime of the Flow, however much the tree grows.
// The zero Node is invalid; using it panics.
type Node[V any] struct {
	flow *Flow[V]
	id   NodeID
}

// ID returns the arena address of the node.
func (n Node[V]) ID() NodeID { return n.id }

// Flow returns the flow owning the node.
func (n Node[V]) Flow() *Flow[V] { return n.flow }

// IsValid reports whether the handle addresses a node.
func (n Node[V]) IsValid() bool {
	return n.flow != nil && n.id >= 0 && int(n.id) < len(n.flow.nodes)
}

// Kind returns the capability variant of the node.
func (n Node[V]) Kind() Kind {
	return n.mustFlow().nodes[n.id].kind
}

// Children returns the ordinary children of the node in attachment order.
// A classifier has none.
func (n Node[V]) Children() []Node[V] {
	f := n.mustFlow()
	ids := f.nodes[n.id].children
	out := make([]Node[V], len(ids))
	for i, id := range ids {
		out[i] = Node[V]{flow: f, id: id}
	}
	return out
}

// Classes returns the sub-pipeline roots of a classifier in declared order,
// or nil for any other kind.
func (n Node[V]) Classes() []Node[V] {
	f := n.mustFlow()
	r := f.nodes[n.id].router
	if r == nil {
		return nil
	}
	ids := r.roots()
	out := make([]Node[V], len(ids))
	for i, id := range ids {
		out[i] = Node[V]{flow: f, id: id}
	}
	return out
}

// Next attaches a transform. When fn returns false nothing is forwarded.
func (n Node[V]) Next(fn func(V) (V, bool)) Node[V] {
	return n.child(KindTransform, "next", fn == nil, Transform(fn))
}

// Map attaches a transform that always forwards fn's result.
func (n Node[V]) Map(fn func(V) V) Node[V] {
	return n.child(KindTransform, "map", fn == nil, Transform(func(v V) (V, bool) {
		return fn(v), true
	}))
}

// Filter attaches a filter that forwards the value only when pred holds.
func (n Node[V]) Filter(pred func(V) bool) Node[V] {
	return n.child(KindFilter, "filter", pred == nil, Filter(pred))
}

// Peep attaches an observer: fn sees each value, which is then forwarded unchanged.
func (n Node[V]) Peep(fn func(V)) Node[V] {
	return n.child(KindObserver, "peep", fn == nil, Observer(fn))
}

// Attach attaches a custom capability.
func (n Node[V]) Attach(c Capability[V]) Node[V] {
	isNil := c == nil
	if fn, ok := c.(CapabilityFunc[V]); ok && fn == nil {
		isNil = true
	}
	return n.child(KindCustom, "attach", isNil, c)
}

// Send dispatches v into the subtree rooted at n and returns once every
// reachable node has run. Only a classifier failure produces an error;
// the dispatch stops there and earlier side effects remain.
func (n Node[V]) Send(ctx context.Context, v V) error {
	return n.mustFlow().dispatch(ctx, n.id, v)
}

// child attaches c. A nil function panics with INVALID_INPUT here rather
// than on the first Send.
func (n Node[V]) child(kind Kind, op string, isNil bool, c Capability[V]) Node[V] {
	f := n.mustFlow()
	if isNil {
		panic(errors.InvalidInput(op, "nil function"))
	}
	return Node[V]{flow: f, id: f.attach(n.id, kind, c)}
}

func (n Node[V]) mustFlow() *Flow[V] {
	if !n.IsValid() {
		panic(errors.InvalidHandle(int(n.id)))
	}
	return n.flow
}
