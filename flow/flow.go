package flow

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kbukum/syncflow/errors"
	"github.com/kbukum/syncflow/logger"
)

// NodeID addresses a node inside the arena of its Flow.
type NodeID int

// node is one arena slot. Exactly one of cap and router is set.
type node[V any] struct {
	kind     Kind
	cap      Capability[V]
	router   router[V]
	children []NodeID
}

// Flow owns every node of one tree. The zero value is not usable; call New.
type Flow[V any] struct {
	id     uuid.UUID
	nodes  []node[V]
	frozen atomic.Bool
	opts   options
	log    *logger.Logger
}

// New creates a flow whose root passes every value to its children.
func New[V any](opts ...Option) *Flow[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	f := &Flow[V]{
		id:   uuid.New(),
		opts: o,
	}
	if f.opts.name == "" {
		f.opts.name = f.id.String()
	}
	f.log = o.log.WithComponent("flow").WithFields(logger.Fields(
		logger.FieldFlow, f.id.String(),
		logger.FieldFlowName, f.opts.name,
	))
	f.nodes = append(f.nodes, node[V]{kind: KindPass, cap: Pass[V]()})
	return f
}

// ID returns the unique identity of the flow.
func (f *Flow[V]) ID() uuid.UUID { return f.id }

// Name returns the configured name, or the ID when none was given.
func (f *Flow[V]) Name() string { return f.opts.name }

// Root returns the handle of the root node.
func (f *Flow[V]) Root() Node[V] { return Node[V]{flow: f, id: 0} }

// Len returns the number of nodes in the arena, classifier sub-roots included.
func (f *Flow[V]) Len() int { return len(f.nodes) }

// Freeze forbids further attachment. A frozen flow may be dispatched concurrently.
func (f *Flow[V]) Freeze() { f.frozen.Store(true) }

// Frozen reports whether Freeze has been called.
func (f *Flow[V]) Frozen() bool { return f.frozen.Load() }

// Next attaches a transform to the root. See Node.Next.
func (f *Flow[V]) Next(fn func(V) (V, bool)) Node[V] { return f.Root().Next(fn) }

// Map attaches an always-forwarding transform to the root. See Node.Map.
func (f *Flow[V]) Map(fn func(V) V) Node[V] { return f.Root().Map(fn) }

// Filter attaches a filter to the root. See Node.Filter.
func (f *Flow[V]) Filter(pred func(V) bool) Node[V] { return f.Root().Filter(pred) }

// Peep attaches an observer to the root. See Node.Peep.
func (f *Flow[V]) Peep(fn func(V)) Node[V] { return f.Root().Peep(fn) }

// Send dispatches v from the root. See Node.Send.
func (f *Flow[V]) Send(ctx context.Context, v V) error {
	return f.dispatch(ctx, 0, v)
}

// Describe renders the tree, one node per line, children indented under
// their parent and classifier sub-pipelines under their label.
func (f *Flow[V]) Describe() string {
	var b strings.Builder
	f.describe(&b, 0, 0, "")
	return b.String()
}

func (f *Flow[V]) describe(b *strings.Builder, id NodeID, depth int, label string) {
	nd := f.nodes[id]
	indent := strings.Repeat("  ", depth)
	if label != "" {
		fmt.Fprintf(b, "%s[%s] #%d %s\n", indent, label, id, nd.kind)
	} else {
		fmt.Fprintf(b, "%s#%d %s\n", indent, id, nd.kind)
	}
	if nd.router != nil {
		names := nd.router.labelNames()
		for i, root := range nd.router.roots() {
			f.describe(b, root, depth+1, names[i])
		}
		return
	}
	for _, child := range nd.children {
		f.describe(b, child, depth+1, "")
	}
}

// --- arena ---

func (f *Flow[V]) checkGrowable() {
	if f.frozen.Load() {
		panic(errors.Frozen(f.opts.name))
	}
}

func (f *Flow[V]) checkNode(id NodeID) {
	if id < 0 || int(id) >= len(f.nodes) {
		panic(errors.InvalidHandle(int(id)))
	}
}

// attach appends a child with capability c under parent and returns its ID.
func (f *Flow[V]) attach(parent NodeID, kind Kind, c Capability[V]) NodeID {
	return f.appendChild(parent, node[V]{kind: kind, cap: c})
}

// attachRouter appends a classifier under parent, then one detached pass
// root per class. The sub-roots are reachable only through the router.
func (f *Flow[V]) attachRouter(parent NodeID, r router[V], classes int) (NodeID, []NodeID) {
	id := f.appendChild(parent, node[V]{kind: KindClassifier, router: r})
	roots := make([]NodeID, classes)
	for i := range roots {
		roots[i] = NodeID(len(f.nodes))
		f.nodes = append(f.nodes, node[V]{kind: KindPass, cap: Pass[V]()})
	}
	return id, roots
}

func (f *Flow[V]) appendChild(parent NodeID, nd node[V]) NodeID {
	f.checkGrowable()
	f.checkNode(parent)
	if f.nodes[parent].router != nil {
		panic(errors.ClassifierChild(int(parent)))
	}
	id := NodeID(len(f.nodes))
	f.nodes = append(f.nodes, nd)
	f.nodes[parent].children = append(f.nodes[parent].children, id)
	return id
}
