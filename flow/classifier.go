package flow

import (
	"fmt"

	"github.com/kbukum/syncflow/errors"
)

// UnknownLabelPolicy decides what a classifier does with a produced label
// that was not declared.
type UnknownLabelPolicy int

const (
	// UnknownLabelFail aborts the dispatch with an UNKNOWN_LABEL error before
	// any sub-pipeline of that classifier runs for the value.
	UnknownLabelFail UnknownLabelPolicy = iota
	// UnknownLabelIgnore drops the undeclared labels and routes the rest.
	UnknownLabelIgnore
)

func (p UnknownLabelPolicy) String() string {
	switch p {
	case UnknownLabelFail:
		return "fail"
	case UnknownLabelIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// ParseUnknownLabelPolicy parses "fail" or "ignore". The empty string is "fail".
func ParseUnknownLabelPolicy(s string) (UnknownLabelPolicy, error) {
	switch s {
	case "", "fail":
		return UnknownLabelFail, nil
	case "ignore":
		return UnknownLabelIgnore, nil
	default:
		return 0, errors.InvalidInput("unknown_labels", fmt.Sprintf("policy must be fail or ignore, got %q", s))
	}
}

// ClassOption configures a classifier.
type ClassOption func(*classConfig)

type classConfig struct {
	policy UnknownLabelPolicy
}

// WithUnknownLabels sets the policy for undeclared labels.
func WithUnknownLabels(p UnknownLabelPolicy) ClassOption {
	return func(c *classConfig) { c.policy = p }
}

// route is one sub-pipeline a value must be sent to.
type route struct {
	root  NodeID
	label string
}

// router is the payload of a classifier node. It is kept apart from the
// ordinary child list so a classifier can never forward to children.
type router[V any] interface {
	route(v V) (routes []route, skipped []string, err error)
	roots() []NodeID
	labelNames() []string
}

type classifier[V any, L comparable] struct {
	classify func(V) []L
	labels   []L
	names    []string
	index    map[L]int
	subRoots []NodeID
	policy   UnknownLabelPolicy
}

func (c *classifier[V, L]) roots() []NodeID      { return c.subRoots }
func (c *classifier[V, L]) labelNames() []string { return c.names }

func (c *classifier[V, L]) route(v V) ([]route, []string, error) {
	produced := c.classify(v)
	if len(produced) == 0 {
		return nil, nil, nil
	}

	hit := make([]bool, len(c.labels))
	var skipped []string
	for _, l := range produced {
		i, ok := c.index[l]
		if !ok {
			if c.policy == UnknownLabelFail {
				return nil, nil, errors.UnknownLabel(l, len(c.labels))
			}
			skipped = append(skipped, fmt.Sprint(l))
			continue
		}
		hit[i] = true
	}

	routes := make([]route, 0, len(produced))
	for i, ok := range hit {
		if ok {
			routes = append(routes, route{root: c.subRoots[i], label: c.names[i]})
		}
	}
	return routes, skipped, nil
}

// Segregate attaches a classifier under n and returns the roots of its
// sub-pipelines, one per declared label and in the same order.
//
// On dispatch, classify computes the labels of a value. The value is sent to
// the sub-pipeline of every produced label, in declared order and once per
// label; a value with no labels is dropped. The classifier never forwards to
// ordinary children and none can be attached to it.
//
// Declaring a label twice panics with a DUPLICATE_LABEL error, a nil
// classify with INVALID_INPUT.
func Segregate[V any, L comparable](n Node[V], classify func(V) []L, labels []L, opts ...ClassOption) []Node[V] {
	f := n.mustFlow()
	if classify == nil {
		panic(errors.InvalidInput("segregate", "nil function"))
	}

	cfg := classConfig{policy: UnknownLabelFail}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &classifier[V, L]{
		classify: classify,
		labels:   append([]L(nil), labels...),
		names:    make([]string, len(labels)),
		index:    make(map[L]int, len(labels)),
		policy:   cfg.policy,
	}
	for i, l := range labels {
		if _, dup := c.index[l]; dup {
			panic(errors.DuplicateLabel(l, i))
		}
		c.index[l] = i
		c.names[i] = fmt.Sprint(l)
	}

	_, roots := f.attachRouter(n.id, c, len(labels))
	c.subRoots = roots

	out := make([]Node[V], len(roots))
	for i, id := range roots {
		out[i] = Node[V]{flow: f, id: id}
	}
	return out
}

// SegregateByLabel is Segregate with the handles keyed by label.
func SegregateByLabel[V any, L comparable](n Node[V], classify func(V) []L, labels []L, opts ...ClassOption) map[L]Node[V] {
	handles := Segregate(n, classify, labels, opts...)
	out := make(map[L]Node[V], len(handles))
	for i, h := range handles {
		out[labels[i]] = h
	}
	return out
}
