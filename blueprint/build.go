package blueprint

import (
	"fmt"

	"github.com/kbukum/syncflow/errors"
	"github.com/kbukum/syncflow/flow"
)

// resolved is a step whose capability has been looked up.
type resolved[V any] struct {
	kind     string
	entry    entry[V]
	labels   []string
	policy   flow.UnknownLabelPolicy
	classes  [][]resolved[V]
	branches [][]resolved[V]
}

// Build validates def and builds a new flow named after it. Options are
// applied after the name, so WithName in opts wins. The flow is not frozen.
func Build[V any](def *Definition, reg *Registry[V], opts ...flow.Option) (*flow.Flow[V], error) {
	if def == nil {
		return nil, errors.InvalidInput("definition", "is nil")
	}
	plan, err := compile(def, reg)
	if err != nil {
		return nil, err
	}
	f := flow.New[V](append([]flow.Option{flow.WithName(def.Name)}, opts...)...)
	if err := apply(f.Root(), def.Name, plan); err != nil {
		return nil, err
	}
	return f, nil
}

// Attach validates def and attaches its steps under n.
//
// Every registry key is resolved before the first node is attached. Tree
// contract violations raised while attaching, such as a frozen flow, are
// returned as errors rather than panics.
func Attach[V any](n flow.Node[V], def *Definition, reg *Registry[V]) error {
	if def == nil {
		return errors.InvalidInput("definition", "is nil")
	}
	plan, err := compile(def, reg)
	if err != nil {
		return err
	}
	return apply(n, def.Name, plan)
}

func compile[V any](def *Definition, reg *Registry[V]) ([]resolved[V], error) {
	if reg == nil {
		return nil, errors.InvalidInput("registry", "is nil")
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("blueprint %s: %w", def.Name, err)
	}
	plan, err := resolveChain(reg, "steps", def.Steps)
	if err != nil {
		return nil, fmt.Errorf("blueprint %s: %w", def.Name, err)
	}
	return plan, nil
}

func resolveChain[V any](reg *Registry[V], path string, steps []Step) ([]resolved[V], error) {
	out := make([]resolved[V], 0, len(steps))
	for i, s := range steps {
		at := fmt.Sprintf("%s[%d]", path, i)
		kind, name := s.Op()

		e, err := reg.lookup(kind, name)
		if err != nil {
			appErr, _ := errors.AsAppError(err)
			return nil, appErr.WithDetail("step", at)
		}

		r := resolved[V]{kind: kind, entry: e}
		for j, branch := range s.Branches {
			chain, err := resolveChain(reg, fmt.Sprintf("%s.branches[%d]", at, j), branch)
			if err != nil {
				return nil, err
			}
			r.branches = append(r.branches, chain)
		}

		if kind == KindSegregate {
			// Validate has already checked the policy value.
			r.policy, _ = flow.ParseUnknownLabelPolicy(s.UnknownLabels)
			r.labels = s.Labels
			r.classes = make([][]resolved[V], len(s.Labels))
			for j, label := range s.Labels {
				chain, err := resolveChain(reg, at+".classes."+label, s.Classes[label])
				if err != nil {
					return nil, err
				}
				r.classes[j] = chain
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func apply[V any](n flow.Node[V], name string, plan []resolved[V]) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		appErr, ok := errors.AsAppError(errors.FromRecovered(r))
		if !ok || !errors.IsConstructionCode(appErr.Code) {
			panic(r)
		}
		err = fmt.Errorf("blueprint %s: %w", name, appErr)
	}()
	attachChain(n, plan)
	return nil
}

func attachChain[V any](n flow.Node[V], chain []resolved[V]) {
	cur := n
	for _, r := range chain {
		switch r.kind {
		case KindNext:
			cur = cur.Next(r.entry.transform)
		case KindMap:
			cur = cur.Map(r.entry.mapper)
		case KindFilter:
			cur = cur.Filter(r.entry.filter)
		case KindPeep:
			cur = cur.Peep(r.entry.observer)
		case KindSegregate:
			handles := flow.Segregate(cur, r.entry.classify, r.labels, flow.WithUnknownLabels(r.policy))
			for i, h := range handles {
				attachChain(h, r.classes[i])
			}
			continue
		}
		for _, branch := range r.branches {
			attachChain(cur, branch)
		}
	}
}
