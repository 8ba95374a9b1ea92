package blueprint

import (
	"fmt"
	"slices"

	"github.com/kbukum/syncflow/validation"
)

// Definition is a named, YAML-defined tree.
type Definition struct {
	// Name identifies the definition and becomes the flow name on Build.
	Name string `yaml:"name" validate:"required"`
	// Description is free text.
	Description string `yaml:"description,omitempty"`
	// Steps chain from the root of the target tree.
	Steps []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Step attaches one node. Exactly one of Next, Map, Filter, Peep or
// Segregate names the registered capability to use.
type Step struct {
	Next      string `yaml:"next,omitempty"`
	Map       string `yaml:"map,omitempty"`
	Filter    string `yaml:"filter,omitempty"`
	Peep      string `yaml:"peep,omitempty"`
	Segregate string `yaml:"segregate,omitempty"`

	// Labels declares the classes of a segregate step, in routing order.
	Labels []string `yaml:"labels,omitempty" validate:"omitempty,unique"`
	// Classes holds the chain attached under each label's sub-root.
	// Labels without an entry get an empty sub-pipeline.
	Classes map[string][]Step `yaml:"classes,omitempty" validate:"omitempty,dive,dive"`
	// UnknownLabels is "fail" (default) or "ignore".
	UnknownLabels string `yaml:"unknown_labels,omitempty" validate:"omitempty,oneof=fail ignore"`

	// Branches are chains attached under this step's node before the next
	// step in the list, so they see each value first.
	Branches [][]Step `yaml:"branches,omitempty" validate:"omitempty,dive,min=1,dive"`
}

// Op reports which capability kind the step uses and its registry key.
// It returns empty strings when the step names none or more than one.
func (s Step) Op() (kind, name string) {
	set := 0
	for _, c := range []struct{ kind, name string }{
		{KindNext, s.Next},
		{KindMap, s.Map},
		{KindFilter, s.Filter},
		{KindPeep, s.Peep},
		{KindSegregate, s.Segregate},
	} {
		if c.name != "" {
			kind, name = c.kind, c.name
			set++
		}
	}
	if set != 1 {
		return "", ""
	}
	return kind, name
}

// Validate checks the struct tags and the structure of every step.
func (d *Definition) Validate() error {
	if err := validation.Validate(d); err != nil {
		return err
	}
	v := validation.New()
	checkChain(v, "steps", d.Steps)
	return v.Err()
}

func checkChain(v *validation.Validator, path string, steps []Step) {
	for i, s := range steps {
		at := fmt.Sprintf("%s[%d]", path, i)
		kind, _ := s.Op()
		v.Custom(kind != "", at, "must name exactly one of next, map, filter, peep, segregate")

		for j, branch := range s.Branches {
			checkChain(v, fmt.Sprintf("%s.branches[%d]", at, j), branch)
		}

		if kind != KindSegregate {
			v.Custom(len(s.Labels) == 0, at+".labels", "only a segregate step declares labels")
			v.Custom(len(s.Classes) == 0, at+".classes", "only a segregate step has classes")
			v.Custom(s.UnknownLabels == "", at+".unknown_labels", "only a segregate step has an unknown label policy")
			continue
		}

		v.Custom(i == len(steps)-1, at, "segregate must be the last step of its chain")
		v.Custom(len(s.Branches) == 0, at+".branches", "a segregate step cannot have branches")
		for _, label := range sortedKeys(s.Classes) {
			v.Custom(slices.Contains(s.Labels, label), at+".classes."+label, "is not a declared label")
			checkChain(v, at+".classes."+label, s.Classes[label])
		}
	}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
