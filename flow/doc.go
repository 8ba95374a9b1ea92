// Package flow builds synchronous, in-process data-flow trees.
//
// A Flow owns a tree of nodes. Each node holds exactly one capability
// (pass, transform, filter, observer or classifier) and an ordered list of
// children. Sending a value to a node evaluates its capability; when the
// capability forwards a value, every child receives it in attachment order,
// recursively, before Send returns.
//
// Nodes live in an arena owned by the Flow and are addressed by Node
// handles. Attaching new nodes never invalidates previously returned handles.
//
// # Building
//
//	f := flow.New[int]()
//	f.Root().
//	    Filter(func(n int) bool { return n > 300 }).
//	    Peep(func(n int) { fmt.Println(n) })
//
// # Classification
//
// Segregate attaches a classifier and returns one handle per declared label.
// Each handle is the root of a private sub-pipeline; a value is routed to
// every sub-pipeline whose label the classify function produced, in declared
// order, exactly once.
//
//	classes := flow.Segregate(f.Root(), fizzbuzz, []string{"fb", "f", "b", "n"})
//	classes[0].Peep(func(int) { fmt.Println("FizzBuzz") })
//
// # Dispatch
//
//	err := f.SendMany(ctx, flow.Range(1, 100))
//
// Filters returning false, transforms declining to produce a value and
// classifiers producing no labels end propagation silently. The only error
// Send reports is a classifier producing an undeclared label under the
// default UnknownLabelFail policy.
//
// # Concurrency
//
// A Flow is not safe for concurrent mutation. Call Freeze once the tree is
// built; a frozen Flow rejects attachment and may be dispatched from several
// goroutines, provided the capabilities themselves are safe for that.
package flow
