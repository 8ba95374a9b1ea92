// Package blueprint builds flow trees from YAML definitions.
//
// A Definition lists steps by the name of a capability registered in a
// Registry. Steps in a list chain: each one is attached under the node the
// previous step created. A step may fan out with branches, and a segregate
// step ends its chain with one sub-chain per declared label.
//
//	name: numbers
//	steps:
//	  - filter: positive
//	    branches:
//	      - [{peep: print}]
//	  - segregate: parity
//	    labels: [even, odd]
//	    classes:
//	      even: [{map: halve}, {peep: print}]
//
// Definitions are checked and resolved completely before the first node is
// attached, so a definition naming an unregistered capability leaves the
// target tree untouched.
package blueprint
