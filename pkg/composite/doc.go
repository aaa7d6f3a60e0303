// Package composite implements composite variables: ordered content held in
// a single node's value property. A string indexes over its characters; the
// array kinds hold homogeneous scalars (string, number, date).
//
// Index setters follow a local-then-flush contract: Set mutates only the
// in-memory buffer and an explicit Save propagates it. This deliberately
// differs from the abstract structures in package ads, whose mutators take
// effect on the store immediately. Do not rely on a composite edit being
// visible remotely before Save.
package composite
