// Package memory provides the memory manager: enumeration and lookup of
// persisted elements, store statistics, and a reachability-based garbage
// collector for anonymous elements that nothing named reaches anymore.
package memory
