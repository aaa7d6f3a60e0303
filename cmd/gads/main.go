// Command gads is the CLI entry point for the graph-backed abstract data
// structure engine.
package main

import "github.com/mesh-intelligence/gads/internal/cli"

func main() {
	cli.Execute()
}
