// Package cypher compiles structural intents into single parameterized
// Cypher statements.
//
// The engine's policy is anti-round-trip: whenever an operation's full
// effect can be expressed as one graph-pattern query, it is compiled to one
// query and executed server-side, never implemented by fetching operands
// into local containers and recombining them in-process. Multi-step effects
// are folded into a single statement with CALL subqueries and FOREACH
// conditionals. Every statement that produces nodes embeds their kind
// discriminator so the resulting graph stays interpretable without the
// engine.
//
// Values always travel as bound parameters. The single exception is list
// hop counts, which Cypher cannot parameterize inside a variable-length
// pattern; those are validated integers formatted into the pattern text.
package cypher
