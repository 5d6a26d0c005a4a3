// internal/label/doc.go

/*
Package label provides the structured representation of schedule labels and
the paths that address them.

A path is the root-to-node chain of schedule identifiers, written either with
double colons (`Update::Test::First`) or dots (`Update.Test.First`). The
canonical label of a node is its path joined with `::`. Identifiers are
restricted to `[A-Za-z_][A-Za-z0-9_]*`, so they can never contain the
separator and two distinct paths never produce the same label.
*/
package label
