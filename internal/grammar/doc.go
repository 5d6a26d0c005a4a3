// Package grammar parses the nested schedule declaration language into an
// index-addressed tree.
//
// The language mirrors a function-call shaped literal:
//
//	Update(
//	    [run_every(1.5s)]
//	    Test(First, Second, Third),
//	)
//
// Attributes in square brackets bind to the identifier that follows them.
// A node without a parenthesized list is a leaf. The parser is a small
// recursive-descent parser with one token of lookahead. Syntax errors abort
// the whole parse; semantic checks (unknown or repeated attributes, root
// attributes) are left to the compiler so they can be reported together.
package grammar
