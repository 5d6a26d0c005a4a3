// Package hclschedule reads schedule trees written as nested HCL blocks:
//
//	schedule "Update" {
//	  schedule "Test" {
//	    run_every    = "1.5s"
//	    max_catch_up = 3
//
//	    schedule "First" {}
//	    schedule "Second" {}
//	  }
//	}
//
// The result is the same grammar.Tree the bracket syntax produces, so the
// compiler validates both front ends identically. Attribute expressions are
// kept as source text and evaluated by the compiler.
package hclschedule
