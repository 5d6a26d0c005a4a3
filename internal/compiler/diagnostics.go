package compiler

import (
	"github.com/hashicorp/hcl/v2"
)

// Diagnostic summaries, stable so callers and tests can match on them.
const (
	SummaryRootAttributes   = "Attributes on root schedule"
	SummaryUnknownAttribute = "Unknown attribute"
	SummaryDuplicateAttr    = "Duplicate attribute"
	SummaryInvalidValue     = "Invalid attribute value"
	SummaryDuplicateName    = "Duplicate schedule name"
	SummaryRequiresRunEvery = "Attribute requires run_every"
)

func errorDiag(summary, detail string, subject hcl.Range) *hcl.Diagnostic {
	rng := subject
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  &rng,
	}
}
