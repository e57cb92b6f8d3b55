package unify

import "regexp"

// A rewriteRule turns one non-portable macro form into an expression the
// generator's preprocessor can evaluate. Rules must be idempotent (applying
// a rule to its own output changes nothing) and must preserve the numeric
// value of the original expansion.
type rewriteRule struct {
	pattern *regexp.Regexp
	replace string
}

// rewriteRules holds the macro rewrites applied to the combined header.
//
// BIT(n): the kernel defines BIT(nr) as (1 << (nr)) in include/vdso/bits.h
// and the hypervisor headers use it only with that meaning. That expansion
// is a fixed assumption of this table; if BIT is ever redefined upstream the
// rule must change with it.
var rewriteRules = []rewriteRule{
	{regexp.MustCompile(`BIT\(([A-Z_0-9]+)\)`), `(1 << ($1))`},
}

// Rewrite applies every rewrite rule across the whole text.
func Rewrite(text string) string {
	for _, rule := range rewriteRules {
		text = rule.pattern.ReplaceAllString(text, rule.replace)
	}
	return text
}
