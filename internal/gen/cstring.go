package gen

import "strings"

var cEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
)

// cString escapes s for use inside a C string literal.
func cString(s string) string {
	return cEscaper.Replace(s)
}

// literalPercent protects text that ends up in a printf format.
func literalPercent(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
