// Package mysql provides the remote side of the catalog bridge:
// connection parameters, session handling, and MySQL SQL text helpers.
package mysql

import "strings"

// QuoteIdentifier returns a backtick-quoted MySQL identifier.
// Internal backticks are escaped by doubling.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// QuoteLiteral returns a single-quoted MySQL string literal.
// Backslashes and single quotes are escaped by backslash-prefixing.
// The two escaping rules are independent: identifier quoting never
// applies here and vice versa.
func QuoteLiteral(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) + 2)
	sb.WriteByte('\'')
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\'' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('\'')
	return sb.String()
}
