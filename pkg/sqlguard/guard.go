// Package sqlguard validates model-generated SQL before execution.
//
// The language model is asked, via prompt instructions, to emit only single
// read-only SELECT statements. The guard enforces that contract instead of
// trusting it: statement-type allow-list, single-statement check, mutation
// keyword scan (CTEs can smuggle DML), and a libinjection pass over string
// literals.
package sqlguard

import (
	"errors"
	"fmt"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"
)

var (
	// ErrNotReadOnly indicates the statement does not begin with SELECT or WITH.
	ErrNotReadOnly = errors.New("only SELECT statements are allowed")

	// ErrMultipleStatements indicates the query contains more than one statement.
	ErrMultipleStatements = errors.New("multiple SQL statements not allowed")

	// ErrMutationKeyword indicates a data-modifying keyword outside string literals.
	ErrMutationKeyword = errors.New("data-modifying SQL keyword not allowed")

	// ErrInjectionPattern indicates libinjection flagged a string literal.
	ErrInjectionPattern = errors.New("SQL injection pattern detected in literal")
)

// mutationKeywords are rejected anywhere outside string literals. A plain
// SELECT can't use them, and WITH ... AS (DELETE ...) would otherwise pass
// the prefix check.
var mutationKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE",
	"TRUNCATE", "GRANT", "REVOKE", "COPY", "VACUUM",
}

// ValidateReadOnly checks that sqlQuery is a single read-only statement and
// returns it normalized (trimmed, trailing semicolon stripped).
func ValidateReadOnly(sqlQuery string) (string, error) {
	normalized := stripTrailingSemicolon(strings.TrimSpace(sqlQuery))
	if normalized == "" {
		return "", fmt.Errorf("empty SQL statement: %w", ErrNotReadOnly)
	}

	upper := strings.ToUpper(normalized)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return "", ErrNotReadOnly
	}

	bare, literals := splitLiterals(normalized)

	// Any semicolon left after normalization means a second statement.
	if strings.ContainsRune(bare, ';') {
		return "", ErrMultipleStatements
	}

	if kw := findMutationKeyword(bare); kw != "" {
		return "", fmt.Errorf("%w: %s", ErrMutationKeyword, kw)
	}

	for _, lit := range literals {
		if isSQLi, fingerprint := libinjection.IsSQLi(lit); isSQLi {
			return "", fmt.Errorf("%w (fingerprint %s)", ErrInjectionPattern, string(fingerprint))
		}
	}

	return normalized, nil
}

// splitLiterals removes single- and double-quoted sections from the SQL,
// returning the bare statement plus the contents of single-quoted string
// literals. Handles both backslash escapes and SQL doubled-quote escapes.
func splitLiterals(sqlQuery string) (string, []string) {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	var bare strings.Builder
	var literals []string
	var current strings.Builder

	state := stateNormal
	prevChar := rune(0)

	for _, char := range sqlQuery {
		switch state {
		case stateNormal:
			switch char {
			case '\'':
				state = stateSingleQuote
				current.Reset()
			case '"':
				state = stateDoubleQuote
			default:
				bare.WriteRune(char)
			}
		case stateSingleQuote:
			if char == '\'' && prevChar != '\\' {
				// A doubled quote ('') re-enters the literal on the next
				// character, which keeps the halves as separate fragments.
				// Good enough for injection scanning.
				literals = append(literals, current.String())
				state = stateNormal
			} else {
				current.WriteRune(char)
			}
		case stateDoubleQuote:
			if char == '"' && prevChar != '\\' {
				state = stateNormal
			}
			// Quoted identifiers stay out of the bare text so identifier
			// names can't fake keywords or semicolons.
		}
		prevChar = char
	}

	return bare.String(), literals
}

// findMutationKeyword returns the first mutation keyword appearing as a
// whole word in the bare (literal-free) statement, or "".
func findMutationKeyword(bare string) string {
	for _, word := range strings.FieldsFunc(strings.ToUpper(bare), func(r rune) bool {
		return !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') && r != '_'
	}) {
		for _, kw := range mutationKeywords {
			if word == kw {
				return kw
			}
		}
	}
	return ""
}

// stripTrailingSemicolon removes one trailing semicolon plus whitespace.
func stripTrailingSemicolon(sqlQuery string) string {
	sqlQuery = strings.TrimRight(sqlQuery, " \t\n\r")
	if strings.HasSuffix(sqlQuery, ";") {
		sqlQuery = strings.TrimRight(strings.TrimSuffix(sqlQuery, ";"), " \t\n\r")
	}
	return sqlQuery
}
