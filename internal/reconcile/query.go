package reconcile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/seedmerge/internal/core/domain"
)

// Query is a predicate over candidate records.
type Query interface {
	// Match reports whether rec satisfies the predicate.
	Match(rec domain.Record) bool

	// SQL renders the predicate against a table whose data column holds
	// the declared fields as a JSON object. Contains calls FoldCaseFunc,
	// which the store must provide.
	SQL() (string, []any)
}

// FoldCaseFunc names the SQL function Contains uses to lower-case a
// column. It must fold Unicode the way strings.ToLower does; SQLite's
// built-in lower and LIKE fold ASCII only.
const FoldCaseFunc = "fold_case"

// Contains matches when Field contains Value, ignoring case.
type Contains struct {
	Field string
	Value string
}

// And matches when every sub-query matches. An empty And matches everything.
type And []Query

// Or matches when any sub-query matches. An empty Or matches nothing.
type Or []Query

var (
	_ Query = Contains{}
	_ Query = And(nil)
	_ Query = Or(nil)
)

var fieldName = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Match reports whether the record's field contains the value.
func (c Contains) Match(rec domain.Record) bool {
	v, ok := rec.GetField(c.Field)
	if !ok || domain.IsBlank(v) {
		return false
	}
	return strings.Contains(strings.ToLower(valueString(v)), strings.ToLower(c.Value))
}

// SQL renders a LIKE predicate over both sides lower-cased, so it agrees
// with Match. Invalid field names render as false.
func (c Contains) SQL() (string, []any) {
	if !fieldName.MatchString(c.Field) {
		return "0", nil
	}
	return fmt.Sprintf(`%s(json_extract(data, '$.%s')) LIKE ? ESCAPE '\'`, FoldCaseFunc, c.Field),
		[]any{"%" + escapeLike(strings.ToLower(c.Value)) + "%"}
}

// Match reports whether every sub-query matches.
func (a And) Match(rec domain.Record) bool {
	for _, q := range a {
		if !q.Match(rec) {
			return false
		}
	}
	return true
}

// SQL joins sub-queries with AND.
func (a And) SQL() (string, []any) {
	if len(a) == 0 {
		return "1", nil
	}
	return join(a, " AND ")
}

// Match reports whether any sub-query matches.
func (o Or) Match(rec domain.Record) bool {
	for _, q := range o {
		if q.Match(rec) {
			return true
		}
	}
	return false
}

// SQL joins sub-queries with OR.
func (o Or) SQL() (string, []any) {
	if len(o) == 0 {
		return "0", nil
	}
	return join(o, " OR ")
}

func join(qs []Query, sep string) (string, []any) {
	parts := make([]string, len(qs))
	var args []any
	for i, q := range qs {
		s, a := q.SQL()
		parts[i] = "(" + s + ")"
		args = append(args, a...)
	}
	return strings.Join(parts, sep), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// AddressQuery splits an address into a leading street number and its
// remaining words. The number must match and any one word is enough.
// Without a number, any word matches. Returns nil for a blank address.
func AddressQuery(field, address string) Query {
	tokens := strings.FieldsFunc(address, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(tokens) == 0 {
		return nil
	}

	var number string
	if isStreetNumber(tokens[0]) {
		number, tokens = tokens[0], tokens[1:]
	}

	words := make(Or, 0, len(tokens))
	for _, w := range tokens {
		words = append(words, Contains{Field: field, Value: w})
	}

	switch {
	case number != "" && len(words) > 0:
		return And{Contains{Field: field, Value: number}, words}
	case number != "":
		return Contains{Field: field, Value: number}
	default:
		return words
	}
}

func isStreetNumber(tok string) bool {
	return tok != "" && tok[0] >= '0' && tok[0] <= '9'
}
