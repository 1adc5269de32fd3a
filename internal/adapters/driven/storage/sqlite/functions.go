package sqlite

import (
	"database/sql/driver"
	"strings"

	sqlitedriver "modernc.org/sqlite"

	"github.com/custodia-labs/seedmerge/internal/reconcile"
)

// The driver applies registered functions to every connection it opens,
// so this must run before the first sql.Open.
func init() {
	if err := sqlitedriver.RegisterDeterministicScalarFunction(reconcile.FoldCaseFunc, 1, foldCase); err != nil {
		panic(err)
	}
}

// foldCase lower-cases text with full Unicode folding. Other values
// pass through for LIKE to convert as usual.
func foldCase(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
