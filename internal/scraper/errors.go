// internal/scraper/errors.go
package scraper

import "fmt"

// RowParseError reports a single result row that could not be converted into
// a record. Rows failing to parse are skipped and logged; they never abort a
// page.
type RowParseError struct {
	Kind   string // "fencer" or "ranking"
	Cells  int
	Reason string
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("cannot parse %s row with %d cells: %s", e.Kind, e.Cells, e.Reason)
}

// InteractionError reports one failed page interaction (element not found,
// wait timeout). It degrades the current page or combination to an empty
// result; a single UI hiccup must not abort a multi-thousand-request run.
type InteractionError struct {
	Op  string
	Err error
}

func (e *InteractionError) Error() string {
	return fmt.Sprintf("interaction %s failed: %v", e.Op, e.Err)
}

func (e *InteractionError) Unwrap() error {
	return e.Err
}
