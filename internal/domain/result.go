package domain

// ResultKind tags a ResultSet
type ResultKind int

const (
	ResultEmpty ResultKind = iota
	ResultLoading
	ResultSuccess
	ResultFailure
)

func (k ResultKind) String() string {
	switch k {
	case ResultEmpty:
		return "empty"
	case ResultLoading:
		return "loading"
	case ResultSuccess:
		return "success"
	case ResultFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ResultSet is the latest query outcome held by the widget.
// Values are immutable; every change produces a new ResultSet.
type ResultSet struct {
	kind ResultKind
	rows []ContactRow
	err  error
}

// EmptyResult is the "no search" state
func EmptyResult() ResultSet { return ResultSet{kind: ResultEmpty} }

// LoadingResult marks a query in flight
func LoadingResult() ResultSet { return ResultSet{kind: ResultLoading} }

// SuccessResult holds an ordered copy of rows
func SuccessResult(rows []ContactRow) ResultSet {
	cp := make([]ContactRow, len(rows))
	copy(cp, rows)
	return ResultSet{kind: ResultSuccess, rows: cp}
}

// FailureResult holds a query error
func FailureResult(err error) ResultSet { return ResultSet{kind: ResultFailure, err: err} }

func (r ResultSet) Kind() ResultKind { return r.kind }

// Rows returns a copy of the rows; nil unless Success
func (r ResultSet) Rows() []ContactRow {
	if r.kind != ResultSuccess {
		return nil
	}
	cp := make([]ContactRow, len(r.rows))
	copy(cp, r.rows)
	return cp
}

// Len returns the number of rows
func (r ResultSet) Len() int { return len(r.rows) }

func (r ResultSet) Err() error { return r.err }

// Find looks a row up by id in a Success payload
func (r ResultSet) Find(id string) (ContactRow, bool) {
	if r.kind != ResultSuccess {
		return ContactRow{}, false
	}
	for _, row := range r.rows {
		if row.ID == id {
			return row, true
		}
	}
	return ContactRow{}, false
}

// ReplaceRow returns a Success result with the row matching id replaced by row.
// The replacement keeps the original id and the position of every row.
// ok is false when r is not Success or id is absent.
func (r ResultSet) ReplaceRow(id string, row ContactRow) (ResultSet, bool) {
	if r.kind != ResultSuccess {
		return r, false
	}
	for i, existing := range r.rows {
		if existing.ID != id {
			continue
		}
		out := SuccessResult(r.rows)
		row.ID = existing.ID
		out.rows[i] = row
		return out, true
	}
	return r, false
}
