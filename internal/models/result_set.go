// internal/models/result_set.go
package models

import (
	"context"
	"errors"
	"strings"
)

// ErrStoreUnavailable is returned by graph stores that have no usable connection.
var ErrStoreUnavailable = errors.New("graph store unavailable")

const (
	// UnavailableDetail is the failure text shown when the graph store cannot be reached.
	UnavailableDetail = "Error: Unable to connect to the database"
	// QueryErrorPrefix prefixes the failure text of a query the store rejected.
	QueryErrorPrefix = "Database query error: "
)

// ResultSet holds the ordered values of the single "result" column, or a store failure.
// A nil entry is a null value.
type ResultSet struct {
	Values  []*string `json:"values"`
	Failure string    `json:"failure,omitempty"`
}

// NewResultSet builds a successful result set from plain values.
func NewResultSet(values ...string) ResultSet {
	rs := ResultSet{Values: make([]*string, len(values))}
	for i := range values {
		v := values[i]
		rs.Values[i] = &v
	}
	return rs
}

// FailedResultSet builds a result set carrying a store failure detail.
func FailedResultSet(detail string) ResultSet {
	if strings.TrimSpace(detail) == "" {
		detail = QueryErrorPrefix + "unknown failure"
	}
	return ResultSet{Failure: detail}
}

// ResultSetFromError converts a store error into the failure sentinel rendered to users.
func ResultSetFromError(err error) ResultSet {
	if err == nil {
		return ResultSet{}
	}
	if errors.Is(err, ErrStoreUnavailable) {
		return FailedResultSet(UnavailableDetail)
	}
	return FailedResultSet(QueryErrorPrefix + err.Error())
}

// Failed reports whether the store failed to produce rows.
func (r ResultSet) Failed() bool {
	return r.Failure != ""
}

// First returns the first value, or "" when there are no rows or it is null.
func (r ResultSet) First() string {
	if len(r.Values) == 0 || r.Values[0] == nil {
		return ""
	}
	return *r.Values[0]
}

// NonEmpty returns the non-null, non-blank values in row order.
func (r ResultSet) NonEmpty() []string {
	out := make([]string, 0, len(r.Values))
	for _, v := range r.Values {
		if v == nil || strings.TrimSpace(*v) == "" {
			continue
		}
		out = append(out, *v)
	}
	return out
}

// Empty reports a successful lookup with no usable values.
func (r ResultSet) Empty() bool {
	return !r.Failed() && len(r.NonEmpty()) == 0
}

// IsUnavailable reports whether err means the store could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}

// IsTimeout reports whether err is a context deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
