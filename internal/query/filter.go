package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/locvowork/orderdash/internal/domain"
)

var ErrInvalidDateRange = errors.New("invalid date range: start is after end")

// allSelections are the sentinel values meaning "no constraint".
var allSelections = map[string]bool{"ALL": true, "TODOS": true}

// FilterSpec is an immutable set of optional predicates. Build it with NewFilterSpec.
type FilterSpec struct {
	from, to    *time.Time
	salesperson string
	customer    string
	statuses    []string
	sources     []string
	policies    []string
}

type FilterOption func(*FilterSpec)

// WithDateRange constrains ORDER_DATE to [from, to], both days inclusive.
func WithDateRange(from, to time.Time) FilterOption {
	return func(s *FilterSpec) {
		f, t := day(from), day(to)
		s.from, s.to = &f, &t
	}
}

// WithDateFrom sets only the lower bound of the date range.
func WithDateFrom(from time.Time) FilterOption {
	return func(s *FilterSpec) {
		f := day(from)
		s.from = &f
	}
}

// WithDateTo sets only the upper bound of the date range.
func WithDateTo(to time.Time) FilterOption {
	return func(s *FilterSpec) {
		t := day(to)
		s.to = &t
	}
}

func WithSalesperson(name string) FilterOption {
	return func(s *FilterSpec) { s.salesperson = selection(name) }
}

func WithCustomer(name string) FilterOption {
	return func(s *FilterSpec) { s.customer = selection(name) }
}

func WithStatuses(values ...string) FilterOption {
	return func(s *FilterSpec) { s.statuses = selectionSet(values) }
}

func WithSources(values ...string) FilterOption {
	return func(s *FilterSpec) { s.sources = selectionSet(values) }
}

func WithPolicies(values ...string) FilterOption {
	return func(s *FilterSpec) { s.policies = selectionSet(values) }
}

// NewFilterSpec builds a spec and rejects a date range whose start is after its end.
func NewFilterSpec(opts ...FilterOption) (FilterSpec, error) {
	var s FilterSpec
	for _, o := range opts {
		o(&s)
	}
	if s.from != nil && s.to != nil && s.from.After(*s.to) {
		return FilterSpec{}, fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			s.from.Format("2006-01-02"), s.to.Format("2006-01-02"))
	}
	return s, nil
}

// IsEmpty reports whether no predicate is active.
func (s FilterSpec) IsEmpty() bool {
	return s.from == nil && s.to == nil && s.salesperson == "" && s.customer == "" &&
		len(s.statuses) == 0 && len(s.sources) == 0 && len(s.policies) == 0
}

// Key is a canonical identity of the filter: equal filters have equal keys.
func (s FilterSpec) Key() string {
	var b strings.Builder
	if s.from != nil {
		b.WriteString(s.from.Format("2006-01-02"))
	}
	b.WriteString("|")
	if s.to != nil {
		b.WriteString(s.to.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "|%s|%s|%s|%s|%s",
		s.salesperson, s.customer,
		strings.Join(s.statuses, "\x1f"),
		strings.Join(s.sources, "\x1f"),
		strings.Join(s.policies, "\x1f"))
	return b.String()
}

// Apply filters the whole dataset.
func Apply(ds *domain.Dataset, spec FilterSpec) View {
	return ApplyView(All(ds), spec)
}

// ApplyView filters an existing view. Rows must satisfy every active predicate;
// a missing date or category fails any active predicate on it. Order is preserved.
func ApplyView(v View, spec FilterSpec) View {
	if spec.IsEmpty() {
		return v
	}

	statuses := toSet(spec.statuses)
	sources := toSet(spec.sources)
	policies := toSet(spec.policies)

	indices := make([]int, 0, v.Len())
	for i, idx := range v.indices {
		row := v.Row(i)
		if !spec.matchDate(row) {
			continue
		}
		if !matchEqual(row, domain.FieldResponsibleUser, spec.salesperson) ||
			!matchEqual(row, domain.FieldCustomerName, spec.customer) {
			continue
		}
		if !matchSet(row, domain.FieldOrderStatus, statuses) ||
			!matchSet(row, domain.FieldOrderSource, sources) ||
			!matchSet(row, domain.FieldCommercialPolicy, policies) {
			continue
		}
		indices = append(indices, idx)
	}
	return v.subset(indices)
}

func (s FilterSpec) matchDate(row *domain.ConsolidatedRow) bool {
	if s.from == nil && s.to == nil {
		return true
	}
	if !row.HasDate() {
		return false
	}
	d := day(*row.OrderDate)
	if s.from != nil && d.Before(*s.from) {
		return false
	}
	if s.to != nil && d.After(*s.to) {
		return false
	}
	return true
}

func matchEqual(row *domain.ConsolidatedRow, field, want string) bool {
	if want == "" {
		return true
	}
	got, ok := row.Text(field)
	return ok && got == want
}

func matchSet(row *domain.ConsolidatedRow, field string, allowed map[string]bool) bool {
	if len(allowed) == 0 {
		return true
	}
	got, ok := row.Text(field)
	return ok && allowed[got]
}

// selection normalizes a single-choice value; "ALL"/"Todos" and blanks mean no constraint.
func selection(v string) string {
	v = strings.TrimSpace(v)
	if allSelections[strings.ToUpper(v)] {
		return ""
	}
	return v
}

// selectionSet normalizes a multi-choice selection. Any "ALL" entry disables the predicate.
func selectionSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		t := strings.TrimSpace(v)
		if t == "" {
			continue
		}
		if allSelections[strings.ToUpper(t)] {
			return nil
		}
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
