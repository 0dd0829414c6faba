package consolidate

import (
	"fmt"
	"strings"

	"github.com/locvowork/orderdash/internal/domain"
)

// CollisionPolicy decides what happens when two source columns resolve to the same name.
type CollisionPolicy int

const (
	// CollisionFirstWins keeps the canonical name on the first column; later ones keep their trimmed label.
	CollisionFirstWins CollisionPolicy = iota
	// CollisionSuffix renames later columns to NAME_2, NAME_3, ...
	CollisionSuffix
	// CollisionFail aborts normalization with a ColumnCollisionError.
	CollisionFail
)

// ParseCollisionPolicy accepts "first", "suffix" or "fail".
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first", "first_wins":
		return CollisionFirstWins, nil
	case "suffix":
		return CollisionSuffix, nil
	case "fail", "error":
		return CollisionFail, nil
	}
	return CollisionFirstWins, fmt.Errorf("unknown collision policy %q", s)
}

// Normalizer trims column labels and applies the canonical rename rules.
type Normalizer struct {
	rules     []Rule
	policy    CollisionPolicy
	protected map[string]bool
}

type NormalizerOption func(*Normalizer)

// WithRules replaces the default rename rules.
func WithRules(rules []Rule) NormalizerOption {
	return func(n *Normalizer) {
		if len(rules) > 0 {
			n.rules = rules
		}
	}
}

func WithCollisionPolicy(p CollisionPolicy) NormalizerOption {
	return func(n *Normalizer) {
		n.policy = p
	}
}

// WithProtectedColumns lists trimmed labels the rules must never rename.
func WithProtectedColumns(names ...string) NormalizerOption {
	return func(n *Normalizer) {
		for _, name := range names {
			n.protected[strings.TrimSpace(name)] = true
		}
	}
}

func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		rules:     DefaultRules(),
		policy:    CollisionFirstWins,
		protected: make(map[string]bool),
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Normalize returns a new table with trimmed, canonical column names.
// The input table is left untouched. Every collision is reported, whatever the policy.
func (n *Normalizer) Normalize(t *Table) (*Table, []domain.Collision, error) {
	var collisions []domain.Collision

	// 1. Trim labels. Labels that only differ by surrounding whitespace are one column.
	trimmedOf := make(map[string]string, len(t.Columns))
	firstRaw := make(map[string]string)
	var trimmed []string
	for _, raw := range t.Columns {
		name := strings.TrimSpace(raw)
		trimmedOf[raw] = name
		if prev, ok := firstRaw[name]; ok {
			collisions = append(collisions, domain.Collision{
				Canonical: name,
				Kept:      prev,
				Dropped:   raw,
				Reason:    domain.CollisionWhitespace,
			})
			continue
		}
		firstRaw[name] = raw
		trimmed = append(trimmed, name)
	}

	// 2. Resolve canonical names in column order.
	finalOf := make(map[string]string, len(trimmed))
	owner := make(map[string]string, len(trimmed))
	var renameCollisions []domain.Collision
	columns := make([]string, 0, len(trimmed))
	for _, name := range trimmed {
		target := name
		if !n.protected[name] {
			if canonical, ok := MatchRule(n.rules, name); ok {
				target = canonical
			}
		}

		if prev, taken := owner[target]; taken {
			c := domain.Collision{
				Canonical: target,
				Kept:      prev,
				Dropped:   name,
				Reason:    domain.CollisionRename,
			}
			switch n.policy {
			case CollisionSuffix:
				target = freeName(owner, target)
			default:
				target = freeName(owner, name)
			}
			c.Renamed = target
			renameCollisions = append(renameCollisions, c)
		}

		owner[target] = name
		finalOf[name] = target
		columns = append(columns, target)
	}
	collisions = append(collisions, renameCollisions...)

	if n.policy == CollisionFail && len(renameCollisions) > 0 {
		return nil, collisions, &domain.ColumnCollisionError{Collisions: renameCollisions}
	}

	// 3. Re-key every row through the mapping. The first non-missing value wins when
	// whitespace variants of a label are coalesced.
	out := &Table{
		Columns: columns,
		Rows:    make([]Row, len(t.Rows)),
		Sheets:  t.Sheets,
	}
	for i, row := range t.Rows {
		cells := make(map[string]domain.Value, len(row.Cells))
		for _, raw := range t.Columns {
			v, ok := row.Cells[raw]
			if !ok || v.IsMissing() {
				continue
			}
			dest := finalOf[trimmedOf[raw]]
			if _, exists := cells[dest]; exists {
				continue
			}
			cells[dest] = v
		}
		out.Rows[i] = Row{Sheet: row.Sheet, Cells: cells}
	}

	return out, collisions, nil
}

// freeName returns name, or name_2, name_3, ... whichever is not yet owned.
func freeName(owner map[string]string, name string) string {
	if _, taken := owner[name]; !taken {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if _, taken := owner[candidate]; !taken {
			return candidate
		}
	}
}
