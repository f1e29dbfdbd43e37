// Package sqlfix patches a recurring grouping mistake in model-generated
// SQL: a descriptive label column projected next to an aggregate without
// being listed in the GROUP BY clause. The engine rejects such queries, so
// the offending projection is rewritten to ANY_VALUE(col) AS col instead.
package sqlfix

import "strings"

type Repairer struct {
	labelColumns []string
}

// New returns a Repairer watching the given label-like columns. These are
// the descriptive text columns the model tends to project alongside
// aggregates (configured per deployment).
func New(labelColumns ...string) *Repairer {
	return &Repairer{labelColumns: labelColumns}
}

var aggregateMarkers = []string{
	"ANY_VALUE", "FIRST_VALUE", "MAX(", "MIN(", "SUM(", "AVG(", "COUNT(",
}

// Repair rewrites at most one projection occurrence of a watched label
// column in the final (post-CTE) SELECT when that column is missing from
// the active GROUP BY clause. A query with no GROUP BY, or whose label
// column is already grouped or aggregated, is returned unchanged. Repair is
// fail-open: on any internal failure the original query comes back as-is,
// since an unrepaired-but-valid query beats a dropped one.
func (r *Repairer) Repair(query string) (result string) {
	defer func() {
		if recover() != nil {
			result = query
		}
	}()

	if !strings.Contains(strings.ToUpper(query), "GROUP BY") {
		return query
	}

	lines := strings.Split(query, "\n")
	selectIdx := finalSelectIndex(lines)
	if selectIdx < 0 {
		return query
	}

	for _, col := range r.labelColumns {
		rewritten, ok := rewriteColumn(lines, selectIdx, col)
		if ok {
			return strings.Join(rewritten, "\n")
		}
	}
	return query
}

// finalSelectIndex locates the SELECT that produces the query's output: the
// last SELECT not belonging to a CTE body (i.e. after the closing paren
// depth returns to zero).
func finalSelectIndex(lines []string) int {
	idx := -1
	depth := 0
	for i, line := range lines {
		upper := strings.ToUpper(line)
		if depth == 0 && strings.Contains(upper, "SELECT") {
			idx = i
		}
		depth += strings.Count(line, "(") - strings.Count(line, ")")
	}
	return idx
}

func rewriteColumn(lines []string, selectIdx int, col string) ([]string, bool) {
	// The active GROUP BY is the first one at or after the final SELECT.
	groupBy := ""
	for i := selectIdx; i < len(lines); i++ {
		if strings.Contains(strings.ToUpper(lines[i]), "GROUP BY") {
			groupBy = lines[i]
			break
		}
	}
	if groupBy == "" || strings.Contains(groupBy, col) {
		return nil, false
	}

	for i := selectIdx; i < len(lines); i++ {
		line := lines[i]
		if strings.Contains(strings.ToUpper(line), "FROM") && i > selectIdx {
			break
		}
		// An existing ANY_VALUE wrap of this column anywhere in the
		// projection means it was already handled; re-running the repair
		// must not wrap a second occurrence.
		if alreadyWrapped(line, col) {
			return nil, false
		}
		if !strings.Contains(line, col) || isAggregated(line) {
			continue
		}
		out := make([]string, len(lines))
		copy(out, lines)
		out[i] = wrapColumn(line, col)
		return out, true
	}
	return nil, false
}

func alreadyWrapped(line string, col string) bool {
	upper := strings.ToUpper(line)
	return strings.Contains(upper, "ANY_VALUE(\""+strings.ToUpper(col)+"\"") ||
		strings.Contains(upper, "ANY_VALUE("+strings.ToUpper(col))
}

func isAggregated(line string) bool {
	upper := strings.ToUpper(line)
	for _, m := range aggregateMarkers {
		if strings.Contains(upper, m) {
			return true
		}
	}
	return false
}

// wrapColumn replaces the first occurrence of the column reference (quoted
// or bare) with ANY_VALUE(ref) AS ref, keeping the output alias identical.
func wrapColumn(line string, col string) string {
	quoted := `"` + col + `"`
	ref := col
	if strings.Contains(line, quoted) {
		ref = quoted
	}
	return strings.Replace(line, ref, "ANY_VALUE("+ref+") AS "+ref, 1)
}
