package repository

import (
	"fmt"
	"strings"

	"car-inventory-backend/internal/domains/detail/model"
	"car-inventory-backend/internal/shared/utils"
)

// =====================================================
// LIST QUERY COMPOSITION
// =====================================================
// The list query is assembled from three independent parts: a WHERE
// predicate, an ORDER BY clause and a LIMIT/OFFSET pair. The count
// query reuses the predicate but never the ordering or pagination.

const (
	minPageSize = 1
	maxPageSize = 100
)

// sortColumns maps the contract's column keys to SQL expressions.
// "make" and "model" sort by the related entity's name, not its id.
var sortColumns = map[string]string{
	"id":    "d.id",
	"year":  "d.year",
	"make":  "mk.name",
	"model": "md.name",
}

// buildFilter translates the filter DTO into WHERE clauses and
// positional args. Absent or empty id sets add no clause. The feature
// filter is existential: a detail matches when it has at least one of
// the requested features.
func buildFilter(f *model.DetailFilter) ([]string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if f == nil {
		return clauses, args
	}

	if f.YearMin != nil {
		args = append(args, *f.YearMin)
		clauses = append(clauses, fmt.Sprintf("d.year >= $%d", len(args)))
	}
	if f.YearMax != nil {
		args = append(args, *f.YearMax)
		clauses = append(clauses, fmt.Sprintf("d.year <= $%d", len(args)))
	}
	if len(f.MakeIDs) > 0 {
		args = append(args, f.MakeIDs)
		clauses = append(clauses, fmt.Sprintf("d.car_make_id = ANY($%d)", len(args)))
	}
	if len(f.ModelIDs) > 0 {
		args = append(args, f.ModelIDs)
		clauses = append(clauses, fmt.Sprintf("d.car_model_id = ANY($%d)", len(args)))
	}
	if len(f.FeatureIDs) > 0 {
		args = append(args, f.FeatureIDs)
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM car_detail_features df WHERE df.car_detail_id = d.id AND df.car_feature_id = ANY($%d))",
			len(args)))
	}

	return clauses, args
}

// whereClause renders the composed predicate, or "" for match-all.
func whereClause(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return "WHERE " + utils.JoinWithAnd(clauses)
}

// buildOrderBy renders the composite ordering. Unrecognized column keys
// are silently dropped; an empty result means the storage default order.
func buildOrderBy(sorts []model.SortInput) string {
	terms := []string{}
	for _, s := range sorts {
		expr, ok := sortColumns[s.Column]
		if !ok {
			continue
		}
		dir := "ASC"
		if strings.EqualFold(s.Direction, "DESC") {
			dir = "DESC"
		}
		terms = append(terms, expr+" "+dir)
	}
	if len(terms) == 0 {
		return ""
	}
	return "ORDER BY " + strings.Join(terms, ", ")
}

// clampPage converts (page, pageSize) into (offset, limit).
// Both must be present for pagination to apply; out-of-range values are
// clamped, never rejected. page is 1-based.
func clampPage(page, pageSize *int) (offset, limit int, paged bool) {
	if page == nil || pageSize == nil {
		return 0, 0, false
	}

	p := *page
	if p < 1 {
		p = 1
	}

	size := *pageSize
	if size < minPageSize {
		size = minPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return (p - 1) * size, size, true
}
