package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"car-inventory-backend/internal/domains/detail/model"
)

func intPtr(n int) *int { return &n }

func TestBuildFilter_NilFilter(t *testing.T) {
	clauses, args := buildFilter(nil)

	assert.Empty(t, clauses)
	assert.Empty(t, args)
	assert.Equal(t, "", whereClause(clauses))
}

func TestBuildFilter_EmptyIDSetsAddNoConstraint(t *testing.T) {
	// an empty set must mean "no constraint", not "match nothing"
	clauses, args := buildFilter(&model.DetailFilter{
		MakeIDs:    []uuid.UUID{},
		ModelIDs:   []uuid.UUID{},
		FeatureIDs: []uuid.UUID{},
	})

	assert.Empty(t, clauses)
	assert.Empty(t, args)
}

func TestBuildFilter_YearRange(t *testing.T) {
	clauses, args := buildFilter(&model.DetailFilter{
		YearMin: intPtr(2000),
		YearMax: intPtr(2010),
	})

	assert.Equal(t, []string{"d.year >= $1", "d.year <= $2"}, clauses)
	assert.Equal(t, []interface{}{2000, 2010}, args)
}

func TestBuildFilter_OneSidedYearBound(t *testing.T) {
	clauses, args := buildFilter(&model.DetailFilter{YearMax: intPtr(1999)})

	assert.Equal(t, []string{"d.year <= $1"}, clauses)
	assert.Equal(t, []interface{}{1999}, args)
}

func TestBuildFilter_MakeAndModelSets(t *testing.T) {
	makeID := uuid.New()
	modelID := uuid.New()

	clauses, args := buildFilter(&model.DetailFilter{
		MakeIDs:  []uuid.UUID{makeID},
		ModelIDs: []uuid.UUID{modelID},
	})

	assert.Equal(t, []string{
		"d.car_make_id = ANY($1)",
		"d.car_model_id = ANY($2)",
	}, clauses)
	assert.Len(t, args, 2)
}

func TestBuildFilter_FeatureFilterIsExistential(t *testing.T) {
	featureID := uuid.New()

	clauses, _ := buildFilter(&model.DetailFilter{FeatureIDs: []uuid.UUID{featureID}})

	assert.Len(t, clauses, 1)
	assert.Contains(t, clauses[0], "EXISTS")
	assert.Contains(t, clauses[0], "df.car_feature_id = ANY($1)")
}

func TestBuildFilter_ArgNumberingAcrossAllFields(t *testing.T) {
	clauses, args := buildFilter(&model.DetailFilter{
		YearMin:    intPtr(2000),
		YearMax:    intPtr(2020),
		MakeIDs:    []uuid.UUID{uuid.New()},
		ModelIDs:   []uuid.UUID{uuid.New()},
		FeatureIDs: []uuid.UUID{uuid.New()},
	})

	assert.Len(t, clauses, 5)
	assert.Len(t, args, 5)
	assert.Contains(t, clauses[4], "$5")

	where := whereClause(clauses)
	assert.Contains(t, where, "WHERE ")
	assert.Contains(t, where, " AND ")
}

func TestBuildOrderBy_EmptyInput(t *testing.T) {
	assert.Equal(t, "", buildOrderBy(nil))
	assert.Equal(t, "", buildOrderBy([]model.SortInput{}))
}

func TestBuildOrderBy_UnknownColumnsDropped(t *testing.T) {
	orderBy := buildOrderBy([]model.SortInput{
		{Column: "price", Direction: "ASC"},
		{Column: "owner", Direction: "DESC"},
	})

	assert.Equal(t, "", orderBy)
}

func TestBuildOrderBy_RelationColumnsSortByName(t *testing.T) {
	orderBy := buildOrderBy([]model.SortInput{
		{Column: "make", Direction: "ASC"},
		{Column: "model", Direction: "DESC"},
	})

	assert.Equal(t, "ORDER BY mk.name ASC, md.name DESC", orderBy)
}

func TestBuildOrderBy_CompositeOrderPreserved(t *testing.T) {
	orderBy := buildOrderBy([]model.SortInput{
		{Column: "year", Direction: "desc"},
		{Column: "unknown", Direction: "ASC"},
		{Column: "make", Direction: "asc"},
	})

	assert.Equal(t, "ORDER BY d.year DESC, mk.name ASC", orderBy)
}

func TestBuildOrderBy_InvalidDirectionDefaultsToAsc(t *testing.T) {
	orderBy := buildOrderBy([]model.SortInput{{Column: "year", Direction: "sideways"}})

	assert.Equal(t, "ORDER BY d.year ASC", orderBy)
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       *int
		pageSize   *int
		wantOffset int
		wantLimit  int
		wantPaged  bool
	}{
		{"both absent", nil, nil, 0, 0, false},
		{"page absent", nil, intPtr(10), 0, 0, false},
		{"size absent", intPtr(1), nil, 0, 0, false},
		{"normal", intPtr(3), intPtr(10), 20, 10, true},
		{"negative page clamps to 1", intPtr(-5), intPtr(10), 0, 10, true},
		{"zero size clamps to 1", intPtr(1), intPtr(0), 0, 1, true},
		{"oversized clamps to 100", intPtr(2), intPtr(500), 100, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit, paged := clampPage(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPaged, paged)
			if paged {
				assert.Equal(t, tt.wantOffset, offset)
				assert.Equal(t, tt.wantLimit, limit)
			}
		})
	}
}
