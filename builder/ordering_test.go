package builder

import (
	"fmt"
	"testing"

	"github.com/mlotta/formforge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldList(n int) []model.Field {
	fields := make([]model.Field, n)
	for i := range fields {
		fields[i] = model.Field{
			ID:    fmt.Sprintf("f%d", i),
			Type:  model.TypeText,
			Label: fmt.Sprintf("Field %d", i),
			Order: i,
		}
	}
	return fields
}

func assertDense(t *testing.T, fields []model.Field) {
	t.Helper()
	for i, f := range fields {
		assert.Equal(t, i, f.Order, "field %s at index %d", f.ID, i)
	}
}

func ids(fields []model.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.ID
	}
	return out
}

func TestInsert(t *testing.T) {
	fields := fieldList(3)

	fields = Insert(fields, model.Field{ID: "new"}, 1)
	assert.Equal(t, []string{"f0", "new", "f1", "f2"}, ids(fields))
	assertDense(t, fields)
}

func TestInsertPastEndAppends(t *testing.T) {
	fields := fieldList(2)

	fields = Insert(fields, model.Field{ID: "new"}, 99)
	assert.Equal(t, []string{"f0", "f1", "new"}, ids(fields))
	assertDense(t, fields)
}

func TestInsertNegativeIndexPrepends(t *testing.T) {
	fields := fieldList(2)

	fields = Insert(fields, model.Field{ID: "new"}, -1)
	assert.Equal(t, []string{"new", "f0", "f1"}, ids(fields))
	assertDense(t, fields)
}

func TestRemove(t *testing.T) {
	fields := fieldList(3)

	fields = Remove(fields, "f1")
	assert.Equal(t, []string{"f0", "f2"}, ids(fields))
	assertDense(t, fields)
}

func TestRemoveUnknownIdIsNoop(t *testing.T) {
	fields := fieldList(3)

	fields = Remove(fields, "nope")
	assert.Equal(t, []string{"f0", "f1", "f2"}, ids(fields))
	assertDense(t, fields)
}

func TestMove(t *testing.T) {
	fields := fieldList(4)

	fields = Move(fields, "f3", "f0")
	assert.Equal(t, []string{"f3", "f0", "f1", "f2"}, ids(fields))
	assertDense(t, fields)

	fields = Move(fields, "f3", "f2")
	assert.Equal(t, []string{"f0", "f1", "f2", "f3"}, ids(fields))
	assertDense(t, fields)
}

func TestMoveToOwnPositionKeepsOrder(t *testing.T) {
	fields := fieldList(3)
	// orders deliberately scrambled to verify the defensive renumber
	fields[0].Order = 7
	fields[2].Order = -2

	fields = Move(fields, "f1", "f1")
	assert.Equal(t, []string{"f0", "f1", "f2"}, ids(fields))
	assertDense(t, fields)
}

func TestRestoreInvertsRemove(t *testing.T) {
	before := fieldList(4)

	removed := before[2]
	after := Remove(before, removed.ID)
	after = Restore(after, removed)

	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Label, after[i].Label)
		assert.Equal(t, before[i].Type, after[i].Type)
		assert.Equal(t, before[i].Order, after[i].Order)
	}
}

func TestOrderDensityAcrossMutations(t *testing.T) {
	fields := fieldList(0)

	for i := 0; i < 5; i++ {
		fields = Insert(fields, model.Field{ID: fmt.Sprintf("x%d", i)}, i/2)
		assertDense(t, fields)
	}
	fields = Move(fields, "x4", "x0")
	assertDense(t, fields)
	fields = Remove(fields, "x2")
	assertDense(t, fields)
	fields = Insert(fields, model.Field{ID: "y"}, 100)
	assertDense(t, fields)

	seen := map[int]bool{}
	for _, f := range fields {
		assert.False(t, seen[f.Order], "duplicate order %d", f.Order)
		seen[f.Order] = true
	}
}
