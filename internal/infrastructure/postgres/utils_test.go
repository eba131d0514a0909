package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

func TestPgErrorClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "items_qr_code_key"})
	fk := &pgconn.PgError{Code: "23503"}
	check := &pgconn.PgError{Code: "23514", ConstraintName: "items_counters_balanced"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.True(t, isCheckViolation(check))
	assert.Equal(t, "items_counters_balanced", constraintName(check))
	assert.Equal(t, "", constraintName(errors.New("boom")))
}

func TestWhereBuilder(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var w whereBuilder
	w.eq("item_id", "abc")
	w.eq("status", "")
	w.period("data_saida", repository.DateRange{Start: &start, End: &end})

	assert.Equal(t, " WHERE item_id = $1 AND data_saida >= $2 AND data_saida <= $3", w.sql())
	assert.Equal(t, []any{"abc", start, end}, w.args)

	var empty whereBuilder
	assert.Equal(t, "", empty.sql())
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	v := nullIfEmpty("SN-1")
	if assert.NotNil(t, v) {
		assert.Equal(t, "SN-1", *v)
	}
}
