package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsNotFound(t *testing.T) {
	assert.False(t, IsNotFound(nil))
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("find wallet: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFound(errors.New("connection refused")))
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("boom"), false},
		{&pgconn.PgError{Code: "23505", ConstraintName: "idx_transactions_tx_hash"}, true},
		{fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{&pgconn.PgError{Code: "23503"}, false},
		{gorm.ErrDuplicatedKey, true},
	}

	for _, x := range tests {
		assert.Equal(t, x.want, IsUniqueViolation(x.err), "%v", x.err)
	}
}
