package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ErrBusiness("time_conflict"))

	assert.True(t, IsBusiness(err, "time_conflict"))
	assert.False(t, IsBusiness(err, "invalid_state"))
	assert.False(t, IsBusiness(errors.New("time_conflict"), "time_conflict"))
	assert.True(t, errors.Is(err, ErrBusiness("time_conflict")))
}

func TestIsExclusionConflict(t *testing.T) {
	exclusion := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})
	unique := &pgconn.PgError{Code: "23505"}

	assert.True(t, IsExclusionConflict(exclusion))
	assert.False(t, IsExclusionConflict(unique))
	assert.False(t, IsExclusionConflict(errors.New("boom")))
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(fmt.Errorf("cancel: %w", ErrBusiness("already_terminal")))
	assert.True(t, ok)
	assert.Equal(t, "already_terminal", code)

	_, ok = CodeOf(errors.New("already_terminal"))
	assert.False(t, ok)
}
