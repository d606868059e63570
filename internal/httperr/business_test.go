package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestBusinessError(t *testing.T) {
	err := ErrBusiness(CodeSlotConflict)

	assert.True(t, IsBusiness(err, CodeSlotConflict))
	assert.False(t, IsBusiness(err, CodePastTimeNotAllowed))
	assert.Equal(t, CodeSlotConflict, BusinessCode(err))
	assert.Equal(t, CodeSlotConflict, err.Error())
}

func TestBusinessErrorWrapped(t *testing.T) {
	err := fmt.Errorf("booking: %w", ErrBusiness(CodeDepartmentMismatch))

	assert.True(t, IsBusiness(err, CodeDepartmentMismatch))
	assert.Equal(t, CodeDepartmentMismatch, BusinessCode(err))
}

func TestBusinessCodeOnForeignError(t *testing.T) {
	assert.Equal(t, "", BusinessCode(errors.New("boom")))
	assert.Equal(t, "", BusinessCode(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uidx_appointments_doctor_slot"}

	assert.True(t, IsUniqueViolation(pgErr))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgErr)))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsReadOnly(t *testing.T) {
	assert.True(t, IsReadOnly(&pgconn.PgError{Code: "25006"}))
	assert.False(t, IsReadOnly(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsReadOnly(nil))
}
