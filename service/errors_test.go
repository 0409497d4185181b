// service/errors_test.go
package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(ErrValidation("tenor salah")))
	assert.Equal(t, CodeAlreadySettled, CodeOf(ErrAlreadySettled(3)))
	assert.Equal(t, CodeLoanNotActive, CodeOf(ErrLoanNotActive("pending")))
	assert.Equal(t, "", CodeOf(errors.New("bukan service error")))
	assert.Equal(t, "", CodeOf(nil))
}

func TestServiceError_Unwrap(t *testing.T) {
	penyebab := errors.New("connection refused")
	err := ErrPersistence("simpan pinjaman", penyebab)

	assert.ErrorIs(t, err, penyebab)
	assert.Contains(t, err.Error(), "PersistenceError")
	assert.Contains(t, err.Error(), "connection refused")

	// Kode tetap terbaca walau dibungkus lagi
	dibungkus := fmt.Errorf("controller: %w", err)
	assert.Equal(t, CodePersistence, CodeOf(dibungkus))
}

func TestIsDuplikatKunci(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}

	assert.True(t, isDuplikatKunci(dup))
	// Terdeteksi juga lewat bungkus ServiceError (jalur AjukanPinjaman)
	assert.True(t, isDuplikatKunci(ErrPersistence("buat pinjaman", dup)))

	assert.False(t, isDuplikatKunci(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isDuplikatKunci(errors.New("duplicate key")))
	assert.False(t, isDuplikatKunci(nil))
}
