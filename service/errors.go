// service/errors.go
package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kode error service. Controller memetakan kode ini ke status HTTP;
// service tidak pernah menelan konflik state secara diam-diam.
const (
	CodeValidation    = "ValidationError"
	CodeStateConflict = "StateConflictError"
	CodeNotFound      = "NotFoundError"
	CodePersistence   = "PersistenceError"

	// Kode spesifik pembayaran
	CodeAlreadySettled = "AlreadySettled"
	CodeLoanNotActive  = "LoanNotActive"
	CodeInvalidAmount  = "InvalidAmount"
)

type ServiceError struct {
	Code    string
	Message string
	Err     error // penyebab asli, opsional
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

func ErrValidation(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func ErrStateConflict(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Code: CodeStateConflict, Message: fmt.Sprintf(format, args...)}
}

func ErrNotFound(entitas string, id uint) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: fmt.Sprintf("%s dengan id %d tidak ditemukan", entitas, id)}
}

func ErrPersistence(op string, err error) *ServiceError {
	return &ServiceError{Code: CodePersistence, Message: "gagal " + op, Err: err}
}

func ErrAlreadySettled(cicilanKe int) *ServiceError {
	return &ServiceError{Code: CodeAlreadySettled, Message: fmt.Sprintf("cicilan ke-%d sudah lunas", cicilanKe)}
}

func ErrLoanNotActive(status string) *ServiceError {
	return &ServiceError{Code: CodeLoanNotActive, Message: "pinjaman tidak dalam status aktif (status: " + status + ")"}
}

func ErrInvalidAmount() *ServiceError {
	return &ServiceError{Code: CodeInvalidAmount, Message: "jumlah pembayaran harus lebih dari 0"}
}

// isDuplikatKunci: Postgres 23505 (duplikat pada unique index), juga
// saat terbungkus ServiceError.
func isDuplikatKunci(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// CodeOf mengambil kode dari error service; "" kalau bukan ServiceError.
func CodeOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
