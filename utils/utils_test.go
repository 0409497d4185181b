// utils/utils_test.go
package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 83_333.33, Round2(83_333.333333))
	assert.Equal(t, 83_333.34, Round2(83_333.336))
	assert.Equal(t, 100.0, Round2(100))
	assert.Equal(t, -10.56, Round2(-10.556))
	assert.Equal(t, 0.0, Round2(0))
}

func TestGenNoPinjaman(t *testing.T) {
	tgl := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "PNJ-KSP001-2026-00001", GenNoPinjaman("KSP001", 1, tgl))
	assert.Equal(t, "PNJ-KSP001-2026-00042", GenNoPinjaman("KSP001", 42, tgl))
	assert.Equal(t, "PNJ-KSP002-2026-12345", GenNoPinjaman("KSP002", 12345, tgl))
}

func TestGenNoAnggota(t *testing.T) {
	assert.Equal(t, "AGT-1-000007", GenNoAnggota(1, 7))
	assert.Equal(t, "AGT-12-000120", GenNoAnggota(12, 120))
}

func TestJWT_RoundTrip(t *testing.T) {
	token, err := GenerateToken(7, "Budi", "kasir", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "Budi", claims["nama"])
	assert.Equal(t, "kasir", claims["role"])
	assert.Equal(t, float64(1), claims["koperasi_id"])
}

func TestJWT_TokenRusak(t *testing.T) {
	_, err := VerifyToken("bukan.token.valid")
	assert.Error(t, err)
}
