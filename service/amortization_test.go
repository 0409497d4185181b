// service/amortization_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitungCicilan_ContohPinjaman(t *testing.T) {
	// Rp 1.000.000, bunga flat 1.5%/bulan, tenor 12 bulan
	p := HitungCicilan(1_000_000, 1.5, 12)

	assert.Equal(t, 180_000.0, p.TotalBunga)
	assert.Equal(t, 1_180_000.0, p.TotalBayar)
	assert.Equal(t, 98_334.0, p.CicilanPerbulan) // ceil(1.180.000/12)
	assert.Equal(t, 98_326.0, p.CicilanTerakhir)
	assert.Equal(t, 15_000.0, p.BungaPerbulan)
	assert.InDelta(t, 83_333.33, p.PokokPerbulan, 0.01)
}

func TestHitungCicilan_BungaNol(t *testing.T) {
	p := HitungCicilan(1_200_000, 0, 6)

	assert.Equal(t, 0.0, p.TotalBunga)
	assert.Equal(t, 1_200_000.0, p.TotalBayar)
	assert.Equal(t, 200_000.0, p.CicilanPerbulan)
	// Pembagian pas: tidak ada selisih, cicilan terakhir = cicilan biasa
	assert.Equal(t, 200_000.0, p.CicilanTerakhir)
}

// Invariant utama: jumlah seluruh cicilan harus TEPAT sama dengan total
// bayar, berapapun kombinasi pokok/bunga/tenor.
func TestHitungCicilan_JumlahCicilanSamaDenganTotalBayar(t *testing.T) {
	kasus := []struct {
		jumlah float64
		bunga  float64
		tenor  int
	}{
		{1_000_000, 1.5, 12},
		{5_000_000, 2, 24},
		{750_000, 1.25, 6},
		{10_000_000, 0.5, 24},
		{333_333, 1.5, 6},
		{1_000_001, 3, 12},
	}

	for _, k := range kasus {
		p := HitungCicilan(k.jumlah, k.bunga, k.tenor)

		total := p.CicilanPerbulan*float64(k.tenor-1) + p.CicilanTerakhir
		assert.InDelta(t, p.TotalBayar, total, 0.01,
			"jumlah=%v bunga=%v tenor=%d", k.jumlah, k.bunga, k.tenor)

		// Pembulatan ke atas: cicilan terakhir tidak pernah lebih besar
		assert.LessOrEqual(t, p.CicilanTerakhir, p.CicilanPerbulan)
		assert.Greater(t, p.CicilanTerakhir, 0.0)
	}
}

func TestDefaultTanggalMulai(t *testing.T) {
	today := time.Date(2026, 3, 20, 14, 30, 0, 0, time.UTC)
	mulai := DefaultTanggalMulai(today)

	assert.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), mulai)

	// Pergantian tahun
	des := time.Date(2026, 12, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), DefaultTanggalMulai(des))
}

func TestSimulasiCicilan(t *testing.T) {
	mulai := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	hasil := SimulasiCicilan(1_000_000, 1.5, 12, mulai)

	require.Len(t, hasil.JadwalCicilan, 12)

	assert.Equal(t, "2026-04-15", hasil.JadwalCicilan[0].TanggalJatuhTempo)
	assert.Equal(t, "2026-05-15", hasil.JadwalCicilan[1].TanggalJatuhTempo)
	assert.Equal(t, "2027-03-15", hasil.JadwalCicilan[11].TanggalJatuhTempo)

	// Hanya baris terakhir yang beda jumlah
	for i, row := range hasil.JadwalCicilan[:11] {
		assert.Equal(t, 98_334.0, row.JumlahCicilan, "baris %d", i+1)
	}
	assert.Equal(t, 98_326.0, hasil.JadwalCicilan[11].JumlahCicilan)
}
