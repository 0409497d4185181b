// service/denda_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akbrdhia/SAKO-Backend/config"
	"github.com/akbrdhia/SAKO-Backend/models"
)

func cfgDenda() config.CicilanConfig {
	return config.CicilanConfig{
		DendaEnabled:   true,
		DendaPerHari:   0.001, // 0.1% per hari
		DendaMaxPersen: 10,
	}
}

func jadwalDenganTempo(due time.Time) *models.JadwalCicilan {
	return &models.JadwalCicilan{
		JumlahCicilan:     100_000,
		TanggalJatuhTempo: due,
		Status:            models.CicilanBelumBayar,
	}
}

func TestHariTelat(t *testing.T) {
	due := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	j := jadwalDenganTempo(due)

	// Sebelum dan tepat di jatuh tempo: 0
	assert.Zero(t, HariTelat(j, due.AddDate(0, 0, -3)))
	assert.Zero(t, HariTelat(j, due))

	assert.Equal(t, 1, HariTelat(j, due.AddDate(0, 0, 1)))
	assert.Equal(t, 30, HariTelat(j, due.AddDate(0, 0, 30)))

	// Komponen jam diabaikan: jam 23:59 di hari jatuh tempo tetap 0
	assert.Zero(t, HariTelat(j, time.Date(2026, 4, 15, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 1, HariTelat(j, time.Date(2026, 4, 16, 0, 1, 0, 0, time.UTC)))
}

func TestHariTelat_SudahLunasSelaluNol(t *testing.T) {
	j := jadwalDenganTempo(time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC))
	j.Status = models.CicilanSudahBayar

	assert.Zero(t, HariTelat(j, j.TanggalJatuhTempo.AddDate(0, 0, 60)))
}

func TestHitungDenda(t *testing.T) {
	due := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	j := jadwalDenganTempo(due)
	cfg := cfgDenda()

	// Belum telat: 0
	assert.Zero(t, HitungDenda(j, due, cfg))

	// 5 hari telat: 100.000 x 0.001 x 5 = 500
	assert.Equal(t, 500.0, HitungDenda(j, due.AddDate(0, 0, 5), cfg))

	// Denda linear terhadap hari telat, bukan di-increment: evaluasi
	// berulang di hari yang sama selalu menghasilkan angka yang sama
	d1 := HitungDenda(j, due.AddDate(0, 0, 20), cfg)
	d2 := HitungDenda(j, due.AddDate(0, 0, 20), cfg)
	assert.Equal(t, d1, d2)
}

func TestHitungDenda_Cap(t *testing.T) {
	due := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	j := jadwalDenganTempo(due)
	cfg := cfgDenda()

	// Cap 10% dari 100.000 = 10.000; tercapai di hari ke-100
	assert.Equal(t, 10_000.0, HitungDenda(j, due.AddDate(0, 0, 100), cfg))
	assert.Equal(t, 10_000.0, HitungDenda(j, due.AddDate(0, 0, 365), cfg))
}

func TestHitungDenda_Disabled(t *testing.T) {
	due := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	j := jadwalDenganTempo(due)

	cfg := cfgDenda()
	cfg.DendaEnabled = false

	assert.Zero(t, HitungDenda(j, due.AddDate(0, 0, 30), cfg))
}
