// service/cicilan_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akbrdhia/SAKO-Backend/models"
)

// Fixture: pinjaman aktif yang tinggal satu cicilan terakhir.
func cicilanTerakhirAktif() (*models.JadwalCicilan, *models.Pinjaman) {
	pinjaman := &models.Pinjaman{
		ID:             1,
		JumlahPinjaman: 1_000_000,
		TotalBunga:     180_000,
		SisaPokok:      83_334,
		SisaBunga:      15_000,
		Status:         models.PinjamanActive,
	}
	cicilan := &models.JadwalCicilan{
		ID:                12,
		PinjamanID:        1,
		CicilanKe:         12,
		TanggalJatuhTempo: time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC),
		JumlahCicilan:     98_334,
		Pokok:             83_334,
		Bunga:             15_000,
		Status:            models.CicilanBelumBayar,
	}
	return cicilan, pinjaman
}

func metaTunai() MetadataBayar { return MetadataBayar{MetodeBayar: models.BayarTunai} }

// Pembayaran penuh cicilan terakhir: cicilan jadi sudah_bayar DAN
// pinjaman jadi lunas dalam satu langkah.
func TestTerapkanPembayaran_PelunasanPenuh(t *testing.T) {
	cicilan, pinjaman := cicilanTerakhirAktif()
	today := cicilan.TanggalJatuhTempo

	pembayaran, alokasi, err := terapkanPembayaran(cicilan, pinjaman, 98_334, 3, metaTunai(), today, cfgDenda())
	require.NoError(t, err)

	assert.True(t, alokasi.Lunas)
	assert.Equal(t, 15_000.0, pembayaran.AlokasiBunga)
	assert.Equal(t, 83_334.0, pembayaran.AlokasiPokok)
	assert.Zero(t, pembayaran.KelebihanBayar)
	assert.True(t, pembayaran.IsLunasi())

	assert.Equal(t, models.CicilanSudahBayar, cicilan.Status)
	require.NotNil(t, cicilan.TanggalBayar)
	assert.Equal(t, today, *cicilan.TanggalBayar)
	require.NotNil(t, cicilan.DibayarOleh)
	assert.Equal(t, uint(3), *cicilan.DibayarOleh)

	assert.Zero(t, pinjaman.SisaPokok)
	assert.Zero(t, pinjaman.SisaBunga)
	assert.Equal(t, models.PinjamanLunas, pinjaman.Status)
}

// Partial lalu pelunasan: saldo turun bertahap, status baru berubah di
// pembayaran yang menghabiskan semua bucket.
func TestTerapkanPembayaran_ParsialLaluLunas(t *testing.T) {
	cicilan, pinjaman := cicilanTerakhirAktif()
	today := cicilan.TanggalJatuhTempo

	_, alokasi, err := terapkanPembayaran(cicilan, pinjaman, 40_000, 3, metaTunai(), today, cfgDenda())
	require.NoError(t, err)

	assert.False(t, alokasi.Lunas)
	assert.Equal(t, models.CicilanBelumBayar, cicilan.Status)
	assert.Nil(t, cicilan.TanggalBayar)
	assert.Equal(t, 40_000.0, cicilan.JumlahDibayar)
	// Bunga 15.000 habis dulu, sisanya ke pokok
	assert.Equal(t, 15_000.0, cicilan.JumlahDibayarBunga)
	assert.Equal(t, 25_000.0, cicilan.JumlahDibayarPokok)
	assert.Equal(t, models.PinjamanActive, pinjaman.Status)
	assert.Equal(t, 58_334.0, pinjaman.SisaPokok)
	assert.Zero(t, pinjaman.SisaBunga)

	_, alokasi, err = terapkanPembayaran(cicilan, pinjaman, 58_334, 3, metaTunai(), today, cfgDenda())
	require.NoError(t, err)

	assert.True(t, alokasi.Lunas)
	assert.Equal(t, models.CicilanSudahBayar, cicilan.Status)
	assert.Equal(t, models.PinjamanLunas, pinjaman.Status)
	assert.Zero(t, pinjaman.SisaPokok)
}

// Pembayaran telat: status cicilan jadi telat dan denda masuk alokasi
// paling depan.
func TestTerapkanPembayaran_Telat(t *testing.T) {
	cicilan, pinjaman := cicilanTerakhirAktif()
	today := cicilan.TanggalJatuhTempo.AddDate(0, 0, 10)

	// Denda: 98.334 x 0.001 x 10 hari
	_, alokasi, err := terapkanPembayaran(cicilan, pinjaman, 500, 3, metaTunai(), today, cfgDenda())
	require.NoError(t, err)

	assert.Equal(t, models.CicilanTelat, cicilan.Status)
	assert.Equal(t, 10, cicilan.HariTelat)
	assert.InDelta(t, 983.34, cicilan.Denda, 0.01)
	assert.Equal(t, 500.0, alokasi.AlokasiDenda)
	assert.Zero(t, alokasi.AlokasiBunga)
}

func TestTerapkanPembayaran_CicilanSudahLunas(t *testing.T) {
	cicilan, pinjaman := cicilanTerakhirAktif()
	cicilan.Status = models.CicilanSudahBayar

	_, _, err := terapkanPembayaran(cicilan, pinjaman, 98_334, 3, metaTunai(), cicilan.TanggalJatuhTempo, cfgDenda())
	require.Error(t, err)
	assert.Equal(t, CodeAlreadySettled, CodeOf(err))

	// Tidak ada mutasi
	assert.Zero(t, cicilan.JumlahDibayar)
	assert.Equal(t, 83_334.0, pinjaman.SisaPokok)
}

func TestTerapkanPembayaran_PinjamanBelumAktif(t *testing.T) {
	for _, status := range []models.StatusPinjaman{
		models.PinjamanPending, models.PinjamanApproved,
		models.PinjamanRejected, models.PinjamanLunas,
	} {
		cicilan, pinjaman := cicilanTerakhirAktif()
		pinjaman.Status = status

		_, _, err := terapkanPembayaran(cicilan, pinjaman, 98_334, 3, metaTunai(), cicilan.TanggalJatuhTempo, cfgDenda())
		require.Error(t, err, "status %s", status)
		assert.Equal(t, CodeLoanNotActive, CodeOf(err), "status %s", status)
		assert.Zero(t, cicilan.JumlahDibayar)
	}
}
