// service/alokasi_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akbrdhia/SAKO-Backend/models"
)

func TestAlokasiPembayaran_Parsial(t *testing.T) {
	// Tagihan: denda 50, bunga 200, pokok 1000; bayar 300
	h := AlokasiPembayaran(50, 200, 1000, 300)

	assert.Equal(t, 50.0, h.AlokasiDenda)
	assert.Equal(t, 200.0, h.AlokasiBunga)
	assert.Equal(t, 50.0, h.AlokasiPokok)

	assert.Zero(t, h.SisaDenda)
	assert.Zero(t, h.SisaBunga)
	assert.Equal(t, 950.0, h.SisaPokok)

	assert.Zero(t, h.Kelebihan)
	assert.False(t, h.Lunas)
}

func TestAlokasiPembayaran_Pelunasan(t *testing.T) {
	h := AlokasiPembayaran(50, 200, 1000, 1250)

	assert.Equal(t, 50.0, h.AlokasiDenda)
	assert.Equal(t, 200.0, h.AlokasiBunga)
	assert.Equal(t, 1000.0, h.AlokasiPokok)
	assert.Zero(t, h.TotalSisa())
	assert.Zero(t, h.Kelebihan)
	assert.True(t, h.Lunas)
}

func TestAlokasiPembayaran_KelebihanBayar(t *testing.T) {
	h := AlokasiPembayaran(0, 200, 1000, 1500)

	assert.Zero(t, h.AlokasiDenda)
	assert.Equal(t, 200.0, h.AlokasiBunga)
	assert.Equal(t, 1000.0, h.AlokasiPokok)

	// Kelebihan tidak dialokasikan ke bucket manapun
	assert.Equal(t, 300.0, h.Kelebihan)
	assert.True(t, h.Lunas)
}

func TestAlokasiPembayaran_BayarKecilHanyaKenaDenda(t *testing.T) {
	h := AlokasiPembayaran(50, 200, 1000, 30)

	assert.Equal(t, 30.0, h.AlokasiDenda)
	assert.Zero(t, h.AlokasiBunga)
	assert.Zero(t, h.AlokasiPokok)
	assert.Equal(t, 20.0, h.SisaDenda)
	assert.False(t, h.Lunas)
}

// Pembayaran bertahap harus ekuivalen dengan satu pembayaran sekaligus.
func TestAlokasiPembayaran_Bertahap(t *testing.T) {
	sisaDenda, sisaBunga, sisaPokok := 50.0, 200.0, 1000.0

	var totalDenda, totalBunga, totalPokok float64
	for _, bayar := range []float64{100, 400, 750} {
		h := AlokasiPembayaran(sisaDenda, sisaBunga, sisaPokok, bayar)
		totalDenda += h.AlokasiDenda
		totalBunga += h.AlokasiBunga
		totalPokok += h.AlokasiPokok
		sisaDenda, sisaBunga, sisaPokok = h.SisaDenda, h.SisaBunga, h.SisaPokok
	}

	assert.Equal(t, 50.0, totalDenda)
	assert.Equal(t, 200.0, totalBunga)
	assert.Equal(t, 1000.0, totalPokok)
	assert.Zero(t, sisaDenda+sisaBunga+sisaPokok)
}

func TestSisaPerBucket(t *testing.T) {
	j := &models.JadwalCicilan{
		Bunga:              15_000,
		Pokok:              83_334,
		JumlahDibayarDenda: 100,
		JumlahDibayarBunga: 15_000,
		JumlahDibayarPokok: 50_000,
	}

	// Denda dievaluasi ulang jadi 400: sisa denda = 400 - 100
	sisaDenda, sisaBunga, sisaPokok := SisaPerBucket(j, 400)
	assert.Equal(t, 300.0, sisaDenda)
	assert.Zero(t, sisaBunga)
	assert.Equal(t, 33_334.0, sisaPokok)

	// Kalau sudah terbayar lebih dari tagihan bucket, sisa tidak negatif
	j.JumlahDibayarBunga = 20_000
	_, sisaBunga, _ = SisaPerBucket(j, 0)
	assert.Zero(t, sisaBunga)
}
