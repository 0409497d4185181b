// service/alokasi.go
package service

import "github.com/akbrdhia/SAKO-Backend/models"

// HasilAlokasi = pembagian satu setoran kas ke bucket denda/bunga/pokok.
type HasilAlokasi struct {
	AlokasiDenda float64 `json:"alokasi_denda"`
	AlokasiBunga float64 `json:"alokasi_bunga"`
	AlokasiPokok float64 `json:"alokasi_pokok"`

	// Sisa per bucket setelah alokasi ini
	SisaDenda float64 `json:"sisa_denda"`
	SisaBunga float64 `json:"sisa_bunga"`
	SisaPokok float64 `json:"sisa_pokok"`

	// Kas yang tersisa setelah semua bucket habis (kelebihan bayar)
	Kelebihan float64 `json:"kelebihan"`

	Lunas bool `json:"lunas"`
}

func (h HasilAlokasi) TotalSisa() float64 { return h.SisaDenda + h.SisaBunga + h.SisaPokok }

// SisaPerBucket menghitung tagihan tersisa per bucket untuk satu cicilan,
// dengan denda hasil evaluasi terbaru (bukan snapshot lama).
func SisaPerBucket(j *models.JadwalCicilan, denda float64) (sisaDenda, sisaBunga, sisaPokok float64) {
	sisaDenda = maxf(0, denda-j.JumlahDibayarDenda)
	sisaBunga = maxf(0, j.Bunga-j.JumlahDibayarBunga)
	sisaPokok = maxf(0, j.Pokok-j.JumlahDibayarPokok)
	return
}

// AlokasiPembayaran membagi jumlahBayar ke bucket secara berurutan:
// denda dulu, lalu bunga, terakhir pokok. Tiap bucket menyerap
// min(sisa kas, sisa bucket). Kas yang masih tersisa setelah pokok
// TIDAK dialokasikan (tidak carry ke cicilan berikut, tidak refund);
// dikembalikan sebagai Kelebihan supaya caller bisa mencatatnya.
func AlokasiPembayaran(sisaDenda, sisaBunga, sisaPokok, jumlahBayar float64) HasilAlokasi {
	sisa := jumlahBayar
	var h HasilAlokasi

	// 1. Denda dulu
	if sisa > 0 && sisaDenda > 0 {
		h.AlokasiDenda = minf(sisa, sisaDenda)
		sisa -= h.AlokasiDenda
	}

	// 2. Bunga
	if sisa > 0 && sisaBunga > 0 {
		h.AlokasiBunga = minf(sisa, sisaBunga)
		sisa -= h.AlokasiBunga
	}

	// 3. Pokok
	if sisa > 0 && sisaPokok > 0 {
		h.AlokasiPokok = minf(sisa, sisaPokok)
		sisa -= h.AlokasiPokok
	}

	h.SisaDenda = maxf(0, sisaDenda-h.AlokasiDenda)
	h.SisaBunga = maxf(0, sisaBunga-h.AlokasiBunga)
	h.SisaPokok = maxf(0, sisaPokok-h.AlokasiPokok)
	h.Kelebihan = maxf(0, sisa)
	h.Lunas = h.SisaDenda <= 0 && h.SisaBunga <= 0 && h.SisaPokok <= 0

	return h
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
