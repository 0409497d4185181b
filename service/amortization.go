// service/amortization.go
package service

import (
	"math"
	"time"

	"github.com/akbrdhia/SAKO-Backend/utils"
)

// PerhitunganCicilan = hasil kalkulasi bunga flat untuk satu pinjaman.
type PerhitunganCicilan struct {
	JumlahPinjaman float64 `json:"jumlah_pinjaman"`
	BungaPersen    float64 `json:"bunga_persen"`
	TenorBulan     int     `json:"tenor_bulan"`

	TotalBunga      float64 `json:"total_bunga"`
	TotalBayar      float64 `json:"total_bayar"`
	CicilanPerbulan float64 `json:"cicilan_perbulan"`
	PokokPerbulan   float64 `json:"pokok_perbulan"`
	BungaPerbulan   float64 `json:"bunga_perbulan"`
	CicilanTerakhir float64 `json:"cicilan_terakhir"`
}

// HitungCicilan menghitung cicilan bunga flat (bukan menurun).
//
// Cicilan per bulan sengaja dibulatkan KE ATAS supaya tidak ada
// kekurangan tagih; kelebihan akibat pembulatan diserap seluruhnya oleh
// cicilan terakhir, sehingga jumlah seluruh cicilan tepat = total bayar.
// Tenor diasumsikan sudah divalidasi caller (6/12/24).
func HitungCicilan(jumlahPinjaman, bungaPersen float64, tenorBulan int) PerhitunganCicilan {
	tenor := float64(tenorBulan)

	totalBunga := jumlahPinjaman * (bungaPersen / 100) * tenor
	totalBayar := jumlahPinjaman + totalBunga

	cicilanPerbulan := math.Ceil(totalBayar / tenor)

	pokokPerbulan := jumlahPinjaman / tenor
	bungaPerbulan := totalBunga / tenor

	// Selisih pembulatan masuk ke cicilan terakhir
	selisih := cicilanPerbulan*tenor - totalBayar
	cicilanTerakhir := cicilanPerbulan - selisih

	return PerhitunganCicilan{
		JumlahPinjaman:  jumlahPinjaman,
		BungaPersen:     bungaPersen,
		TenorBulan:      tenorBulan,
		TotalBunga:      utils.Round2(totalBunga),
		TotalBayar:      utils.Round2(totalBayar),
		CicilanPerbulan: cicilanPerbulan,
		PokokPerbulan:   utils.Round2(pokokPerbulan),
		BungaPerbulan:   utils.Round2(bungaPerbulan),
		CicilanTerakhir: utils.Round2(cicilanTerakhir),
	}
}

// DefaultTanggalMulai: tanggal 15 bulan berikutnya dari "hari ini".
func DefaultTanggalMulai(today time.Time) time.Time {
	next := today.AddDate(0, 1, 0)
	return time.Date(next.Year(), next.Month(), 15, 0, 0, 0, 0, today.Location())
}

// SimulasiRow = satu baris jadwal pada simulasi (preview, tanpa save DB).
type SimulasiRow struct {
	CicilanKe         int     `json:"cicilan_ke"`
	TanggalJatuhTempo string  `json:"tanggal_jatuh_tempo"`
	JumlahCicilan     float64 `json:"jumlah_cicilan"`
	Pokok             float64 `json:"pokok"`
	Bunga             float64 `json:"bunga"`
}

type HasilSimulasi struct {
	Perhitungan   PerhitunganCicilan `json:"perhitungan"`
	JadwalCicilan []SimulasiRow      `json:"jadwal_cicilan"`
}

// SimulasiCicilan menghasilkan preview perhitungan + jadwal tanpa
// menyentuh database.
func SimulasiCicilan(jumlahPinjaman, bungaPersen float64, tenorBulan int, tanggalMulai time.Time) HasilSimulasi {
	perhitungan := HitungCicilan(jumlahPinjaman, bungaPersen, tenorBulan)

	jadwal := make([]SimulasiRow, 0, tenorBulan)
	for i := 1; i <= tenorBulan; i++ {
		jatuhTempo := tanggalMulai.AddDate(0, i-1, 0)

		jumlah := perhitungan.CicilanPerbulan
		if i == tenorBulan {
			jumlah = perhitungan.CicilanTerakhir
		}

		jadwal = append(jadwal, SimulasiRow{
			CicilanKe:         i,
			TanggalJatuhTempo: jatuhTempo.Format("2006-01-02"),
			JumlahCicilan:     jumlah,
			Pokok:             perhitungan.PokokPerbulan,
			Bunga:             perhitungan.BungaPerbulan,
		})
	}

	return HasilSimulasi{Perhitungan: perhitungan, JadwalCicilan: jadwal}
}
