// service/jadwal.go
package service

import (
	"time"

	"github.com/akbrdhia/SAKO-Backend/models"
)

// GenerateJadwal membentuk seluruh baris jadwal cicilan untuk satu
// pinjaman. Jatuh tempo = tanggalMulai + (i-1) bulan. Hanya JUMLAH
// cicilan terakhir yang memakai nilai penyesuaian pembulatan; porsi
// pokok/bunga semua baris sama (perilaku sistem lama dipertahankan,
// jadi total cicilan terakhir tidak sama dengan pokok+bunga barisnya).
func GenerateJadwal(pinjaman *models.Pinjaman, perhitungan PerhitunganCicilan, tanggalMulai time.Time) []models.JadwalCicilan {
	jadwal := make([]models.JadwalCicilan, 0, perhitungan.TenorBulan)

	for i := 1; i <= perhitungan.TenorBulan; i++ {
		jatuhTempo := tanggalMulai.AddDate(0, i-1, 0)

		jumlah := perhitungan.CicilanPerbulan
		if i == perhitungan.TenorBulan {
			jumlah = perhitungan.CicilanTerakhir
		}

		jadwal = append(jadwal, models.JadwalCicilan{
			KoperasiID:        pinjaman.KoperasiID,
			PinjamanID:        pinjaman.ID,
			CicilanKe:         i,
			TanggalJatuhTempo: jatuhTempo,
			JumlahCicilan:     jumlah,
			Pokok:             perhitungan.PokokPerbulan,
			Bunga:             perhitungan.BungaPerbulan,
			Status:            models.CicilanBelumBayar,
		})
	}

	return jadwal
}
