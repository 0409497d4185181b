// service/denda.go
package service

import (
	"time"

	"github.com/akbrdhia/SAKO-Backend/config"
	"github.com/akbrdhia/SAKO-Backend/models"
	"github.com/akbrdhia/SAKO-Backend/utils"
)

// HariTelat menghitung keterlambatan dalam hari utuh per tanggal "today".
// 0 kalau belum lewat jatuh tempo atau cicilan sudah lunas. Nilai ini
// derived: dihitung ulang setiap evaluasi, bukan di-increment.
func HariTelat(j *models.JadwalCicilan, today time.Time) int {
	if j.SudahLunas() {
		return 0
	}
	due := tanggalSaja(j.TanggalJatuhTempo)
	now := tanggalSaja(today)
	if !due.Before(now) {
		return 0
	}
	return int(now.Sub(due).Hours() / 24)
}

// HitungDenda: denda sederhana (bukan bunga berbunga) =
// jumlah_cicilan x rate_per_hari x hari_telat, dengan cap
// jumlah_cicilan x max_persen/100.
func HitungDenda(j *models.JadwalCicilan, today time.Time, cfg config.CicilanConfig) float64 {
	if !cfg.DendaEnabled {
		return 0
	}
	hari := HariTelat(j, today)
	if hari <= 0 {
		return 0
	}

	denda := j.JumlahCicilan * cfg.DendaPerHari * float64(hari)

	if cfg.DendaMaxPersen > 0 {
		max := j.JumlahCicilan * cfg.DendaMaxPersen / 100
		if denda > max {
			denda = max
		}
	}

	return utils.Round2(denda)
}

// tanggalSaja membuang komponen jam supaya selisih hari konsisten.
func tanggalSaja(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
