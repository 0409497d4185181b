// models/jadwal_cicilan.go
package models

import "time"

type StatusCicilan string

const (
	CicilanBelumBayar StatusCicilan = "belum_bayar"
	CicilanSudahBayar StatusCicilan = "sudah_bayar"
	CicilanTelat      StatusCicilan = "telat"
)

// JadwalCicilan = satu kewajiban angsuran. Field jumlah_dibayar_* adalah
// akumulasi per bucket (denda/bunga/pokok); denda dan hari_telat adalah
// snapshot hasil evaluasi terakhir (sweep atau pembayaran), bukan nilai
// yang di-increment.
type JadwalCicilan struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	KoperasiID uint      `gorm:"index;not null" json:"koperasi_id"`
	PinjamanID uint      `gorm:"uniqueIndex:idx_jadwal_pinjaman_ke;not null" json:"pinjaman_id"`
	Pinjaman   *Pinjaman `gorm:"foreignKey:PinjamanID" json:"pinjaman,omitempty"`

	CicilanKe         int       `gorm:"uniqueIndex:idx_jadwal_pinjaman_ke;not null" json:"cicilan_ke"`
	TanggalJatuhTempo time.Time `gorm:"type:date;not null;index:idx_jadwal_tempo_status" json:"tanggal_jatuh_tempo"`

	JumlahCicilan float64 `gorm:"type:numeric(15,2);not null" json:"jumlah_cicilan"`
	Pokok         float64 `gorm:"type:numeric(15,2);not null" json:"pokok"`
	Bunga         float64 `gorm:"type:numeric(15,2);not null" json:"bunga"`

	// Akumulasi pembayaran
	JumlahDibayar      float64 `gorm:"type:numeric(15,2);not null;default:0" json:"jumlah_dibayar"`
	JumlahDibayarDenda float64 `gorm:"type:numeric(15,2);not null;default:0" json:"jumlah_dibayar_denda"`
	JumlahDibayarBunga float64 `gorm:"type:numeric(15,2);not null;default:0" json:"jumlah_dibayar_bunga"`
	JumlahDibayarPokok float64 `gorm:"type:numeric(15,2);not null;default:0" json:"jumlah_dibayar_pokok"`

	// Snapshot keterlambatan
	Denda     float64 `gorm:"type:numeric(15,2);not null;default:0" json:"denda"`
	HariTelat int     `gorm:"not null;default:0" json:"hari_telat"`

	Status       StatusCicilan `gorm:"size:20;not null;default:belum_bayar;index:idx_jadwal_tempo_status" json:"status"`
	TanggalBayar *time.Time    `json:"tanggal_bayar,omitempty"` // terisi saat lunas
	DibayarOleh  *uint         `json:"dibayar_oleh,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (JadwalCicilan) TableName() string { return "jadwal_cicilans" }

func (j *JadwalCicilan) SudahLunas() bool { return j.Status == CicilanSudahBayar }
