// models/pembayaran_cicilan.go
package models

import "time"

type MetodeBayar string

const (
	BayarTunai    MetodeBayar = "tunai"
	BayarTransfer MetodeBayar = "transfer"
	BayarLainnya  MetodeBayar = "lainnya"
)

func (m MetodeBayar) Valid() bool {
	switch m {
	case BayarTunai, BayarTransfer, BayarLainnya:
		return true
	}
	return false
}

// PembayaranCicilan = bukti pembayaran, append-only. Sekali dibuat tidak
// pernah di-update atau dihapus (audit trail). Kolom sisa_* adalah sisa
// per bucket SETELAH pembayaran ini.
type PembayaranCicilan struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	JadwalCicilanID uint `gorm:"index:idx_pembayaran_jadwal_tanggal;not null" json:"jadwal_cicilan_id"`
	PinjamanID      uint `gorm:"index:idx_pembayaran_pinjaman_tanggal;not null" json:"pinjaman_id"` // denormalized untuk query

	JumlahBayar  float64   `gorm:"type:numeric(15,2);not null" json:"jumlah_bayar"`
	TanggalBayar time.Time `gorm:"type:date;not null;index:idx_pembayaran_jadwal_tanggal;index:idx_pembayaran_pinjaman_tanggal" json:"tanggal_bayar"`

	// Breakdown alokasi (urutan: denda -> bunga -> pokok)
	AlokasiDenda float64 `gorm:"type:numeric(15,2);not null;default:0" json:"alokasi_denda"`
	AlokasiBunga float64 `gorm:"type:numeric(15,2);not null;default:0" json:"alokasi_bunga"`
	AlokasiPokok float64 `gorm:"type:numeric(15,2);not null;default:0" json:"alokasi_pokok"`

	// Sisa setelah pembayaran ini
	SisaDenda float64 `gorm:"type:numeric(15,2);not null;default:0" json:"sisa_denda"`
	SisaBunga float64 `gorm:"type:numeric(15,2);not null;default:0" json:"sisa_bunga"`
	SisaPokok float64 `gorm:"type:numeric(15,2);not null;default:0" json:"sisa_pokok"`

	// Kelebihan bayar di luar total tagihan. Tidak di-carry ke cicilan
	// berikutnya dan tidak di-refund; dicatat supaya tidak hilang diam-diam.
	KelebihanBayar float64 `gorm:"type:numeric(15,2);not null;default:0" json:"kelebihan_bayar"`

	MetodeBayar    MetodeBayar `gorm:"size:20;not null;default:tunai" json:"metode_bayar"`
	NomorReferensi string      `gorm:"size:100" json:"nomor_referensi,omitempty"` // no bukti transfer dll
	Keterangan     string      `gorm:"type:text" json:"keterangan,omitempty"`

	DibayarOleh uint `gorm:"not null" json:"dibayar_oleh"` // kasir yang input

	CreatedAt time.Time `json:"created_at"`
}

func (PembayaranCicilan) TableName() string { return "pembayaran_cicilans" }

// IsLunasi: pembayaran ini melunasi cicilannya.
func (p *PembayaranCicilan) IsLunasi() bool {
	return p.SisaDenda <= 0 && p.SisaBunga <= 0 && p.SisaPokok <= 0
}

func (p *PembayaranCicilan) TotalAlokasi() float64 {
	return p.AlokasiDenda + p.AlokasiBunga + p.AlokasiPokok
}
