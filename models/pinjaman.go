// models/pinjaman.go
package models

import "time"

type StatusPinjaman string

const (
	PinjamanPending  StatusPinjaman = "pending"
	PinjamanApproved StatusPinjaman = "approved"
	PinjamanRejected StatusPinjaman = "rejected"
	PinjamanActive   StatusPinjaman = "active"
	PinjamanLunas    StatusPinjaman = "lunas"
)

// Pinjaman dengan bunga flat. total_bunga/total_bayar/cicilan_perbulan
// dihitung sekali saat pengajuan; sisa_pokok dan sisa_bunga hanya boleh
// berubah lewat pembayaran cicilan.
type Pinjaman struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	KoperasiID uint      `gorm:"index:idx_pinjaman_koperasi_status;not null" json:"koperasi_id"`
	UserID     uint      `gorm:"index:idx_pinjaman_user_status;not null" json:"user_id"`
	Anggota    *User     `gorm:"foreignKey:UserID" json:"anggota,omitempty"`

	NoPinjaman     string  `gorm:"size:50;uniqueIndex;not null" json:"no_pinjaman"`
	JumlahPinjaman float64 `gorm:"type:numeric(15,2);not null" json:"jumlah_pinjaman"`
	BungaPersen    float64 `gorm:"type:numeric(5,2);not null" json:"bunga_persen"` // persen per bulan, flat
	TenorBulan     int     `gorm:"not null" json:"tenor_bulan"`                    // 6 / 12 / 24
	TujuanPinjaman string  `gorm:"type:text" json:"tujuan_pinjaman,omitempty"`

	// Hasil perhitungan (diisi saat pengajuan)
	TotalBunga      float64 `gorm:"type:numeric(15,2);not null" json:"total_bunga"`
	TotalBayar      float64 `gorm:"type:numeric(15,2);not null" json:"total_bayar"`
	CicilanPerbulan float64 `gorm:"type:numeric(15,2);not null" json:"cicilan_perbulan"` // dibulatkan ke atas

	// Saldo berjalan (diupdate setiap pembayaran cicilan)
	SisaPokok float64 `gorm:"type:numeric(15,2);not null" json:"sisa_pokok"`
	SisaBunga float64 `gorm:"type:numeric(15,2);not null" json:"sisa_bunga"`

	Status StatusPinjaman `gorm:"size:20;not null;default:pending;index:idx_pinjaman_koperasi_status;index:idx_pinjaman_user_status" json:"status"`

	// Workflow timestamps
	TanggalPengajuan time.Time  `gorm:"not null;autoCreateTime" json:"tanggal_pengajuan"`
	TanggalApproval  *time.Time `json:"tanggal_approval,omitempty"` // waktu approved/rejected
	TanggalPencairan *time.Time `json:"tanggal_pencairan,omitempty"`

	ApprovedBy       *uint  `json:"approved_by,omitempty"` // manajer yang approve/reject
	CatatanApproval  string `gorm:"type:text" json:"catatan_approval,omitempty"`
	CatatanPenolakan string `gorm:"type:text" json:"catatan_penolakan,omitempty"`

	CreatedBy uint `gorm:"not null" json:"created_by"` // bisa kasir atas nama anggota

	JadwalCicilan []JadwalCicilan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"jadwal_cicilan,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Pinjaman) TableName() string { return "pinjamans" }

// IsLunas: lunas saat pokok dan bunga sama-sama habis.
func (p *Pinjaman) IsLunas() bool { return p.SisaPokok <= 0 && p.SisaBunga <= 0 }

func (p *Pinjaman) IsPending() bool { return p.Status == PinjamanPending }

// BolehDihapus: hanya pinjaman yang belum jalan yang boleh dihapus.
func (p *Pinjaman) BolehDihapus() bool {
	return p.Status == PinjamanPending || p.Status == PinjamanRejected
}
