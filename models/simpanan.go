// models/simpanan.go
package models

import "time"

type JenisSimpanan string

const (
	SimpananPokok    JenisSimpanan = "pokok"
	SimpananWajib    JenisSimpanan = "wajib"
	SimpananSukarela JenisSimpanan = "sukarela"
)

func (j JenisSimpanan) Valid() bool {
	switch j {
	case SimpananPokok, SimpananWajib, SimpananSukarela:
		return true
	}
	return false
}

// Simpanan = setoran anggota. Total simpanan membatasi plafon pinjaman
// (total x max_pinjaman_multiplier koperasi).
type Simpanan struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	KoperasiID uint `gorm:"index;not null" json:"koperasi_id"`
	UserID     uint `gorm:"index;not null" json:"user_id"`
	Anggota    *User `gorm:"foreignKey:UserID" json:"anggota,omitempty"`

	Jenis      JenisSimpanan `gorm:"size:20;not null" json:"jenis"`
	Jumlah     float64       `gorm:"type:numeric(15,2);not null" json:"jumlah"`
	Tanggal    time.Time     `gorm:"type:date;not null" json:"tanggal"`
	Keterangan string        `gorm:"size:255" json:"keterangan,omitempty"`

	CreatedBy uint `gorm:"not null" json:"created_by"` // kasir yang input

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Simpanan) TableName() string { return "simpanans" }
