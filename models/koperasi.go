// models/koperasi.go
package models

import "time"

type StatusKoperasi string

const (
	KoperasiActive   StatusKoperasi = "active"
	KoperasiInactive StatusKoperasi = "inactive"
)

type Koperasi struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KodeKoperasi string `gorm:"size:20;uniqueIndex;not null" json:"kode_koperasi"`
	Nama         string `gorm:"size:180;not null" json:"nama"`

	Alamat    string `gorm:"size:255" json:"alamat,omitempty"`
	Kelurahan string `gorm:"size:100" json:"kelurahan,omitempty"`
	Kecamatan string `gorm:"size:100" json:"kecamatan,omitempty"`
	Kota      string `gorm:"size:100" json:"kota,omitempty"`
	Provinsi  string `gorm:"size:100" json:"provinsi,omitempty"`
	KodePos   string `gorm:"size:10" json:"kode_pos,omitempty"`
	NoTelp    string `gorm:"size:20" json:"no_telp,omitempty"`
	Email     string `gorm:"size:180" json:"email,omitempty"`

	// Parameter pinjaman per koperasi
	BungaDefault          float64 `gorm:"type:numeric(5,2);not null;default:1.5" json:"bunga_default"`
	MaxPinjamanMultiplier float64 `gorm:"type:numeric(5,2);not null;default:3" json:"max_pinjaman_multiplier"`

	Status StatusKoperasi `gorm:"size:20;not null;default:active" json:"status"`

	Users []User `gorm:"constraint:OnDelete:CASCADE;" json:"users,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Koperasi) TableName() string { return "koperasis" }

func (k *Koperasi) IsActive() bool { return k.Status == KoperasiActive }
