// models/user.go
package models

import "time"

// Role adalah enum tertutup. Semua cek role lewat konstanta ini,
// jangan bandingkan string lepas.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManajer Role = "manajer"
	RoleKasir   Role = "kasir"
	RoleAnggota Role = "anggota"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManajer, RoleKasir, RoleAnggota:
		return true
	}
	return false
}

type StatusUser string

const (
	UserActive   StatusUser = "active"
	UserInactive StatusUser = "inactive"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	KoperasiID uint      `gorm:"index;not null" json:"koperasi_id"`
	Koperasi   *Koperasi `gorm:"foreignKey:KoperasiID" json:"koperasi,omitempty"`

	NoAnggota string `gorm:"size:30;uniqueIndex;not null" json:"no_anggota"`
	NIK       string `gorm:"size:20" json:"nik,omitempty"`
	Nama      string `gorm:"size:180;not null" json:"nama"`
	Alamat    string `gorm:"size:255" json:"alamat,omitempty"`
	NoHP      string `gorm:"size:20" json:"no_hp,omitempty"`
	Email     string `gorm:"size:180;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"size:100;not null" json:"-"`

	Role   Role       `gorm:"size:20;not null;default:anggota" json:"role"`
	Status StatusUser `gorm:"size:20;not null;default:active" json:"status"`

	RegisteredBy *uint `json:"registered_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
