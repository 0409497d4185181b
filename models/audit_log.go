// models/audit_log.go
package models

import "time"

// AuditLog dicatat controller setelah operasi sukses. Best-effort,
// gagal tulis audit tidak membatalkan operasi.
type AuditLog struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	KoperasiID uint   `gorm:"index" json:"koperasi_id"`
	UserID     uint   `gorm:"index" json:"user_id"` // pelaku
	Aksi       string `gorm:"size:50;not null" json:"aksi"`
	Entitas    string `gorm:"size:50;not null" json:"entitas"`
	EntitasID  uint   `gorm:"index" json:"entitas_id"`
	Detail     string `gorm:"type:text" json:"detail,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
