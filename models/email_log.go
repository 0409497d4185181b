// models/email_log.go
package models

import "time"

type EmailLog struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	KoperasiID uint   `gorm:"index" json:"koperasi_id"`
	Penerima   string `gorm:"size:180;not null" json:"penerima"`
	Subjek     string `gorm:"size:255;not null" json:"subjek"`
	Jenis      string `gorm:"size:50;not null" json:"jenis"` // reminder / approval / rejection
	Status     string `gorm:"size:20;not null" json:"status"` // sent / failed
	Error      string `gorm:"type:text" json:"error,omitempty"`

	SentAt    time.Time `json:"sent_at"`
	CreatedAt time.Time `json:"created_at"`
}
