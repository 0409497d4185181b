// utils/email.go
package utils

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/akbrdhia/SAKO-Backend/models"
)

// Mailer kirim notifikasi via SMTP. Semua pengiriman fire-and-forget:
// gagal kirim hanya dicatat (logrus + email_logs), tidak pernah
// menggagalkan transaksi pemanggil.
type Mailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string

	db  *gorm.DB
	log *logrus.Logger
}

func NewMailer(host, port, username, password, from string, db *gorm.DB, log *logrus.Logger) *Mailer {
	return &Mailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		db:       db,
		log:      log,
	}
}

// Enabled: mailer tanpa host SMTP jadi no-op (dev/test).
func (m *Mailer) Enabled() bool { return m != nil && m.Host != "" }

func (m *Mailer) send(koperasiID uint, to, subject, body, jenis string) {
	logEntry := models.EmailLog{
		KoperasiID: koperasiID,
		Penerima:   to,
		Subjek:     subject,
		Jenis:      jenis,
		Status:     "sent",
		SentAt:     time.Now(),
	}

	e := email.NewEmail()
	e.From = m.From
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	if err := e.Send(addr, auth); err != nil {
		m.log.WithError(err).Warnf("gagal kirim email ke %s", to)
		logEntry.Status = "failed"
		logEntry.Error = err.Error()
	} else {
		m.log.Infof("email terkirim ke %s: %s", to, subject)
	}

	if m.db != nil {
		if err := m.db.Create(&logEntry).Error; err != nil {
			m.log.WithError(err).Warn("gagal tulis email_logs")
		}
	}
}

// KirimReminderCicilan: pengingat H-x sebelum jatuh tempo.
func (m *Mailer) KirimReminderCicilan(koperasiID uint, to, nama string, cicilanKe int, jatuhTempo time.Time, jumlah float64) {
	if !m.Enabled() {
		return
	}
	subject := "Pengingat Cicilan Pinjaman"
	body := fmt.Sprintf(
		"Halo %s,\n\n"+
			"Cicilan ke-%d Anda sebesar Rp %.2f akan jatuh tempo pada %s.\n"+
			"Mohon siapkan pembayaran sebelum tanggal tersebut agar terhindar dari denda.\n\n"+
			"Salam,\nKoperasi",
		nama, cicilanKe, jumlah, jatuhTempo.Format("02-01-2006"),
	)
	go m.send(koperasiID, to, subject, body, "reminder")
}

// KirimStatusPinjaman: notifikasi approve/reject pengajuan.
func (m *Mailer) KirimStatusPinjaman(koperasiID uint, to, nama, noPinjaman string, disetujui bool, catatan string) {
	if !m.Enabled() {
		return
	}
	if disetujui {
		body := fmt.Sprintf(
			"Halo %s,\n\nPengajuan pinjaman %s Anda telah DISETUJUI.\n"+
				"Silakan datang ke kasir untuk pencairan dana.\n\nSalam,\nKoperasi",
			nama, noPinjaman,
		)
		go m.send(koperasiID, to, "Pinjaman Disetujui", body, "approval")
		return
	}
	body := fmt.Sprintf(
		"Halo %s,\n\nMohon maaf, pengajuan pinjaman %s Anda DITOLAK.\n"+
			"Alasan: %s\n\nSalam,\nKoperasi",
		nama, noPinjaman, catatan,
	)
	go m.send(koperasiID, to, "Pinjaman Ditolak", body, "rejection")
}
