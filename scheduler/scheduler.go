// scheduler/scheduler.go
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/akbrdhia/SAKO-Backend/config"
	"github.com/akbrdhia/SAKO-Backend/service"
	"github.com/akbrdhia/SAKO-Backend/utils"
)

// Kunci advisory Postgres supaya cuma satu instance yang menjalankan
// job terjadwal kalau aplikasi di-deploy lebih dari satu replika.
const advisoryLockKey = 824017

// pengunci menjalankan fn hanya kalau lock eksklusif berhasil diambil;
// kalau lock dipegang pihak lain, fn dilewati tanpa error.
type pengunci interface {
	Coba(nama string, fn func()) error
}

// penguncipg memakai advisory lock Postgres. Lock advisory bersifat per
// SESI, jadi ambil, jalankan, dan lepas wajib terjadi di SATU koneksi;
// kalau ambil dan lepas jalan di koneksi pool yang berbeda, lock
// nyangkut di koneksi idle dan semua run berikutnya tersekat.
// gorm.DB.Connection menjamin ketiganya memakai koneksi yang sama.
type penguncipg struct {
	db  *gorm.DB
	log *logrus.Logger
}

func (p *penguncipg) Coba(nama string, fn func()) error {
	return p.db.Connection(func(conn *gorm.DB) error {
		var locked bool
		if err := conn.Raw("SELECT pg_try_advisory_lock(?)", advisoryLockKey).Scan(&locked).Error; err != nil {
			return err
		}
		if !locked {
			p.log.Infof("job %s dilewati: lock dipegang instance lain", nama)
			return nil
		}
		defer func() {
			if err := conn.Exec("SELECT pg_advisory_unlock(?)", advisoryLockKey).Error; err != nil {
				p.log.WithError(err).Warn("gagal lepas advisory lock")
			}
		}()

		fn()
		return nil
	})
}

// Scheduler menjalankan job harian: sweep cicilan telat tiap tengah
// malam dan reminder H-x tiap pagi.
type Scheduler struct {
	log     *logrus.Logger
	cicilan *service.CicilanService
	mailer  *utils.Mailer
	cfg     config.CicilanConfig
	kunci   pengunci

	cron *cron.Cron
}

func New(db *gorm.DB, log *logrus.Logger, cicilan *service.CicilanService, mailer *utils.Mailer, cfg config.CicilanConfig) *Scheduler {
	return &Scheduler{
		log:     log,
		cicilan: cicilan,
		mailer:  mailer,
		cfg:     cfg,
		kunci:   &penguncipg{db: db, log: log},
		cron:    cron.New(),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 * * *", func() { s.runExclusive("sweep_telat", s.JalankanSweep) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 8 * * *", func() { s.runExclusive("reminder_cicilan", s.JalankanReminder) }); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("scheduler aktif: sweep 00:00, reminder 08:00")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runExclusive(nama string, job func(time.Time)) {
	if err := s.kunci.Coba(nama, func() { job(time.Now()) }); err != nil {
		s.log.WithError(err).Errorf("job %s gagal ambil advisory lock", nama)
	}
}

// JalankanSweep menandai semua cicilan lewat jatuh tempo sebagai telat
// dan men-snapshot dendanya.
func (s *Scheduler) JalankanSweep(today time.Time) {
	n, err := s.cicilan.SweepTelat(today)
	if err != nil {
		s.log.WithError(err).Error("sweep cicilan telat gagal")
		return
	}
	s.log.WithField("count", n).Info("sweep cicilan telat selesai dijalankan")
}

// JalankanReminder mengirim email pengingat untuk cicilan yang jatuh
// tempo H-x hari lagi.
func (s *Scheduler) JalankanReminder(today time.Time) {
	if !s.mailer.Enabled() {
		return
	}

	rows, err := s.cicilan.DaftarReminder(today, s.cfg.ReminderHariSebelum)
	if err != nil {
		s.log.WithError(err).Error("ambil daftar reminder gagal")
		return
	}

	terkirim := 0
	for i := range rows {
		c := &rows[i]
		if c.Pinjaman == nil || c.Pinjaman.Anggota == nil || c.Pinjaman.Anggota.Email == "" {
			continue
		}
		anggota := c.Pinjaman.Anggota
		s.mailer.KirimReminderCicilan(c.KoperasiID, anggota.Email, anggota.Nama,
			c.CicilanKe, c.TanggalJatuhTempo, c.JumlahCicilan)
		terkirim++
	}

	s.log.WithFields(logrus.Fields{
		"h_minus": s.cfg.ReminderHariSebelum,
		"count":   terkirim,
	}).Info("reminder cicilan dikirim")
}
