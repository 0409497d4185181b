// service/pinjaman_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/akbrdhia/SAKO-Backend/models"
	"github.com/akbrdhia/SAKO-Backend/utils"
)

// Notifier dipanggil SETELAH commit; gagal kirim tidak boleh
// membatalkan transaksi.
type Notifier interface {
	KirimStatusPinjaman(koperasiID uint, to, nama, noPinjaman string, disetujui bool, catatan string)
}

// PinjamanService mengatur siklus hidup pinjaman:
// pending -> approved -> active -> lunas, atau pending -> rejected.
type PinjamanService struct {
	db    *gorm.DB
	log   *logrus.Logger
	notif Notifier
}

func NewPinjamanService(db *gorm.DB, log *logrus.Logger, notif Notifier) *PinjamanService {
	return &PinjamanService{db: db, log: log, notif: notif}
}

var tenorValid = map[int]bool{6: true, 12: true, 24: true}

type AjukanPinjamanInput struct {
	UserID         uint
	JumlahPinjaman float64
	BungaPersen    *float64 // nil = pakai bunga_default koperasi
	TenorBulan     int
	TujuanPinjaman string
	CreatedBy      uint
}

// ValidasiPengajuan menerapkan aturan koperasi sebelum pinjaman dibuat:
// plafon = total simpanan x multiplier, tanpa tunggakan, maksimal 2
// pinjaman berjalan per anggota.
func (s *PinjamanService) ValidasiPengajuan(userID uint, jumlahPinjaman float64) error {
	var user models.User
	if err := s.db.Preload("Koperasi").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("user", userID)
		}
		return ErrPersistence("ambil user", err)
	}

	// Rule 1: plafon dari total simpanan
	var totalSimpanan float64
	if err := s.db.Model(&models.Simpanan{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(jumlah), 0)").
		Scan(&totalSimpanan).Error; err != nil {
		return ErrPersistence("hitung total simpanan", err)
	}
	maxPinjaman := totalSimpanan * user.Koperasi.MaxPinjamanMultiplier
	if jumlahPinjaman > maxPinjaman {
		return ErrValidation(
			"jumlah pinjaman melebihi batas maksimal (total simpanan Rp %.2f, maksimal pinjaman Rp %.2f)",
			totalSimpanan, maxPinjaman,
		)
	}

	// Rule 2: tidak boleh ada tunggakan cicilan
	var tunggakan int64
	if err := s.db.Model(&models.JadwalCicilan{}).
		Joins("JOIN pinjamans ON pinjamans.id = jadwal_cicilans.pinjaman_id").
		Where("pinjamans.user_id = ? AND pinjamans.status = ? AND jadwal_cicilans.status = ?",
			userID, models.PinjamanActive, models.CicilanTelat).
		Count(&tunggakan).Error; err != nil {
		return ErrPersistence("cek tunggakan", err)
	}
	if tunggakan > 0 {
		return ErrValidation("anggota memiliki tunggakan cicilan; selesaikan cicilan telat terlebih dahulu")
	}

	// Rule 3: maksimal 2 pinjaman berjalan
	var aktif int64
	if err := s.db.Model(&models.Pinjaman{}).
		Where("user_id = ? AND status IN ?", userID,
			[]models.StatusPinjaman{models.PinjamanApproved, models.PinjamanActive}).
		Count(&aktif).Error; err != nil {
		return ErrPersistence("hitung pinjaman aktif", err)
	}
	if aktif >= 2 {
		return ErrValidation("anggota sudah memiliki 2 pinjaman aktif; maksimal 2 pinjaman aktif per anggota")
	}

	return nil
}

// AjukanPinjaman membuat pinjaman baru berstatus pending. Jadwal cicilan
// BELUM dibuat di sini; baru dibuat saat approve.
func (s *PinjamanService) AjukanPinjaman(in AjukanPinjamanInput, now time.Time) (*models.Pinjaman, error) {
	if in.JumlahPinjaman <= 0 {
		return nil, ErrValidation("jumlah pinjaman harus lebih dari 0")
	}
	if !tenorValid[in.TenorBulan] {
		return nil, ErrValidation("tenor_bulan harus 6, 12, atau 24")
	}

	if err := s.ValidasiPengajuan(in.UserID, in.JumlahPinjaman); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.Preload("Koperasi").First(&user, in.UserID).Error; err != nil {
		return nil, ErrPersistence("ambil user", err)
	}

	bunga := user.Koperasi.BungaDefault
	if in.BungaPersen != nil {
		bunga = *in.BungaPersen
	}
	if bunga < 0 || bunga > 10 {
		return nil, ErrValidation("bunga_persen harus di rentang 0-10")
	}

	perhitungan := HitungCicilan(in.JumlahPinjaman, bunga, in.TenorBulan)

	pinjaman := models.Pinjaman{
		KoperasiID:       user.KoperasiID,
		UserID:           in.UserID,
		JumlahPinjaman:   in.JumlahPinjaman,
		BungaPersen:      bunga,
		TenorBulan:       in.TenorBulan,
		TujuanPinjaman:   in.TujuanPinjaman,
		TotalBunga:       perhitungan.TotalBunga,
		TotalBayar:       perhitungan.TotalBayar,
		CicilanPerbulan:  perhitungan.CicilanPerbulan,
		SisaPokok:        in.JumlahPinjaman, // awal = pokok penuh
		SisaBunga:        perhitungan.TotalBunga,
		Status:           models.PinjamanPending,
		TanggalPengajuan: now,
		CreatedBy:        in.CreatedBy,
	}

	// Nomor pinjaman diturunkan dari count, jadi dua pengajuan paralel
	// bisa mendapat nomor yang sama; unique index menangkapnya dan
	// pengajuan diulang sekali dengan nomor berikutnya.
	var err error
	for percobaan := 0; percobaan < 2; percobaan++ {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			// Nomor urut per koperasi per tahun
			var seq int64
			if err := tx.Model(&models.Pinjaman{}).
				Where("koperasi_id = ? AND EXTRACT(YEAR FROM tanggal_pengajuan) = ?", user.KoperasiID, now.Year()).
				Count(&seq).Error; err != nil {
				return ErrPersistence("hitung nomor pinjaman", err)
			}
			pinjaman.NoPinjaman = utils.GenNoPinjaman(user.Koperasi.KodeKoperasi, seq+1, now)

			if err := tx.Create(&pinjaman).Error; err != nil {
				return ErrPersistence("buat pinjaman", err)
			}
			return nil
		})
		if err == nil || !isDuplikatKunci(err) {
			break
		}
	}
	if err != nil {
		if isDuplikatKunci(err) {
			return nil, ErrStateConflict("nomor pinjaman bentrok dengan pengajuan lain, silakan ulangi")
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"no_pinjaman": pinjaman.NoPinjaman,
		"user_id":     in.UserID,
		"jumlah":      in.JumlahPinjaman,
	}).Info("pengajuan pinjaman dibuat")

	return &pinjaman, nil
}

// terapkanApproval menjalankan inti approval pada baris yang sudah
// terkunci: guard status, stempel approver, materialisasi seluruh jadwal
// cicilan. Murni in-memory, tidak menyentuh database; dipanggil dua kali
// untuk pinjaman yang sama selalu konflik di panggilan kedua.
func terapkanApproval(pinjaman *models.Pinjaman, approvedBy uint, catatan string, mulai, now time.Time) ([]models.JadwalCicilan, error) {
	if pinjaman.Status != models.PinjamanPending {
		return nil, ErrStateConflict("pinjaman sudah di-approve/reject sebelumnya (status: %s)", pinjaman.Status)
	}

	pinjaman.Status = models.PinjamanApproved
	approval := now
	pinjaman.TanggalApproval = &approval
	pinjaman.ApprovedBy = &approvedBy
	pinjaman.CatatanApproval = catatan

	perhitungan := HitungCicilan(pinjaman.JumlahPinjaman, pinjaman.BungaPersen, pinjaman.TenorBulan)
	return GenerateJadwal(pinjaman, perhitungan, mulai), nil
}

// ApprovePinjaman menyetujui pinjaman pending dan men-generate SELURUH
// jadwal cicilan dalam satu transaksi. Ini satu-satunya tempat jadwal
// dibuat; guard status + row lock menjamin tidak pernah jalan dua kali
// untuk pinjaman yang sama.
func (s *PinjamanService) ApprovePinjaman(pinjamanID, approvedBy uint, catatan string, tanggalMulai *time.Time, now time.Time) (*models.Pinjaman, error) {
	var pinjaman models.Pinjaman

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&pinjaman, pinjamanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("pinjaman", pinjamanID)
			}
			return ErrPersistence("ambil pinjaman", err)
		}

		mulai := DefaultTanggalMulai(now)
		if tanggalMulai != nil {
			mulai = *tanggalMulai
		}

		jadwal, err := terapkanApproval(&pinjaman, approvedBy, catatan, mulai, now)
		if err != nil {
			return err
		}

		if err := tx.Save(&pinjaman).Error; err != nil {
			return ErrPersistence("update status pinjaman", err)
		}
		if err := tx.Create(&jadwal).Error; err != nil {
			return ErrPersistence("generate jadwal cicilan", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"no_pinjaman": pinjaman.NoPinjaman,
		"approved_by": approvedBy,
	}).Info("pinjaman disetujui, jadwal cicilan dibuat")

	s.notifikasi(&pinjaman, true, catatan)

	if err := s.db.Preload("JadwalCicilan").First(&pinjaman, pinjamanID).Error; err != nil {
		return nil, ErrPersistence("reload pinjaman", err)
	}
	return &pinjaman, nil
}

// RejectPinjaman menolak pinjaman pending. Alasan wajib, minimal 10
// karakter; kalau tidak valid, tidak ada perubahan state sama sekali.
func (s *PinjamanService) RejectPinjaman(pinjamanID, rejectedBy uint, catatanPenolakan string, now time.Time) (*models.Pinjaman, error) {
	if len(strings.TrimSpace(catatanPenolakan)) < 10 {
		return nil, ErrValidation("catatan penolakan wajib diisi, minimal 10 karakter")
	}

	var pinjaman models.Pinjaman

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&pinjaman, pinjamanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("pinjaman", pinjamanID)
			}
			return ErrPersistence("ambil pinjaman", err)
		}

		if pinjaman.Status != models.PinjamanPending {
			return ErrStateConflict("pinjaman sudah di-approve/reject sebelumnya (status: %s)", pinjaman.Status)
		}

		updates := map[string]interface{}{
			"status":            models.PinjamanRejected,
			"tanggal_approval":  now,
			"approved_by":       rejectedBy,
			"catatan_penolakan": catatanPenolakan,
		}
		return tx.Model(&pinjaman).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("no_pinjaman", pinjaman.NoPinjaman).Info("pinjaman ditolak")
	s.notifikasi(&pinjaman, false, catatanPenolakan)

	return &pinjaman, nil
}

// CairkanPinjaman: pencairan dana eksplisit, approved -> active.
func (s *PinjamanService) CairkanPinjaman(pinjamanID, dicairkanOleh uint, now time.Time) (*models.Pinjaman, error) {
	var pinjaman models.Pinjaman

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&pinjaman, pinjamanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("pinjaman", pinjamanID)
			}
			return ErrPersistence("ambil pinjaman", err)
		}

		if pinjaman.Status != models.PinjamanApproved {
			return ErrStateConflict("pinjaman harus di-approve terlebih dahulu sebelum dicairkan (status: %s)", pinjaman.Status)
		}

		updates := map[string]interface{}{
			"status":            models.PinjamanActive,
			"tanggal_pencairan": now,
		}
		return tx.Model(&pinjaman).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"no_pinjaman": pinjaman.NoPinjaman,
		"oleh":        dicairkanOleh,
	}).Info("pinjaman dicairkan")

	return &pinjaman, nil
}

// HapusPinjaman menghapus pinjaman beserta jadwalnya (cascade). Hanya
// boleh untuk status pending/rejected.
func (s *PinjamanService) HapusPinjaman(pinjamanID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var pinjaman models.Pinjaman
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&pinjaman, pinjamanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("pinjaman", pinjamanID)
			}
			return ErrPersistence("ambil pinjaman", err)
		}

		if !pinjaman.BolehDihapus() {
			return ErrStateConflict("pinjaman dengan status %s tidak boleh dihapus", pinjaman.Status)
		}

		if err := tx.Where("pinjaman_id = ?", pinjamanID).Delete(&models.JadwalCicilan{}).Error; err != nil {
			return ErrPersistence("hapus jadwal cicilan", err)
		}
		if err := tx.Delete(&pinjaman).Error; err != nil {
			return ErrPersistence("hapus pinjaman", err)
		}
		return nil
	})
}

func (s *PinjamanService) notifikasi(p *models.Pinjaman, disetujui bool, catatan string) {
	if s.notif == nil {
		return
	}
	var anggota models.User
	if err := s.db.First(&anggota, p.UserID).Error; err != nil {
		s.log.WithError(err).Warn("gagal ambil anggota untuk notifikasi")
		return
	}
	if anggota.Email == "" {
		return
	}
	s.notif.KirimStatusPinjaman(p.KoperasiID, anggota.Email, anggota.Nama, p.NoPinjaman, disetujui, catatan)
}
