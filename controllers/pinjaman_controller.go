// controllers/pinjaman_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/akbrdhia/SAKO-Backend/models"
	"github.com/akbrdhia/SAKO-Backend/service"
	"github.com/akbrdhia/SAKO-Backend/utils"
)

type PinjamanController struct {
	db       *gorm.DB
	log      *logrus.Logger
	pinjaman *service.PinjamanService
}

func NewPinjamanController(db *gorm.DB, log *logrus.Logger, svc *service.PinjamanService) *PinjamanController {
	return &PinjamanController{db: db, log: log, pinjaman: svc}
}

type ajukanPinjamanInput struct {
	UserID         uint     `json:"user_id"` // kosong = atas nama diri sendiri
	JumlahPinjaman float64  `json:"jumlah_pinjaman" binding:"required,gt=0"`
	BungaPersen    *float64 `json:"bunga_persen"`
	TenorBulan     int      `json:"tenor_bulan" binding:"required"`
	TujuanPinjaman string   `json:"tujuan_pinjaman"`
}

// CreatePinjaman: pengajuan pinjaman baru (status pending). Anggota
// mengajukan untuk dirinya sendiri; kasir boleh atas nama anggota lain.
func (ctl *PinjamanController) CreatePinjaman(c *gin.Context) {
	var in ajukanPinjamanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "input tidak valid", err)
		return
	}

	userID := in.UserID
	if currentRole(c) == models.RoleAnggota || userID == 0 {
		userID = currentUserID(c)
	}

	// Bunga custom hanya untuk staf; anggota selalu pakai bunga default
	bunga := in.BungaPersen
	if currentRole(c) == models.RoleAnggota {
		bunga = nil
	}

	pinjaman, err := ctl.pinjaman.AjukanPinjaman(service.AjukanPinjamanInput{
		UserID:         userID,
		JumlahPinjaman: in.JumlahPinjaman,
		BungaPersen:    bunga,
		TenorBulan:     in.TenorBulan,
		TujuanPinjaman: in.TujuanPinjaman,
		CreatedBy:      currentUserID(c),
	}, time.Now())
	if err != nil {
		tanggapiError(c, err)
		return
	}

	catatAudit(ctl.db, ctl.log, c, "create", "pinjaman", pinjaman.ID, "pengajuan "+pinjaman.NoPinjaman)
	utils.Created(c, "pengajuan pinjaman berhasil dibuat", pinjaman)
}

// SimulasiPinjaman: preview perhitungan + jadwal, tidak menulis apa pun.
func (ctl *PinjamanController) SimulasiPinjaman(c *gin.Context) {
	jumlah, err := strconv.ParseFloat(c.Query("jumlah"), 64)
	if err != nil || jumlah <= 0 {
		utils.Error(c, http.StatusBadRequest, "query jumlah wajib diisi angka > 0", nil)
		return
	}
	tenor, err := strconv.Atoi(c.Query("tenor"))
	if err != nil || (tenor != 6 && tenor != 12 && tenor != 24) {
		utils.Error(c, http.StatusBadRequest, "query tenor harus 6, 12, atau 24", nil)
		return
	}

	bunga := 1.5
	if b := c.Query("bunga"); b != "" {
		bunga, err = strconv.ParseFloat(b, 64)
		if err != nil || bunga < 0 || bunga > 10 {
			utils.Error(c, http.StatusBadRequest, "query bunga harus angka 0-10", nil)
			return
		}
	}

	mulai := service.DefaultTanggalMulai(time.Now())
	if m := c.Query("tanggal_mulai"); m != "" {
		t, err := time.Parse("2006-01-02", m)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "tanggal_mulai harus YYYY-MM-DD", err)
			return
		}
		mulai = t
	}

	utils.Success(c, "simulasi cicilan", service.SimulasiCicilan(jumlah, bunga, tenor, mulai))
}

// ListPinjaman: anggota hanya miliknya; staf bisa filter status/user_id.
func (ctl *PinjamanController) ListPinjaman(c *gin.Context) {
	q := ctl.db.Where("koperasi_id = ?", currentKoperasiID(c))

	if currentRole(c) == models.RoleAnggota {
		q = q.Where("user_id = ?", currentUserID(c))
	} else if userID := c.Query("user_id"); userID != "" {
		id, err := strconv.ParseUint(userID, 10, 64)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "user_id tidak valid", err)
			return
		}
		q = q.Where("user_id = ?", uint(id))
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []models.Pinjaman
	if err := q.Preload("Anggota").Order("tanggal_pengajuan DESC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "gagal mengambil daftar pinjaman", err)
		return
	}
	utils.Success(c, "daftar pinjaman", rows)
}

func (ctl *PinjamanController) GetPinjaman(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	q := ctl.db.Where("koperasi_id = ?", currentKoperasiID(c))
	if currentRole(c) == models.RoleAnggota {
		q = q.Where("user_id = ?", currentUserID(c))
	}

	var pinjaman models.Pinjaman
	if err := q.Preload("Anggota").
		Preload("JadwalCicilan", func(db *gorm.DB) *gorm.DB {
			return db.Order("cicilan_ke ASC")
		}).
		First(&pinjaman, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "pinjaman tidak ditemukan", nil)
		return
	}
	utils.Success(c, "detail pinjaman", pinjaman)
}

type approveInput struct {
	Catatan      string `json:"catatan"`
	TanggalMulai string `json:"tanggal_mulai"` // YYYY-MM-DD, default tgl 15 bulan depan
}

func (ctl *PinjamanController) ApprovePinjaman(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var in approveInput
	_ = c.ShouldBindJSON(&in) // body opsional

	var mulai *time.Time
	if in.TanggalMulai != "" {
		t, err := time.Parse("2006-01-02", in.TanggalMulai)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "tanggal_mulai harus YYYY-MM-DD", err)
			return
		}
		mulai = &t
	}

	pinjaman, err := ctl.pinjaman.ApprovePinjaman(id, currentUserID(c), in.Catatan, mulai, time.Now())
	if err != nil {
		tanggapiError(c, err)
		return
	}

	catatAudit(ctl.db, ctl.log, c, "approve", "pinjaman", id, pinjaman.NoPinjaman)
	utils.Success(c, "pinjaman disetujui, jadwal cicilan dibuat", pinjaman)
}

type rejectInput struct {
	CatatanPenolakan string `json:"catatan_penolakan" binding:"required"`
}

func (ctl *PinjamanController) RejectPinjaman(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var in rejectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "catatan_penolakan wajib diisi", err)
		return
	}

	pinjaman, err := ctl.pinjaman.RejectPinjaman(id, currentUserID(c), in.CatatanPenolakan, time.Now())
	if err != nil {
		tanggapiError(c, err)
		return
	}

	catatAudit(ctl.db, ctl.log, c, "reject", "pinjaman", id, pinjaman.NoPinjaman)
	utils.Success(c, "pinjaman ditolak", pinjaman)
}

func (ctl *PinjamanController) CairkanPinjaman(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	pinjaman, err := ctl.pinjaman.CairkanPinjaman(id, currentUserID(c), time.Now())
	if err != nil {
		tanggapiError(c, err)
		return
	}

	catatAudit(ctl.db, ctl.log, c, "cairkan", "pinjaman", id, pinjaman.NoPinjaman)
	utils.Success(c, "dana pinjaman dicairkan, cicilan mulai berjalan", pinjaman)
}

func (ctl *PinjamanController) DeletePinjaman(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ctl.pinjaman.HapusPinjaman(id); err != nil {
		tanggapiError(c, err)
		return
	}

	catatAudit(ctl.db, ctl.log, c, "delete", "pinjaman", id, fmt.Sprintf("hapus pinjaman id %d", id))
	utils.Success(c, "pinjaman dihapus", nil)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "id tidak valid", err)
		return 0, false
	}
	return uint(id), true
}
