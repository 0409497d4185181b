// controllers/simpanan_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/akbrdhia/SAKO-Backend/models"
	"github.com/akbrdhia/SAKO-Backend/utils"
)

type SimpananController struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewSimpananController(db *gorm.DB, log *logrus.Logger) *SimpananController {
	return &SimpananController{db: db, log: log}
}

type createSimpananInput struct {
	UserID     uint    `json:"user_id" binding:"required"`
	Jenis      string  `json:"jenis" binding:"required"`
	Jumlah     float64 `json:"jumlah" binding:"required,gt=0"`
	Tanggal    string  `json:"tanggal"` // YYYY-MM-DD, default hari ini
	Keterangan string  `json:"keterangan"`
}

func (ctl *SimpananController) CreateSimpanan(c *gin.Context) {
	var in createSimpananInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "input tidak valid", err)
		return
	}

	jenis := models.JenisSimpanan(in.Jenis)
	if !jenis.Valid() {
		utils.Error(c, http.StatusBadRequest, "jenis simpanan harus pokok/wajib/sukarela", nil)
		return
	}

	tanggal := time.Now()
	if in.Tanggal != "" {
		t, err := time.Parse("2006-01-02", in.Tanggal)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "format tanggal harus YYYY-MM-DD", err)
			return
		}
		tanggal = t
	}

	// Anggota harus satu koperasi dengan kasir
	var anggota models.User
	if err := ctl.db.Where("koperasi_id = ?", currentKoperasiID(c)).
		First(&anggota, in.UserID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "anggota tidak ditemukan", nil)
		return
	}

	simpanan := models.Simpanan{
		KoperasiID: currentKoperasiID(c),
		UserID:     in.UserID,
		Jenis:      jenis,
		Jumlah:     in.Jumlah,
		Tanggal:    tanggal,
		Keterangan: in.Keterangan,
		CreatedBy:  currentUserID(c),
	}
	if err := ctl.db.Create(&simpanan).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "gagal menyimpan setoran", err)
		return
	}

	catatAudit(ctl.db, ctl.log, c, "create", "simpanan", simpanan.ID, "setoran "+string(jenis))
	utils.Created(c, "setoran simpanan tercatat", simpanan)
}

// ListSimpanan: anggota hanya bisa lihat miliknya sendiri; kasir/admin
// bisa filter per user_id.
func (ctl *SimpananController) ListSimpanan(c *gin.Context) {
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

	var rows []models.Simpanan
	if err := q.Order("tanggal DESC, id DESC").Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "gagal mengambil simpanan", err)
		return
	}

	var total float64
	for i := range rows {
		total += rows[i].Jumlah
	}

	utils.Success(c, "daftar simpanan", gin.H{
		"simpanan": rows,
		"total":    utils.Round2(total),
	})
}

// ListSimpananUser: seluruh simpanan satu anggota + totalnya (dipakai
// staf saat menilai plafon pinjaman).
func (ctl *SimpananController) ListSimpananUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "id tidak valid", err)
		return
	}

	var rows []models.Simpanan
	if err := ctl.db.
		Where("koperasi_id = ? AND user_id = ?", currentKoperasiID(c), uint(id)).
		Order("tanggal DESC, id DESC").
		Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "gagal mengambil simpanan", err)
		return
	}

	var total float64
	for i := range rows {
		total += rows[i].Jumlah
	}

	utils.Success(c, "simpanan anggota", gin.H{
		"simpanan": rows,
		"total":    utils.Round2(total),
	})
}
