// controllers/cicilan_controller.go
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

type CicilanController struct {
	db      *gorm.DB
	log     *logrus.Logger
	cicilan *service.CicilanService
}

func NewCicilanController(db *gorm.DB, log *logrus.Logger, svc *service.CicilanService) *CicilanController {
	return &CicilanController{db: db, log: log, cicilan: svc}
}

// ListJadwal: seluruh jadwal cicilan satu pinjaman, urut cicilan_ke.
func (ctl *CicilanController) ListJadwal(c *gin.Context) {
	pinjamanID, ok := paramID(c)
	if !ok {
		return
	}
	if !ctl.bolehAkses(c, pinjamanID) {
		return
	}

	var rows []models.JadwalCicilan
	if err := ctl.db.
		Where("pinjaman_id = ?", pinjamanID).
		Order("cicilan_ke ASC").
		Find(&rows).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "gagal mengambil jadwal cicilan", err)
		return
	}
	utils.Success(c, "jadwal cicilan", rows)
}

type bayarInput struct {
	JumlahBayar    float64 `json:"jumlah_bayar" binding:"required"`
	MetodeBayar    string  `json:"metode_bayar"`
	NomorReferensi string  `json:"nomor_referensi"`
	Keterangan     string  `json:"keterangan"`
}

// BayarCicilan: proses pembayaran (partial atau penuh) oleh kasir.
func (ctl *CicilanController) BayarCicilan(c *gin.Context) {
	jadwalID, ok := paramID(c)
	if !ok {
		return
	}

	var in bayarInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "jumlah_bayar wajib diisi", err)
		return
	}

	hasil, err := ctl.cicilan.ProsesBayar(jadwalID, in.JumlahBayar, currentUserID(c), service.MetadataBayar{
		MetodeBayar:    models.MetodeBayar(in.MetodeBayar),
		NomorReferensi: in.NomorReferensi,
		Keterangan:     in.Keterangan,
	}, time.Now())
	if err != nil {
		tanggapiError(c, err)
		return
	}

	catatAudit(ctl.db, ctl.log, c, "bayar", "jadwal_cicilan", jadwalID,
		fmt.Sprintf("bayar Rp %.2f", in.JumlahBayar))

	pesan := "pembayaran tercatat"
	if hasil.PinjamanLunas {
		pesan = "pembayaran tercatat, pinjaman LUNAS"
	} else if hasil.CicilanLunas {
		pesan = "pembayaran tercatat, cicilan lunas"
	}
	utils.Success(c, pesan, hasil)
}

// PreviewBayar: simulasi alokasi pembayaran tanpa menulis.
func (ctl *CicilanController) PreviewBayar(c *gin.Context) {
	jadwalID, ok := paramID(c)
	if !ok {
		return
	}

	jumlah, err := strconv.ParseFloat(c.Query("jumlah"), 64)
	if err != nil || jumlah <= 0 {
		utils.Error(c, http.StatusBadRequest, "query jumlah wajib diisi angka > 0", nil)
		return
	}

	alokasi, err := ctl.cicilan.PreviewPembayaran(jadwalID, jumlah, time.Now())
	if err != nil {
		tanggapiError(c, err)
		return
	}
	utils.Success(c, "preview alokasi pembayaran", alokasi)
}

// HistoryPembayaran: semua bukti pembayaran satu pinjaman.
func (ctl *CicilanController) HistoryPembayaran(c *gin.Context) {
	pinjamanID, ok := paramID(c)
	if !ok {
		return
	}
	if !ctl.bolehAkses(c, pinjamanID) {
		return
	}

	rows, err := ctl.cicilan.HistoryPembayaran(pinjamanID)
	if err != nil {
		tanggapiError(c, err)
		return
	}
	utils.Success(c, "history pembayaran", rows)
}

// StatistikCicilan: ringkasan progres + rekonsiliasi saldo.
func (ctl *CicilanController) StatistikCicilan(c *gin.Context) {
	pinjamanID, ok := paramID(c)
	if !ok {
		return
	}
	if !ctl.bolehAkses(c, pinjamanID) {
		return
	}

	stat, err := ctl.cicilan.GetStatistikCicilan(pinjamanID)
	if err != nil {
		tanggapiError(c, err)
		return
	}
	utils.Success(c, "statistik cicilan", stat)
}

// SweepTelat: trigger manual untuk job yang sama dengan cron harian.
func (ctl *CicilanController) SweepTelat(c *gin.Context) {
	n, err := ctl.cicilan.SweepTelat(time.Now())
	if err != nil {
		tanggapiError(c, err)
		return
	}

	catatAudit(ctl.db, ctl.log, c, "sweep", "jadwal_cicilan", 0, fmt.Sprintf("%d cicilan ditandai telat", n))
	utils.Success(c, "sweep cicilan telat selesai", gin.H{"jumlah_telat": n})
}

// bolehAkses: pinjaman harus di koperasi yang sama; anggota hanya boleh
// akses pinjaman miliknya.
func (ctl *CicilanController) bolehAkses(c *gin.Context, pinjamanID uint) bool {
	q := ctl.db.Where("koperasi_id = ?", currentKoperasiID(c))
	if currentRole(c) == models.RoleAnggota {
		q = q.Where("user_id = ?", currentUserID(c))
	}

	var pinjaman models.Pinjaman
	if err := q.Select("id").First(&pinjaman, pinjamanID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "pinjaman tidak ditemukan", nil)
		return false
	}
	return true
}
