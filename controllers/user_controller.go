// controllers/user_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/akbrdhia/SAKO-Backend/models"
	"github.com/akbrdhia/SAKO-Backend/utils"
)

type UserController struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewUserController(db *gorm.DB, log *logrus.Logger) *UserController {
	return &UserController{db: db, log: log}
}

type createUserInput struct {
	Nama     string `json:"nama" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	NIK      string `json:"nik"`
	Alamat   string `json:"alamat"`
	NoHP     string `json:"no_hp"`
	Role     string `json:"role"`
}

// CreateUser mendaftarkan user baru di koperasi admin yang login.
// Nomor anggota di-generate otomatis.
func (ctl *UserController) CreateUser(c *gin.Context) {
	var in createUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "input tidak valid", err)
		return
	}

	role := models.RoleAnggota
	if in.Role != "" {
		role = models.Role(in.Role)
		if !role.Valid() {
			utils.Error(c, http.StatusBadRequest, "role tidak dikenal (admin/manajer/kasir/anggota)", nil)
			return
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "gagal hash password", err)
		return
	}

	koperasiID := currentKoperasiID(c)
	registeredBy := currentUserID(c)

	user := models.User{
		KoperasiID:   koperasiID,
		Nama:         in.Nama,
		Email:        in.Email,
		Password:     string(hashed),
		NIK:          in.NIK,
		Alamat:       in.Alamat,
		NoHP:         in.NoHP,
		Role:         role,
		Status:       models.UserActive,
		RegisteredBy: &registeredBy,
	}

	err = ctl.db.Transaction(func(tx *gorm.DB) error {
		var seq int64
		if err := tx.Model(&models.User{}).
			Where("koperasi_id = ?", koperasiID).
			Count(&seq).Error; err != nil {
			return err
		}
		user.NoAnggota = utils.GenNoAnggota(koperasiID, seq+1)
		return tx.Create(&user).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			utils.Error(c, http.StatusConflict, "email atau nomor anggota sudah terdaftar", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "gagal membuat user", err)
		return
	}

	catatAudit(ctl.db, ctl.log, c, "create", "user", user.ID, "registrasi "+string(role)+" "+user.NoAnggota)
	utils.Created(c, "user berhasil didaftarkan", user)
}

func (ctl *UserController) ListUsers(c *gin.Context) {
	q := ctl.db.Where("koperasi_id = ?", currentKoperasiID(c))

	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var users []models.User
	if err := q.Order("no_anggota ASC").Find(&users).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "gagal mengambil daftar user", err)
		return
	}
	utils.Success(c, "daftar user", users)
}

func (ctl *UserController) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "id tidak valid", err)
		return
	}

	var user models.User
	if err := ctl.db.Preload("Koperasi").
		Where("koperasi_id = ?", currentKoperasiID(c)).
		First(&user, uint(id)).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "user tidak ditemukan", nil)
		return
	}
	utils.Success(c, "detail user", user)
}
