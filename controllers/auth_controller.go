// controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/akbrdhia/SAKO-Backend/models"
	"github.com/akbrdhia/SAKO-Backend/utils"
)

type AuthController struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewAuthController(db *gorm.DB, log *logrus.Logger) *AuthController {
	return &AuthController{db: db, log: log}
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ctl *AuthController) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "email dan password wajib diisi", err)
		return
	}

	var user models.User
	if err := ctl.db.Where("email = ?", in.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusUnauthorized, "email atau password salah", nil)
			return
		}
		utils.Error(c, http.StatusInternalServerError, "gagal mengambil data user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		utils.Error(c, http.StatusUnauthorized, "email atau password salah", nil)
		return
	}

	if user.Status != models.UserActive {
		utils.Error(c, http.StatusForbidden, "akun Anda tidak aktif, hubungi admin koperasi", nil)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Nama, string(user.Role), user.KoperasiID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "gagal membuat token", err)
		return
	}

	ctl.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("login berhasil")

	utils.Success(c, "login berhasil", gin.H{
		"token": token,
		"user":  user,
	})
}

func (ctl *AuthController) Me(c *gin.Context) {
	var user models.User
	if err := ctl.db.Preload("Koperasi").First(&user, currentUserID(c)).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "user tidak ditemukan", err)
		return
	}
	utils.Success(c, "profil user", user)
}
