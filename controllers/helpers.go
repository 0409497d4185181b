// controllers/helpers.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/akbrdhia/SAKO-Backend/models"
	"github.com/akbrdhia/SAKO-Backend/service"
	"github.com/akbrdhia/SAKO-Backend/utils"
)

// tanggapiError memetakan kode error service ke status HTTP.
func tanggapiError(c *gin.Context, err error) {
	var se *service.ServiceError
	if !errors.As(err, &se) {
		utils.Error(c, http.StatusInternalServerError, "terjadi kesalahan internal", err)
		return
	}

	switch se.Code {
	case service.CodeValidation:
		utils.Error(c, http.StatusBadRequest, se.Message, nil)
	case service.CodeInvalidAmount:
		utils.Error(c, http.StatusUnprocessableEntity, se.Message, nil)
	case service.CodeStateConflict, service.CodeAlreadySettled, service.CodeLoanNotActive:
		utils.Error(c, http.StatusConflict, se.Message, nil)
	case service.CodeNotFound:
		utils.Error(c, http.StatusNotFound, se.Message, nil)
	default:
		utils.Error(c, http.StatusInternalServerError, "terjadi kesalahan internal", se.Err)
	}
}

// isUniqueViolation: Postgres error 23505 (duplikat pada unique index).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// catatAudit menulis audit log. Best-effort: gagal tulis cuma di-warn.
func catatAudit(db *gorm.DB, log *logrus.Logger, c *gin.Context, aksi, entitas string, entitasID uint, detail string) {
	entry := models.AuditLog{
		KoperasiID: currentKoperasiID(c),
		UserID:     currentUserID(c),
		Aksi:       aksi,
		Entitas:    entitas,
		EntitasID:  entitasID,
		Detail:     detail,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.WithError(err).Warn("gagal tulis audit log")
	}
}
