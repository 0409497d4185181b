// controllers/get_current_id.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/akbrdhia/SAKO-Backend/models"
)

// Helper baca identitas dari context yang diisi AuthMiddleware.

func currentUserID(c *gin.Context) uint {
	v, _ := c.Get("user_id")
	id, _ := v.(uint)
	return id
}

func currentKoperasiID(c *gin.Context) uint {
	v, _ := c.Get("koperasi_id")
	id, _ := v.(uint)
	return id
}

func currentRole(c *gin.Context) models.Role {
	v, _ := c.Get("role")
	r, _ := v.(string)
	return models.Role(r)
}
