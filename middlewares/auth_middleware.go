// middlewares/auth_middleware.go
package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/akbrdhia/SAKO-Backend/models"
	"github.com/akbrdhia/SAKO-Backend/utils"
)

// AuthMiddleware memvalidasi Bearer token dan menaruh identitas user
// di context (user_id, nama, role, koperasi_id).
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, http.StatusUnauthorized, "header Authorization kosong", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.Error(c, http.StatusUnauthorized, "format harus: Bearer <token>", nil)
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "token tidak valid atau kadaluarsa", err)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "klaim token tidak lengkap", nil)
			c.Abort()
			return
		}
		koperasiID, _ := claims["koperasi_id"].(float64)
		nama, _ := claims["nama"].(string)
		role, _ := claims["role"].(string)

		c.Set("user_id", uint(userID))
		c.Set("koperasi_id", uint(koperasiID))
		c.Set("nama", nama)
		c.Set("role", role)

		c.Next()
	}
}

// RequireRole membatasi endpoint ke role tertentu. Pasang SETELAH
// AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		roleStr, _ := c.Get("role")
		role, ok := roleStr.(string)
		if !ok || !allowed[models.Role(role)] {
			utils.Error(c, http.StatusForbidden, "role Anda tidak punya akses ke resource ini", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestID menempelkan X-Request-ID di setiap request (dibuat kalau
// client tidak mengirim) untuk korelasi log.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("request_id", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// RequestLogger mencatat setiap request selesai dengan field terstruktur.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		rid, _ := c.Get("request_id")
		log.WithFields(logrus.Fields{
			"request_id": rid,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
		}).Info("request selesai")
	}
}
