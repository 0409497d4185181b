// routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/akbrdhia/SAKO-Backend/controllers"
	"github.com/akbrdhia/SAKO-Backend/middlewares"
	"github.com/akbrdhia/SAKO-Backend/models"
)

type Controllers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Simpanan *controllers.SimpananController
	Pinjaman *controllers.PinjamanController
	Cicilan  *controllers.CicilanController
}

func SetupRoutes(r *gin.Engine, ctl Controllers) {
	api := r.Group("/api/v1")

	// Public
	api.POST("/auth/login", ctl.Auth.Login)

	// Semua di bawah ini wajib login
	auth := api.Group("")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/auth/me", ctl.Auth.Me)

	// Manajemen user: admin penuh; manajer & kasir read-only
	users := auth.Group("/users")
	{
		users.POST("", middlewares.RequireRole(models.RoleAdmin), ctl.User.CreateUser)
		users.GET("", middlewares.RequireRole(models.RoleAdmin, models.RoleManajer, models.RoleKasir), ctl.User.ListUsers)
		users.GET("/:id", middlewares.RequireRole(models.RoleAdmin, models.RoleManajer, models.RoleKasir), ctl.User.GetUser)
		users.GET("/:id/simpanan", middlewares.RequireRole(models.RoleAdmin, models.RoleManajer, models.RoleKasir), ctl.Simpanan.ListSimpananUser)
	}

	// Simpanan: input oleh kasir/admin, anggota bisa lihat miliknya
	simpanan := auth.Group("/simpanan")
	{
		simpanan.POST("", middlewares.RequireRole(models.RoleKasir, models.RoleAdmin), ctl.Simpanan.CreateSimpanan)
		simpanan.GET("", ctl.Simpanan.ListSimpanan)
	}

	// Pinjaman: pengajuan oleh anggota/kasir, approval oleh manajer,
	// pencairan oleh kasir
	pinjaman := auth.Group("/pinjaman")
	{
		pinjaman.GET("/simulasi", ctl.Pinjaman.SimulasiPinjaman)
		pinjaman.POST("", ctl.Pinjaman.CreatePinjaman)
		pinjaman.GET("", ctl.Pinjaman.ListPinjaman)
		pinjaman.GET("/:id", ctl.Pinjaman.GetPinjaman)
		pinjaman.POST("/:id/approve", middlewares.RequireRole(models.RoleManajer, models.RoleAdmin), ctl.Pinjaman.ApprovePinjaman)
		pinjaman.POST("/:id/reject", middlewares.RequireRole(models.RoleManajer, models.RoleAdmin), ctl.Pinjaman.RejectPinjaman)
		pinjaman.POST("/:id/cairkan", middlewares.RequireRole(models.RoleKasir, models.RoleAdmin), ctl.Pinjaman.CairkanPinjaman)
		pinjaman.DELETE("/:id", middlewares.RequireRole(models.RoleAdmin), ctl.Pinjaman.DeletePinjaman)

		pinjaman.GET("/:id/cicilan", ctl.Cicilan.ListJadwal)
		pinjaman.GET("/:id/pembayaran", ctl.Cicilan.HistoryPembayaran)
		pinjaman.GET("/:id/statistik", ctl.Cicilan.StatistikCicilan)
	}

	// Cicilan: pembayaran oleh kasir
	cicilan := auth.Group("/cicilan")
	{
		cicilan.POST("/:id/bayar", middlewares.RequireRole(models.RoleKasir, models.RoleAdmin), ctl.Cicilan.BayarCicilan)
		cicilan.GET("/:id/preview", middlewares.RequireRole(models.RoleKasir, models.RoleAdmin), ctl.Cicilan.PreviewBayar)
	}

	// Trigger manual job harian
	auth.POST("/jobs/sweep-telat", middlewares.RequireRole(models.RoleAdmin), ctl.Cicilan.SweepTelat)
}
