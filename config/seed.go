// config/seed.go
package config

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/akbrdhia/SAKO-Backend/models"
)

// SeedKoperasi membuat koperasi default + user admin pertama kalau DB
// masih kosong. Idempotent, aman dipanggil setiap start.
func SeedKoperasi() {
	var count int64
	if err := DB.Model(&models.Koperasi{}).Count(&count).Error; err != nil {
		log.Printf("seed: gagal cek koperasi: %v", err)
		return
	}
	if count > 0 {
		return
	}

	kop := models.Koperasi{
		KodeKoperasi:          "KSP001",
		Nama:                  "Koperasi Simpan Pinjam Sejahtera",
		Kota:                  "Bandung",
		Provinsi:              "Jawa Barat",
		BungaDefault:          1.5,
		MaxPinjamanMultiplier: 3,
		Status:                models.KoperasiActive,
	}
	if err := DB.Create(&kop).Error; err != nil {
		log.Printf("seed: gagal buat koperasi default: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(GetEnv("SEED_ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed: gagal hash password admin: %v", err)
		return
	}

	admin := models.User{
		KoperasiID: kop.ID,
		NoAnggota:  "AGT-0-000001",
		Nama:       "Administrator",
		Email:      GetEnv("SEED_ADMIN_EMAIL", "admin@koperasi.local"),
		Password:   string(hashed),
		Role:       models.RoleAdmin,
		Status:     models.UserActive,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("seed: gagal buat admin default: %v", err)
		return
	}

	log.Printf("seed: koperasi %s + admin %s dibuat", kop.KodeKoperasi, admin.Email)
}
