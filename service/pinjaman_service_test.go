// service/pinjaman_service_test.go
package service

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akbrdhia/SAKO-Backend/models"
)

func svcTanpaDB() *PinjamanService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewPinjamanService(nil, log, nil)
}

// Guard input dievaluasi sebelum menyentuh database sama sekali.

func TestAjukanPinjaman_JumlahNol(t *testing.T) {
	s := svcTanpaDB()

	_, err := s.AjukanPinjaman(AjukanPinjamanInput{
		UserID:         1,
		JumlahPinjaman: 0,
		TenorBulan:     12,
	}, time.Now())

	require.Error(t, err)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestAjukanPinjaman_TenorTidakValid(t *testing.T) {
	s := svcTanpaDB()

	for _, tenor := range []int{0, 3, 13, 36, -6} {
		_, err := s.AjukanPinjaman(AjukanPinjamanInput{
			UserID:         1,
			JumlahPinjaman: 1_000_000,
			TenorBulan:     tenor,
		}, time.Now())

		require.Error(t, err, "tenor %d", tenor)
		assert.Equal(t, CodeValidation, CodeOf(err), "tenor %d", tenor)
	}
}

func pinjamanPending() *models.Pinjaman {
	return &models.Pinjaman{
		ID:             1,
		KoperasiID:     1,
		UserID:         5,
		JumlahPinjaman: 1_000_000,
		BungaPersen:    1.5,
		TenorBulan:     12,
		Status:         models.PinjamanPending,
	}
}

func TestTerapkanApproval(t *testing.T) {
	p := pinjamanPending()
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	mulai := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	jadwal, err := terapkanApproval(p, 9, "riwayat simpanan baik", mulai, now)
	require.NoError(t, err)

	assert.Equal(t, models.PinjamanApproved, p.Status)
	require.NotNil(t, p.TanggalApproval)
	assert.Equal(t, now, *p.TanggalApproval)
	require.NotNil(t, p.ApprovedBy)
	assert.Equal(t, uint(9), *p.ApprovedBy)
	assert.Equal(t, "riwayat simpanan baik", p.CatatanApproval)

	// Jadwal lengkap: tepat sebanyak tenor, terikat ke pinjaman ini
	require.Len(t, jadwal, 12)
	assert.Equal(t, uint(1), jadwal[0].PinjamanID)
	assert.Equal(t, mulai, jadwal[0].TanggalJatuhTempo)
}

// Approval kedua pada baris yang sama (sudah terkunci) harus konflik
// state dan TIDAK menghasilkan jadwal kedua.
func TestTerapkanApproval_DuaKali(t *testing.T) {
	p := pinjamanPending()
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	mulai := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)

	jadwal, err := terapkanApproval(p, 9, "ok", mulai, now)
	require.NoError(t, err)
	require.Len(t, jadwal, 12)

	jadwalKedua, err := terapkanApproval(p, 9, "ok", mulai, now)
	require.Error(t, err)
	assert.Equal(t, CodeStateConflict, CodeOf(err))
	assert.Nil(t, jadwalKedua)
	assert.Equal(t, models.PinjamanApproved, p.Status)
}

func TestTerapkanApproval_StatusBukanPending(t *testing.T) {
	now := time.Now()
	mulai := DefaultTanggalMulai(now)

	for _, status := range []models.StatusPinjaman{
		models.PinjamanRejected, models.PinjamanActive, models.PinjamanLunas,
	} {
		p := pinjamanPending()
		p.Status = status

		jadwal, err := terapkanApproval(p, 9, "ok", mulai, now)
		require.Error(t, err, "status %s", status)
		assert.Equal(t, CodeStateConflict, CodeOf(err), "status %s", status)
		assert.Nil(t, jadwal)
		assert.Equal(t, status, p.Status, "status %s tidak boleh berubah", status)
	}
}

// Penolakan tanpa alasan yang memadai ditolak SEBELUM transaksi dibuka:
// tidak ada perubahan state apapun.
func TestRejectPinjaman_CatatanTerlaluPendek(t *testing.T) {
	s := svcTanpaDB()

	for _, catatan := range []string{"", "pendek", "   spasi   ", "123456789"} {
		_, err := s.RejectPinjaman(1, 2, catatan, time.Now())

		require.Error(t, err, "catatan %q", catatan)
		assert.Equal(t, CodeValidation, CodeOf(err), "catatan %q", catatan)
	}
}
