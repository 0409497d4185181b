// models/models_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleManajer, RoleKasir, RoleAnggota} {
		assert.True(t, r.Valid(), "role %s", r)
	}
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestPinjaman_IsLunas(t *testing.T) {
	p := Pinjaman{SisaPokok: 0, SisaBunga: 0}
	assert.True(t, p.IsLunas())

	p = Pinjaman{SisaPokok: 100, SisaBunga: 0}
	assert.False(t, p.IsLunas())

	p = Pinjaman{SisaPokok: 0, SisaBunga: 0.01}
	assert.False(t, p.IsLunas())
}

func TestPinjaman_BolehDihapus(t *testing.T) {
	kasus := map[StatusPinjaman]bool{
		PinjamanPending:  true,
		PinjamanRejected: true,
		PinjamanApproved: false,
		PinjamanActive:   false,
		PinjamanLunas:    false,
	}
	for status, boleh := range kasus {
		p := Pinjaman{Status: status}
		assert.Equal(t, boleh, p.BolehDihapus(), "status %s", status)
	}
}

func TestPembayaranCicilan_IsLunasi(t *testing.T) {
	p := PembayaranCicilan{SisaDenda: 0, SisaBunga: 0, SisaPokok: 0}
	assert.True(t, p.IsLunasi())

	p.SisaPokok = 500
	assert.False(t, p.IsLunasi())
}

func TestMetodeBayar_Valid(t *testing.T) {
	assert.True(t, BayarTunai.Valid())
	assert.True(t, BayarTransfer.Valid())
	assert.True(t, BayarLainnya.Valid())
	assert.False(t, MetodeBayar("kredit").Valid())
}
