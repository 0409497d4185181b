// utils/no_pinjaman.go
package utils

import (
	"fmt"
	"time"
)

// GenNoPinjaman membentuk nomor pinjaman, unik per koperasi per tahun.
// Format: PNJ-<kode koperasi>-<tahun>-<seq 5 digit>.
func GenNoPinjaman(kodeKoperasi string, seq int64, t time.Time) string {
	return fmt.Sprintf("PNJ-%s-%d-%05d", kodeKoperasi, t.Year(), seq)
}

// GenNoAnggota membentuk nomor anggota baru. Format: AGT-<koperasi id>-<seq>.
func GenNoAnggota(koperasiID uint, seq int64) string {
	return fmt.Sprintf("AGT-%d-%06d", koperasiID, seq)
}
