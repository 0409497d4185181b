// service/cicilan_service.go
package service

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/akbrdhia/SAKO-Backend/config"
	"github.com/akbrdhia/SAKO-Backend/models"
	"github.com/akbrdhia/SAKO-Backend/utils"
)

// CicilanService memproses pembayaran cicilan (partial payment didukung)
// dan sweep keterlambatan. Strategi alokasi: denda -> bunga -> pokok.
type CicilanService struct {
	db  *gorm.DB
	log *logrus.Logger
	cfg config.CicilanConfig
}

func NewCicilanService(db *gorm.DB, log *logrus.Logger, cfg config.CicilanConfig) *CicilanService {
	return &CicilanService{db: db, log: log, cfg: cfg}
}

type MetadataBayar struct {
	MetodeBayar    models.MetodeBayar
	NomorReferensi string
	Keterangan     string
}

type HasilPembayaran struct {
	Pembayaran    *models.PembayaranCicilan `json:"pembayaran"`
	Alokasi       HasilAlokasi              `json:"alokasi"`
	CicilanLunas  bool                      `json:"cicilan_lunas"`
	PinjamanLunas bool                      `json:"pinjaman_lunas"`
}

// terapkanPembayaran menjalankan inti pembayaran pada entitas yang sudah
// terkunci: guard status, evaluasi ulang denda per "today", alokasi kas,
// mutasi akumulasi cicilan dan saldo pinjaman (floor di 0), flip status
// cicilan dan pinjaman saat lunas. Murni in-memory, tidak menyentuh
// database.
func terapkanPembayaran(cicilan *models.JadwalCicilan, pinjaman *models.Pinjaman, jumlahBayar float64, kasirID uint, meta MetadataBayar, today time.Time, cfg config.CicilanConfig) (models.PembayaranCicilan, HasilAlokasi, error) {
	if cicilan.SudahLunas() {
		return models.PembayaranCicilan{}, HasilAlokasi{}, ErrAlreadySettled(cicilan.CicilanKe)
	}
	if pinjaman.Status != models.PinjamanActive {
		return models.PembayaranCicilan{}, HasilAlokasi{}, ErrLoanNotActive(string(pinjaman.Status))
	}

	// Evaluasi ulang keterlambatan per hari ini (snapshot lama tidak
	// dipercaya)
	hariTelat := HariTelat(cicilan, today)
	denda := HitungDenda(cicilan, today, cfg)
	if hariTelat > 0 {
		cicilan.Status = models.CicilanTelat
	}
	cicilan.HariTelat = hariTelat
	cicilan.Denda = denda

	// Alokasi kas ke bucket
	sisaDenda, sisaBunga, sisaPokok := SisaPerBucket(cicilan, denda)
	alokasi := AlokasiPembayaran(sisaDenda, sisaBunga, sisaPokok, jumlahBayar)

	// Bukti pembayaran, append-only
	pembayaran := models.PembayaranCicilan{
		JadwalCicilanID: cicilan.ID,
		PinjamanID:      pinjaman.ID,
		JumlahBayar:     jumlahBayar,
		TanggalBayar:    today,
		AlokasiDenda:    alokasi.AlokasiDenda,
		AlokasiBunga:    alokasi.AlokasiBunga,
		AlokasiPokok:    alokasi.AlokasiPokok,
		SisaDenda:       alokasi.SisaDenda,
		SisaBunga:       alokasi.SisaBunga,
		SisaPokok:       alokasi.SisaPokok,
		KelebihanBayar:  alokasi.Kelebihan,
		MetodeBayar:     meta.MetodeBayar,
		NomorReferensi:  meta.NomorReferensi,
		Keterangan:      meta.Keterangan,
		DibayarOleh:     kasirID,
	}

	// Akumulasi cicilan
	cicilan.JumlahDibayar += jumlahBayar
	cicilan.JumlahDibayarDenda += alokasi.AlokasiDenda
	cicilan.JumlahDibayarBunga += alokasi.AlokasiBunga
	cicilan.JumlahDibayarPokok += alokasi.AlokasiPokok
	cicilan.DibayarOleh = &kasirID
	if alokasi.Lunas {
		cicilan.Status = models.CicilanSudahBayar
		bayar := today
		cicilan.TanggalBayar = &bayar
	}

	// Saldo pinjaman (floor di 0); lunas total = status terminal
	pinjaman.SisaPokok = utils.Round2(maxf(0, pinjaman.SisaPokok-alokasi.AlokasiPokok))
	pinjaman.SisaBunga = utils.Round2(maxf(0, pinjaman.SisaBunga-alokasi.AlokasiBunga))
	if pinjaman.IsLunas() {
		pinjaman.Status = models.PinjamanLunas
	}

	return pembayaran, alokasi, nil
}

// ProsesBayar menjalankan satu pembayaran sebagai SATU transaksi:
// lock baris jadwal + baris pinjaman (FOR UPDATE, serialisasi per
// pinjaman), terapkan pembayaran, append bukti, simpan akumulasi dan
// saldo. Gagal di tengah = rollback total.
func (s *CicilanService) ProsesBayar(jadwalID uint, jumlahBayar float64, kasirID uint, meta MetadataBayar, today time.Time) (*HasilPembayaran, error) {
	if jumlahBayar <= 0 {
		return nil, ErrInvalidAmount()
	}
	if meta.MetodeBayar == "" {
		meta.MetodeBayar = models.BayarTunai
	}
	if !meta.MetodeBayar.Valid() {
		return nil, ErrValidation("metode_bayar tidak valid (tunai/transfer/lainnya)")
	}

	var hasil HasilPembayaran

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cicilan models.JadwalCicilan
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&cicilan, jadwalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("jadwal cicilan", jadwalID)
			}
			return ErrPersistence("ambil jadwal cicilan", err)
		}

		var pinjaman models.Pinjaman
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&pinjaman, cicilan.PinjamanID).Error; err != nil {
			return ErrPersistence("ambil pinjaman", err)
		}

		pembayaran, alokasi, err := terapkanPembayaran(&cicilan, &pinjaman, jumlahBayar, kasirID, meta, today, s.cfg)
		if err != nil {
			return err
		}

		if err := tx.Create(&pembayaran).Error; err != nil {
			return ErrPersistence("simpan pembayaran", err)
		}
		if err := tx.Save(&cicilan).Error; err != nil {
			return ErrPersistence("update jadwal cicilan", err)
		}
		if err := tx.Save(&pinjaman).Error; err != nil {
			return ErrPersistence("update saldo pinjaman", err)
		}

		hasil = HasilPembayaran{
			Pembayaran:    &pembayaran,
			Alokasi:       alokasi,
			CicilanLunas:  alokasi.Lunas,
			PinjamanLunas: pinjaman.Status == models.PinjamanLunas,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := s.log.WithFields(logrus.Fields{
		"jadwal_id": jadwalID,
		"jumlah":    jumlahBayar,
		"kasir":     kasirID,
		"lunas":     hasil.CicilanLunas,
	})
	entry.Info("pembayaran cicilan diproses")
	if hasil.Alokasi.Kelebihan > 0 {
		// Kelebihan tidak di-carry dan tidak di-refund; dicatat di bukti
		// pembayaran dan dilaporkan, menunggu keputusan produk.
		entry.WithField("kelebihan", hasil.Alokasi.Kelebihan).
			Warn("pembayaran melebihi total tagihan cicilan")
	}

	return &hasil, nil
}

// PreviewPembayaran mensimulasikan alokasi tanpa menulis apa pun.
func (s *CicilanService) PreviewPembayaran(jadwalID uint, jumlahBayar float64, today time.Time) (*HasilAlokasi, error) {
	if jumlahBayar <= 0 {
		return nil, ErrInvalidAmount()
	}

	var cicilan models.JadwalCicilan
	if err := s.db.First(&cicilan, jadwalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("jadwal cicilan", jadwalID)
		}
		return nil, ErrPersistence("ambil jadwal cicilan", err)
	}
	if cicilan.SudahLunas() {
		return nil, ErrAlreadySettled(cicilan.CicilanKe)
	}

	denda := HitungDenda(&cicilan, today, s.cfg)
	sisaDenda, sisaBunga, sisaPokok := SisaPerBucket(&cicilan, denda)
	alokasi := AlokasiPembayaran(sisaDenda, sisaBunga, sisaPokok, jumlahBayar)
	return &alokasi, nil
}

// SweepTelat menandai cicilan lewat jatuh tempo dan men-snapshot
// hari_telat + denda. Idempotent: denda tergantung hari telat yang
// dihitung ulang, bukan di-increment, jadi sweep dua kali di hari yang
// sama tidak menggandakan apa pun. Cicilan sudah_bayar tidak disentuh.
func (s *CicilanService) SweepTelat(today time.Time) (int, error) {
	var rows []models.JadwalCicilan
	if err := s.db.
		Where("status IN ? AND tanggal_jatuh_tempo < ?",
			[]models.StatusCicilan{models.CicilanBelumBayar, models.CicilanTelat},
			tanggalSaja(today)).
		Find(&rows).Error; err != nil {
		return 0, ErrPersistence("ambil cicilan telat", err)
	}

	updated := 0
	for i := range rows {
		c := &rows[i]
		hari := HariTelat(c, today)
		if hari <= 0 {
			continue
		}
		denda := HitungDenda(c, today, s.cfg)

		// Pembayaran yang berjalan paralel menghitung ulang sendiri,
		// jadi last-writer-wins di snapshot ini aman.
		err := s.db.Model(&models.JadwalCicilan{}).
			Where("id = ? AND status <> ?", c.ID, models.CicilanSudahBayar).
			Updates(map[string]interface{}{
				"status":     models.CicilanTelat,
				"hari_telat": hari,
				"denda":      denda,
			}).Error
		if err != nil {
			return updated, ErrPersistence("update status telat", err)
		}
		updated++
	}

	if updated > 0 {
		s.log.WithField("count", updated).Info("sweep cicilan telat selesai")
	}
	return updated, nil
}

// HistoryPembayaran: seluruh bukti pembayaran satu pinjaman, terbaru dulu.
func (s *CicilanService) HistoryPembayaran(pinjamanID uint) ([]models.PembayaranCicilan, error) {
	var rows []models.PembayaranCicilan
	if err := s.db.
		Where("pinjaman_id = ?", pinjamanID).
		Order("tanggal_bayar DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, ErrPersistence("ambil history pembayaran", err)
	}
	return rows, nil
}

// StatistikCicilan = ringkasan per pinjaman, termasuk cross-check saldo
// denormalized terhadap jumlah dari bukti pembayaran.
type StatistikCicilan struct {
	TotalCicilan    int64   `json:"total_cicilan"`
	SudahBayar      int64   `json:"sudah_bayar"`
	BelumBayar      int64   `json:"belum_bayar"`
	Telat           int64   `json:"telat"`
	PersentaseLunas float64 `json:"persentase_lunas"`

	TotalSudahDibayar float64 `json:"total_sudah_dibayar"`
	TotalDenda        float64 `json:"total_denda"`

	SisaPokok float64 `json:"sisa_pokok"`
	SisaBunga float64 `json:"sisa_bunga"`
	TotalSisa float64 `json:"total_sisa"`

	// Rekonsiliasi: saldo berjalan vs derivasi dari bukti pembayaran
	AlokasiPokokTercatat float64 `json:"alokasi_pokok_tercatat"`
	AlokasiBungaTercatat float64 `json:"alokasi_bunga_tercatat"`
	Konsisten            bool    `json:"konsisten"`
}

func (s *CicilanService) GetStatistikCicilan(pinjamanID uint) (*StatistikCicilan, error) {
	var pinjaman models.Pinjaman
	if err := s.db.First(&pinjaman, pinjamanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("pinjaman", pinjamanID)
		}
		return nil, ErrPersistence("ambil pinjaman", err)
	}

	stat := StatistikCicilan{
		SisaPokok: pinjaman.SisaPokok,
		SisaBunga: pinjaman.SisaBunga,
		TotalSisa: utils.Round2(pinjaman.SisaPokok + pinjaman.SisaBunga),
	}

	base := s.db.Model(&models.JadwalCicilan{}).Where("pinjaman_id = ?", pinjamanID)
	if err := base.Session(&gorm.Session{}).Count(&stat.TotalCicilan).Error; err != nil {
		return nil, ErrPersistence("hitung cicilan", err)
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.CicilanSudahBayar).Count(&stat.SudahBayar).Error; err != nil {
		return nil, ErrPersistence("hitung cicilan lunas", err)
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.CicilanBelumBayar).Count(&stat.BelumBayar).Error; err != nil {
		return nil, ErrPersistence("hitung cicilan belum bayar", err)
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.CicilanTelat).Count(&stat.Telat).Error; err != nil {
		return nil, ErrPersistence("hitung cicilan telat", err)
	}
	if stat.TotalCicilan > 0 {
		stat.PersentaseLunas = utils.Round2(float64(stat.SudahBayar) / float64(stat.TotalCicilan) * 100)
	}

	type agregat struct {
		TotalBayar   float64
		TotalDenda   float64
		AlokasiPokok float64
		AlokasiBunga float64
	}
	var agg agregat
	if err := s.db.Model(&models.PembayaranCicilan{}).
		Where("pinjaman_id = ?", pinjamanID).
		Select(`COALESCE(SUM(jumlah_bayar),0) AS total_bayar,
			COALESCE(SUM(alokasi_denda),0) AS total_denda,
			COALESCE(SUM(alokasi_pokok),0) AS alokasi_pokok,
			COALESCE(SUM(alokasi_bunga),0) AS alokasi_bunga`).
		Scan(&agg).Error; err != nil {
		return nil, ErrPersistence("agregasi pembayaran", err)
	}

	stat.TotalSudahDibayar = agg.TotalBayar
	stat.TotalDenda = agg.TotalDenda
	stat.AlokasiPokokTercatat = agg.AlokasiPokok
	stat.AlokasiBungaTercatat = agg.AlokasiBunga

	// sisa_pokok harus = jumlah_pinjaman - alokasi pokok tercatat (dalam
	// toleransi pembulatan 1 sen), idem bunga.
	const toleransi = 0.01
	stat.Konsisten = absf(pinjaman.JumlahPinjaman-agg.AlokasiPokok-pinjaman.SisaPokok) <= toleransi &&
		absf(pinjaman.TotalBunga-agg.AlokasiBunga-pinjaman.SisaBunga) <= toleransi

	return &stat, nil
}

// DaftarReminder: cicilan belum bayar yang jatuh tempo tepat pada
// today + hariSebelum (H-x), beserta data anggotanya.
func (s *CicilanService) DaftarReminder(today time.Time, hariSebelum int) ([]models.JadwalCicilan, error) {
	target := tanggalSaja(today).AddDate(0, 0, hariSebelum)

	var rows []models.JadwalCicilan
	if err := s.db.
		Preload("Pinjaman").
		Preload("Pinjaman.Anggota").
		Where("status = ? AND tanggal_jatuh_tempo = ?", models.CicilanBelumBayar, target).
		Find(&rows).Error; err != nil {
		return nil, ErrPersistence("ambil cicilan reminder", err)
	}
	return rows, nil
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
