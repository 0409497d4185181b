// scheduler/scheduler_test.go
package scheduler

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// kunciPalsu merekam pemanggilan dan bisa diset menolak lock.
type kunciPalsu struct {
	tolak bool
	err   error
	nama  []string
}

func (k *kunciPalsu) Coba(nama string, fn func()) error {
	k.nama = append(k.nama, nama)
	if k.err != nil {
		return k.err
	}
	if k.tolak {
		return nil
	}
	fn()
	return nil
}

func logDiam() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunExclusive_LockDidapat(t *testing.T) {
	kunci := &kunciPalsu{}
	s := &Scheduler{log: logDiam(), kunci: kunci}

	jalan := false
	s.runExclusive("sweep_telat", func(time.Time) { jalan = true })

	assert.True(t, jalan)
	assert.Equal(t, []string{"sweep_telat"}, kunci.nama)
}

func TestRunExclusive_LockDitolak(t *testing.T) {
	kunci := &kunciPalsu{tolak: true}
	s := &Scheduler{log: logDiam(), kunci: kunci}

	jalan := false
	s.runExclusive("sweep_telat", func(time.Time) { jalan = true })

	// Lock dipegang instance lain: job dilewati, bukan error
	assert.False(t, jalan)
	assert.Equal(t, []string{"sweep_telat"}, kunci.nama)
}

func TestRunExclusive_GagalAmbilLock(t *testing.T) {
	kunci := &kunciPalsu{err: errors.New("connection reset")}
	s := &Scheduler{log: logDiam(), kunci: kunci}

	jalan := false
	s.runExclusive("reminder_cicilan", func(time.Time) { jalan = true })

	assert.False(t, jalan)
}

func TestJalankanReminder_MailerNonaktif(t *testing.T) {
	// Mailer nil = nonaktif: harus berhenti sebelum menyentuh database
	// (cicilan service di sini nil, panic kalau sampai dipakai).
	s := &Scheduler{log: logDiam()}

	assert.NotPanics(t, func() {
		s.JalankanReminder(time.Now())
	})
}
