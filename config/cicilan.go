// config/cicilan.go
package config

import "strconv"

// CicilanConfig = parameter denda & reminder. Sumber: env, dengan default
// yang sama dengan sistem lama.
type CicilanConfig struct {
	// Denda keterlambatan
	DendaEnabled   bool    // DENDA_ENABLED, default true
	DendaPerHari   float64 // DENDA_PER_HARI, persentase per hari dalam desimal (0.001 = 0.1%)
	DendaMaxPersen float64 // DENDA_MAX_PERSEN, cap denda dalam persen dari jumlah cicilan

	// Reminder jatuh tempo
	ReminderHariSebelum int // REMINDER_HARI_SEBELUM, default H-3
}

func LoadCicilanConfig() CicilanConfig {
	return CicilanConfig{
		DendaEnabled:        getBool("DENDA_ENABLED", true),
		DendaPerHari:        getFloat("DENDA_PER_HARI", 0.001),
		DendaMaxPersen:      getFloat("DENDA_MAX_PERSEN", 10),
		ReminderHariSebelum: getInt("REMINDER_HARI_SEBELUM", 3),
	}
}

func getBool(key string, def bool) bool {
	v := GetEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getFloat(key string, def float64) float64 {
	v := GetEnv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getInt(key string, def int) int {
	v := GetEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
