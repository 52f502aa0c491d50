package timeutil

import (
	"strings"
	"time"
)

const DefaultZone = "America/Argentina/Buenos_Aires"

// LoadLocation carga la zona del negocio. Si la base tz no está disponible
// (contenedores mínimos) cae a un offset fijo UTC-3.
func LoadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, -3*60*60)
	}
	return loc
}

// ClockTime formatea HH:MM en la zona indicada.
func ClockTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}
