package registrations

import (
	"regexp"
	"time"
	"unicode/utf8"
)

const MaxScore = 100

var (
	dniRe   = regexp.MustCompile(`^\d{7,8}$`)
	phoneRe = regexp.MustCompile(`^\d{8,15}$`)
)

// CalculateApplicationScore suma puntos por completitud y calidad de la
// solicitud. Sin el bonus horario el máximo es 99; con él la suma llega a
// 104 y se recorta a 100.
//
// La hora se toma de SubmittedAt en loc (la zona del negocio).
func CalculateApplicationScore(r Registration, loc *time.Location) int {
	score := 0

	if utf8.RuneCountInString(r.FullName) >= 5 {
		score += 20
	}
	if utf8.RuneCountInString(r.Phone) >= 8 {
		score += 15
	}
	if dniRe.MatchString(r.DNI) {
		score += 20
	}
	if utf8.RuneCountInString(r.City) >= 3 {
		score += 10
	}
	if utf8.RuneCountInString(r.Province) >= 3 {
		score += 10
	}
	for _, img := range r.Images.Slots() {
		if img != "" {
			score += 8
		}
	}

	if !r.SubmittedAt.IsZero() {
		if loc == nil {
			loc = time.UTC
		}
		if h := r.SubmittedAt.In(loc).Hour(); h >= 9 && h <= 17 {
			score += 5
		}
	}

	return min(score, MaxScore)
}
