package tickets

import "strings"

const DefaultCategory = "general"

// Claves canónicas en el orden en que se muestran.
var categoryOrder = []string{"general", "walker", "payment", "walk", "account", "technical"}

var categoryLabels = map[string]string{
	"general":   "General",
	"walker":    "Paseadores",
	"payment":   "Pagos",
	"walk":      "Paseos",
	"account":   "Cuenta",
	"technical": "Soporte Técnico",
}

// aliases de texto libre -> clave canónica (en minúsculas, sin espacios extremos)
var categoryAliases = map[string]string{
	"consulta general": "general",
	"otro":             "general",
	"otros":            "general",
	"paseador":         "walker",
	"paseadores":       "walker",
	"walkers":          "walker",
	"pago":             "payment",
	"pagos":            "payment",
	"payments":         "payment",
	"facturación":      "payment",
	"paseo":            "walk",
	"paseos":           "walk",
	"walks":            "walk",
	"cuenta":           "account",
	"mi cuenta":        "account",
	"técnico":          "technical",
	"tecnico":          "technical",
	"soporte técnico":  "technical",
	"soporte tecnico":  "technical",
	"tech":             "technical",
}

// GetCategoryLabel mapea una clave, un alias o una etiqueta a la etiqueta
// visible. Las etiquetas son puntos fijos; un valor desconocido se devuelve
// sin cambios.
func GetCategoryLabel(value string) string {
	if key, ok := canonicalCategory(value); ok {
		return categoryLabels[key]
	}
	return value
}

// CategoryKey resuelve la clave canónica de un valor, o "" si no se reconoce.
func CategoryKey(value string) string {
	key, _ := canonicalCategory(value)
	return key
}

func Categories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(categoryOrder))
	for _, k := range categoryOrder {
		out = append(out, CategoryInfo{Value: k, Label: categoryLabels[k]})
	}
	return out
}

func canonicalCategory(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", false
	}
	if _, ok := categoryLabels[v]; ok {
		return v, true
	}
	if k, ok := categoryAliases[v]; ok {
		return k, true
	}
	for k, label := range categoryLabels {
		if strings.ToLower(label) == v {
			return k, true
		}
	}
	return "", false
}
