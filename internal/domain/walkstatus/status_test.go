package walkstatus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_CaseInsensitiveAndAliases(t *testing.T) {
	cases := map[string]Status{
		"ACTIVO":         Activo,
		" finalizado ":   Finalizado,
		"esperando_pago": EsperandoPago,
		"Esperando Pago": EsperandoPago,
		"solicitado":     Solicitado,
		"CANCELADO":      Cancelado,
		"Rechazado":      Rechazado,
		"agendado":       Agendado,
	}
	for raw, want := range cases {
		got, ok := Parse(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := Parse("")
	assert.False(t, ok)
	_, ok = Parse("en_camino")
	assert.False(t, ok)
}

func TestVisibility_OnlyActiveAndFinished(t *testing.T) {
	for _, s := range All {
		want := s == Activo || s == Finalizado
		assert.Equal(t, want, ChatVisible(s), "chat %s", s)
		assert.Equal(t, want, MapVisible(s), "map %s", s)
		assert.Equal(t, want, TrackingVisible(s), "tracking %s", s)

		assert.Equal(t, s == Activo, CanSendMessages(s), "send %s", s)
		assert.Equal(t, s == Activo, MapInteractive(s), "interactive %s", s)
	}
}

func TestRawPredicates_UnknownIsAlwaysFalse(t *testing.T) {
	for _, raw := range []string{"", "   ", "unknown_value", "en curso", "pagado"} {
		assert.False(t, ChatVisibleRaw(raw), raw)
		assert.False(t, MapVisibleRaw(raw), raw)
		assert.False(t, TrackingVisibleRaw(raw), raw)
		assert.False(t, CanSendMessagesRaw(raw), raw)
		assert.False(t, MapInteractiveRaw(raw), raw)
	}

	assert.True(t, ChatVisibleRaw("FINALIZADO"))
	assert.True(t, CanSendMessagesRaw("activo"))
	assert.False(t, CanSendMessagesRaw("finalizado"))
}

func TestMessages_DistinctFallbacks(t *testing.T) {
	assert.NotEqual(t, ChatMessage(""), ChatMessage("unknown_value"))
	assert.NotEqual(t, MapMessage(""), MapMessage("unknown_value"))

	assert.Equal(t, ChatUnknownMessage, ChatMessage(""))
	assert.Equal(t, ChatNotRecognizedMessage, ChatMessage("unknown_value"))
	assert.Equal(t, MapUnknownMessage, MapMessage("  "))
	assert.Equal(t, MapNotRecognizedMessage, MapMessage("xyz"))

	// ambos alias de esperando pago dan el mismo mensaje
	assert.Equal(t, ChatMessage("esperando_pago"), ChatMessage("esperando pago"))

	for _, s := range All {
		chat := ChatMessage(strings.ToLower(string(s)))
		assert.NotEqual(t, ChatNotRecognizedMessage, chat, s)
		assert.NotEqual(t, ChatUnknownMessage, chat, s)
		// mismos gating, distinto wording
		assert.NotEqual(t, chat, MapMessage(string(s)), s)
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(Solicitado, EsperandoPago))
	assert.True(t, CanTransition(EsperandoPago, Agendado))
	assert.True(t, CanTransition(Agendado, Activo))
	assert.True(t, CanTransition(Activo, Finalizado))
	assert.True(t, CanTransition(Solicitado, Rechazado))

	assert.False(t, CanTransition(Solicitado, Activo))
	assert.False(t, CanTransition(Activo, Cancelado))
	for _, s := range []Status{Finalizado, Rechazado, Cancelado} {
		assert.True(t, s.Terminal())
		for _, to := range All {
			assert.False(t, CanTransition(s, to), "%s -> %s", s, to)
		}
	}
	assert.False(t, CanTransition(Status("nope"), Activo))
}

func TestParticipants_Side(t *testing.T) {
	p := Participants{Status: "Activo", OwnerID: "o-1", WalkerID: "w-1"}

	assert.Equal(t, SideOwner, p.Side("o-1"))
	assert.Equal(t, SideWalker, p.Side("w-1"))
	assert.Empty(t, p.Side("stranger-9"))
	assert.Empty(t, p.Side(""))
	assert.Empty(t, Participants{}.Side(""))
}
