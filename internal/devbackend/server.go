// Package devbackend es una implementación de referencia del backend remoto:
// mismas rutas, mismo sobre {"data": ...} y mismas reglas de conflicto. Sirve
// para desarrollo local y para los tests end-to-end del BFF.
package devbackend

import (
	"net/http"
	"time"

	"pet-walks/internal/adapters/storage/memory"
	"pet-walks/internal/middleware"
	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type Server struct {
	stores Stores
	log    logger.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Server)

// WithClock fija el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(stores Stores, log logger.Logger, opts ...Option) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		stores: stores,
		log:    log.With(logger.Fields{"module": "devbackend"}),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewMemoryStores arma todos los stores en memoria.
func NewMemoryStores() Stores {
	return Stores{
		Tickets:       memory.NewTicketRepo(),
		Registrations: memory.NewRegistrationRepo(),
		Walks:         memory.NewWalkRepo(),
		Chat:          memory.NewChatRepo(),
		Tracks:        memory.NewTrackRepo(),
		Users:         memory.NewUserRepo(),
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recover(s.log))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/auth/me", s.me)

	r.Route("/chat", func(r chi.Router) {
		r.Get("/walks/{tripId}/messages", s.getMessages)
		r.Post("/walks/{tripId}/messages", s.postMessage)
		r.Put("/walks/{tripId}/messages/read", s.markRead)
		r.Get("/users/{userId}/unread-count", s.unreadCount)
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Get("/faqs", s.listFAQs)
		r.Get("/categories", s.listCategories)
		r.Get("/my-tickets", s.myTickets)
		r.Get("/admin/statistics", s.ticketStatistics)
		r.Get("/", s.listTickets)
		r.Post("/", s.createTicket)
		r.Get("/{id}", s.getTicket)
		r.Post("/{id}/respond", s.respondTicket)
		r.Patch("/{id}/status", s.updateTicketStatus)
	})

	r.Route("/walker-registrations", func(r chi.Router) {
		r.Post("/", s.createRegistration)
		r.Get("/", s.listRegistrations)
		r.Get("/statistics", s.registrationStatistics)
		r.Get("/status/{status}", s.registrationsByStatus)
		r.Get("/user/{userId}", s.registrationByUser)
		r.Get("/{id}", s.getRegistration)
		r.Put("/{id}", s.updateRegistration)
		r.Delete("/{id}", s.deleteRegistration)
		r.Post("/{userId}/promote", s.promote)
	})

	r.Route("/walks", func(r chi.Router) {
		r.Post("/", s.createWalk)
		r.Get("/walker/{walkerId}", s.walksByWalker)
		r.Get("/owner/{ownerId}", s.walksByOwner)
		r.Get("/{id}", s.getWalk)
		r.Put("/{id}/status", s.updateWalkStatus)
		r.Post("/{id}/payment", s.payWalk)
	})

	r.Route("/walk-maps/walks/{tripId}", func(r chi.Router) {
		r.Get("/route", s.route)
		r.Post("/location", s.saveLocation)
		r.Get("/availability", s.availability)
	})

	return r
}

// envelope es el sobre de toda respuesta exitosa.
type envelope struct {
	Data any `json:"data"`
}

func writeData(w http.ResponseWriter, status int, v any) {
	httpresp.WriteJSON(w, status, envelope{Data: v})
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	httpresp.Error(w, s.log, op, err, nil)
}

// userID sale del header de identidad que reenvía el BFF.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
