package router

import (
	"net/http"

	"pet-walks/internal/adapters/backend"
	"pet-walks/internal/config"
	"pet-walks/internal/domain/chat"
	"pet-walks/internal/domain/registrations"
	"pet-walks/internal/domain/tickets"
	"pet-walks/internal/domain/tracking"
	"pet-walks/internal/domain/walks"
	"pet-walks/internal/middleware"
	"pet-walks/internal/platform/httpclient"
	"pet-walks/internal/platform/httpresp"
	"pet-walks/internal/platform/logger"
	"pet-walks/internal/platform/timeutil"
	"pet-walks/internal/ports/auth"

	_ "pet-walks/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config

	// Backend es el gateway al backend remoto. Obligatorio.
	Backend *httpclient.Client

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Logger       logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	cfg := opts.Config

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLog(log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Debug-User-ID", "X-User-ID", "X-User-Role", "X-User-Name"},
		AllowCredentials: true,
	}).Handler)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Entity access sobre el gateway compartido
	bc := backend.NewClient(opts.Backend)
	chatRepo := backend.NewChatRepo(bc)
	ticketsRepo := backend.NewTicketsRepo(bc)
	registrationsRepo := backend.NewRegistrationsRepo(bc)
	walksRepo := backend.NewWalksRepo(bc)
	trackingRepo := backend.NewTrackingRepo(bc)

	// Services por módulo
	loc := timeutil.LoadLocation(cfg.Timezone)
	walksSvc := walks.NewService(walksRepo)
	agendas := walks.NewAgendaCache(walksSvc, cfg.AgendaTTL)
	chatSvc := chat.NewService(chatRepo, loc)
	ticketsSvc := tickets.NewService(ticketsRepo)
	registrationsSvc := registrations.NewService(registrationsRepo, loc)
	trackingSvc := tracking.NewService(trackingRepo, loc)

	// Rutas por módulo. El estado del paseo lo resuelve walks para chat y tracking.
	walks.RegisterRoutes(r, walksSvc, agendas, log)
	chat.RegisterRoutes(r, chatSvc, walksSvc, log)
	tickets.RegisterRoutes(r, ticketsSvc, log)
	registrations.RegisterRoutes(r, registrationsSvc, log)
	tracking.RegisterRoutes(r, trackingSvc, walksSvc, log)

	r.Get("/api/config/image-host", func(w http.ResponseWriter, _ *http.Request) {
		httpresp.WriteJSON(w, http.StatusOK, cfg.ImageHost)
	})

	r.Route("/ws/trips/{tripID}", func(wr chi.Router) {
		wr.Get("/chat", chat.StreamHandler(chatSvc, walksSvc, cfg.ChatPollInterval, log))
		wr.Get("/tracking", tracking.StreamHandler(trackingSvc, walksSvc, cfg.TrackingPollInterval, log))
	})

	return r
}
