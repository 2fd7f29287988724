package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	campaignservice "advidly/contexts/ad-operations/campaign-service"
	videoservice "advidly/contexts/creator-studio/video-service"
	accountservice "advidly/contexts/identity-access/account-service"
	accountentities "advidly/contexts/identity-access/account-service/domain/entities"
	accounthttp "advidly/contexts/identity-access/account-service/transport/http"
	"advidly/internal/platform/filestore"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "advidly/internal/platform/httpserver/docs"
)

const sessionCookieName = "advidly_session"

type Server struct {
	mux        *http.ServeMux
	httpServer *http.Server
	logger     *slog.Logger
	addr       string
	accounts   accountservice.Module
	campaigns  campaignservice.Module
	videos     videoservice.Module
	files      *filestore.Store
	metrics    *requestMetrics

	adUploadLimit    int64
	videoUploadLimit int64
}

func New(
	accounts accountservice.Module,
	campaigns campaignservice.Module,
	videos videoservice.Module,
	files *filestore.Store,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		accounts:  accounts,
		campaigns: campaigns,
		videos:    videos,
		files:     files,
		metrics:   newRequestMetrics(),

		adUploadLimit:    defaultAdUploadBytes,
		videoUploadLimit: defaultVideoUploadBytes,
	}
	s.registerRoutes()
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.metrics.instrument(s.mux),
	}
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	s.mux.HandleFunc("GET /api/auth/me", s.handleMe)
	s.mux.HandleFunc("GET /api/auth/status", s.handleAuthStatus)

	s.mux.HandleFunc("GET /api/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("POST /api/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /api/campaigns/{id}", s.handleGetCampaign)
	s.mux.HandleFunc("PATCH /api/campaigns/{id}", s.handleUpdateCampaign)
	s.mux.HandleFunc("DELETE /api/campaigns/{id}", s.handleDeleteCampaign)

	s.mux.HandleFunc("GET /api/ads", s.handleListAds)
	s.mux.HandleFunc("POST /api/ads/upload", s.handleUploadAd)
	s.mux.HandleFunc("GET /api/ads/{id}", s.handleGetAd)
	s.mux.HandleFunc("PATCH /api/ads/{id}", s.handleUpdateAd)
	s.mux.HandleFunc("DELETE /api/ads/{id}", s.handleDeleteAd)

	s.mux.HandleFunc("GET /api/videos", s.handleListVideos)
	s.mux.HandleFunc("POST /api/videos/upload", s.handleUploadVideo)
	s.mux.HandleFunc("GET /api/videos/{id}", s.handleGetVideo)
	s.mux.HandleFunc("PATCH /api/videos/{id}", s.handleUpdateVideo)
	s.mux.HandleFunc("DELETE /api/videos/{id}", s.handleDeleteVideo)
	s.mux.HandleFunc("GET /api/videos/{id}/download", s.handleDownloadVideo)

	s.mux.HandleFunc("GET /api/videos/{id}/placements", s.handleListPlacements)
	s.mux.HandleFunc("POST /api/videos/{id}/placements", s.handleCreatePlacement)
	s.mux.HandleFunc("POST /api/placements/{id}/track", s.handleTrackPlacement)

	s.mux.HandleFunc("GET /api/analytics/summary", s.handleCompanySummary)
	s.mux.HandleFunc("GET /api/analytics/creator/summary", s.handleCreatorSummary)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// currentSession resolves the session cookie or writes a 401 and reports
// false. Ownership checks happen later in the service layer, so a caller
// always learns about a bad session before anything else.
func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) (accountentities.Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return accountentities.Session{}, false
	}
	session, err := s.accounts.Handler.ValidateSessionHandler(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "session is invalid or expired")
		return accountentities.Session{}, false
	}
	return session, true
}

func (s *Server) requireUserType(w http.ResponseWriter, session accountentities.Session, userType accountentities.UserType) bool {
	if session.UserType != userType {
		writeError(w, http.StatusForbidden, "forbidden", "this endpoint is not available for your account type")
		return false
	}
	return true
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accounthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
