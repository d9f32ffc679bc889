// Package shell serves the web console: one tab per view, each tab's state
// kept in the caller's session workspace.
package shell

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"rfp-console/internal/api"
	"rfp-console/internal/common/config"
	apperrors "rfp-console/internal/common/errors"
	"rfp-console/internal/common/logger"
	"rfp-console/internal/common/observability"
	"rfp-console/internal/common/session"
	proposalcomparison "rfp-console/internal/views/proposal-comparison"
	rfpdashboard "rfp-console/internal/views/rfp-dashboard"
	rfpform "rfp-console/internal/views/rfp-form"
	vendormanager "rfp-console/internal/views/vendor-manager"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

// Dependencies wires the console to the RFP service and a session store.
type Dependencies struct {
	Config        *config.Config
	Client        *api.Client
	Store         session.Store
	Logger        logger.Logger
	Observability *observability.Observability
	// Gatherer backs /metrics; nil means the default registry.
	Gatherer prometheus.Gatherer
}

type Server struct {
	cfg    *config.Config
	client *api.Client
	store  session.Store
	locks  *session.Locks
	logger logger.Logger
	engine *gin.Engine

	rfpForm   *rfpform.Handler
	vendors   *vendormanager.Handler
	dashboard *rfpdashboard.Handler
	proposals *proposalcomparison.Handler
}

func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil || deps.Client == nil || deps.Store == nil {
		return nil, errors.New("shell: config, client and store are required")
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.Named("shell")
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	obs := deps.Observability
	if obs == nil {
		obs = observability.Noop()
	}

	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       deps.Config,
		client:    deps.Client,
		store:     deps.Store,
		locks:     session.NewLocks(),
		logger:    log,
		rfpForm:   rfpform.NewHandler(rfpform.LoadConfig(), deps.Client, log, obs),
		vendors:   vendormanager.NewHandler(vendormanager.LoadConfig(), deps.Client, log, obs),
		dashboard: rfpdashboard.NewHandler(rfpdashboard.LoadConfig(), deps.Client, log, obs),
		proposals: proposalcomparison.NewHandler(proposalcomparison.LoadConfig(), deps.Client, log, obs),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/healthz", s.healthz)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	tabs := engine.Group("/", s.withWorkspace())
	{
		tabs.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/rfp") })

		tabs.GET("/rfp", s.showRFPForm)
		tabs.POST("/rfp/generate", s.generateRFP)
		tabs.POST("/rfp/draft", s.editDraft)
		tabs.POST("/rfp/discard", s.discardDraft)

		tabs.GET("/vendors", s.showVendors)
		tabs.POST("/vendors", s.createVendor)

		tabs.GET("/dashboard", s.showDashboard)
		tabs.POST("/dashboard/send/open", s.openSend)
		tabs.POST("/dashboard/send/toggle", s.toggleVendor)
		tabs.POST("/dashboard/send/cancel", s.cancelSend)
		tabs.POST("/dashboard/send/confirm", s.confirmSend)

		tabs.GET("/proposals", s.showProposals)
		tabs.POST("/proposals/select", s.selectRFP)
		tabs.POST("/proposals/submit", s.submitProposal)
		tabs.POST("/proposals/compare", s.compareProposals)
	}

	s.engine = engine
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if sweeper, ok := s.store.(interface{ Sweep() int }); ok {
		go s.sweepSessions(ctx, sweeper)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web console listening", map[string]interface{}{
			"address": s.cfg.Server.Address,
			"api":     s.client.BaseURL(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutdown signal received, stopping web console", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sweepSessions drops expired workspaces from stores that only expire on read.
func (s *Server) sweepSessions(ctx context.Context, sweeper interface{ Sweep() int }) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sweeper.Sweep(); n > 0 {
				s.logger.Debug("expired workspaces removed", map[string]interface{}{"count": n})
			}
		}
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request", map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"durationMs": time.Since(start).Milliseconds(),
		})
	}
}

func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	health, err := s.client.HealthCheck(ctx)
	if err != nil {
		s.logger.Warn("RFP service health probe failed", apperrors.LogFields(apperrors.NewAPIUnavailableError(err)))
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "api_error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "api": health})
}
