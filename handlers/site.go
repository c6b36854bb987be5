package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kinsman/brandsite/backend/go-services/internal/config"
	"github.com/kinsman/brandsite/backend/go-services/internal/contact"
	"github.com/kinsman/brandsite/backend/go-services/internal/diagnostics"
	"github.com/kinsman/brandsite/backend/go-services/internal/projects"
	"github.com/kinsman/brandsite/backend/go-services/internal/schema"
	"github.com/kinsman/brandsite/backend/go-services/internal/schemasource"
	"github.com/kinsman/brandsite/backend/go-services/internal/store"
	"github.com/kinsman/brandsite/backend/go-services/pkg/logger"
	"github.com/kinsman/brandsite/backend/go-services/pkg/metrics"
	"github.com/kinsman/brandsite/backend/go-services/pkg/middleware"
)

// StoreStatusHeader is set to "unavailable" when a listing was answered empty
// because the store failed.
const StoreStatusHeader = "X-Store-Status"

// SiteHandler serves the public site API.
type SiteHandler struct {
	cfg      *config.Config
	store    store.Store
	contact  *contact.Service
	projects *projects.Service
	schema   schemasource.Source
}

// NewSiteHandler wires the handler. s may be nil when no store is configured.
func NewSiteHandler(cfg *config.Config, s store.Store, c *contact.Service, p *projects.Service, src schemasource.Source) *SiteHandler {
	return &SiteHandler{cfg: cfg, store: s, contact: c, projects: p, schema: src}
}

// Register mounts the site routes. limiter guards contact submissions and verifier
// guards project creation; both may be nil.
func (h *SiteHandler) Register(r *gin.Engine, limiter gin.HandlerFunc, verifier middleware.Verifier) {
	r.GET("/", h.Root)
	r.GET("/api/hello", h.Hello)
	r.GET("/schema", h.Schema)
	r.GET("/test", h.Diagnostics)

	contactChain := []gin.HandlerFunc{}
	if limiter != nil {
		contactChain = append(contactChain, limiter)
	}
	r.POST("/api/contact", append(contactChain, h.SubmitContact)...)

	r.GET("/api/projects", h.ListProjects)
	r.POST("/api/projects", middleware.AuthMiddleware(verifier), h.CreateProject)
}

func (h *SiteHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from the Go backend!"})
}

func (h *SiteHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from the backend API!"})
}

// Schema returns the schema definition source as {"content": ...}.
func (h *SiteHandler) Schema(c *gin.Context) {
	content, err := h.schema.Read(c.Request.Context())
	if err != nil {
		h.serverError(c, "read schema source", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

// Diagnostics reports store connectivity. It always answers 200.
func (h *SiteHandler) Diagnostics(c *gin.Context) {
	r := diagnostics.Snapshot(c.Request.Context(), h.store, diagnostics.Env{
		URLSet:  h.cfg.Database.URL != "",
		NameSet: h.cfg.Database.Name != "",
	})
	c.JSON(http.StatusOK, r)
}

func (h *SiteHandler) SubmitContact(c *gin.Context) {
	raw, ok := bindObject(c)
	if !ok {
		return
	}
	id, err := h.contact.Submit(c.Request.Context(), raw)
	if h.createFailed(c, "ContactMessage", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": id})
}

func (h *SiteHandler) CreateProject(c *gin.Context) {
	raw, ok := bindObject(c)
	if !ok {
		return
	}
	id, err := h.projects.Create(c.Request.Context(), raw)
	if h.createFailed(c, "Project", err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": id})
}

// ListProjects answers GET /api/projects?tag=&limit=. Store failures never reach the
// caller as errors: the body is an empty array and StoreStatusHeader is set.
func (h *SiteHandler) ListProjects(c *gin.Context) {
	limit := h.cfg.Projects.DefaultLimit
	if v, present := c.GetQuery("limit"); present {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			validationFailed(c, []schema.FieldError{{Field: "limit", Error: "must be an integer"}})
			return
		case n < 1:
			validationFailed(c, []schema.FieldError{{Field: "limit", Error: "must be greater than or equal to 1"}})
			return
		}
		limit = n
	}

	list, err := h.projects.List(c.Request.Context(), c.Query("tag"), limit)
	if err != nil {
		logger.Warnf("list projects degraded: %v", err)
		metrics.ListDegraded.Inc()
		c.Header(StoreStatusHeader, "unavailable")
	}
	c.JSON(http.StatusOK, list)
}

func bindObject(c *gin.Context) (map[string]any, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid JSON body: " + err.Error()})
		return nil, false
	}
	return raw, true
}

// createFailed writes the error response for err, if any, and reports whether it did.
func (h *SiteHandler) createFailed(c *gin.Context, schemaName string, err error) bool {
	if err == nil {
		metrics.Submissions.WithLabelValues(schemaName, "ok").Inc()
		return false
	}
	var ve *schema.ValidationError
	if errors.As(err, &ve) {
		metrics.Submissions.WithLabelValues(schemaName, "invalid").Inc()
		validationFailed(c, ve.Fields)
		return true
	}
	metrics.Submissions.WithLabelValues(schemaName, "error").Inc()
	h.serverError(c, "store "+schemaName, err)
	return true
}

func validationFailed(c *gin.Context, fields []schema.FieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "validation failed", "errors": fields})
}

// serverError logs err and answers 500. The raw message is only echoed when
// SERVER_EXPOSE_ERRORS is on.
func (h *SiteHandler) serverError(c *gin.Context, op string, err error) {
	logger.Errorf("%s: %v", op, err)
	detail := "internal server error"
	if h.cfg.Server.ExposeErrors {
		detail = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": detail})
}
