package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"mix-service/internal/catalog"
	"mix-service/internal/designer"
	"mix-service/internal/mix"
	"mix-service/internal/mode"
	"mix-service/internal/models"
	"mix-service/internal/nutrition"
	"mix-service/internal/session"
	"mix-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	provider catalog.Provider
	saved    designer.SavedMixStore
	intake   designer.OrderIntake
	detector *mode.Detector
	registry *session.Registry
}

// NewHandler creates a new HTTP handler
func NewHandler(
	provider catalog.Provider,
	saved designer.SavedMixStore,
	intake designer.OrderIntake,
	detector *mode.Detector,
	registry *session.Registry,
) *Handler {
	return &Handler{
		provider: provider,
		saved:    saved,
		intake:   intake,
		detector: detector,
		registry: registry,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/nutrition/:code", h.getNutrition)
		v1.GET("/mixes", h.listSavedMixes)

		v1.POST("/sessions", h.openSession)
		v1.GET("/sessions/:id", h.getDraft)
		v1.POST("/sessions/:id/name", h.setName)
		v1.POST("/sessions/:id/components", h.addComponent)
		v1.PUT("/sessions/:id/components/:index", h.commitEditQuantity)
		v1.POST("/sessions/:id/components/:index/edit", h.beginEditQuantity)
		v1.DELETE("/sessions/:id/components/:index", h.removeComponent)
		v1.POST("/sessions/:id/save", h.saveMix)
		v1.POST("/sessions/:id/order", h.convertToOrder)
		v1.POST("/sessions/:id/clear", h.clearDraft)
		v1.POST("/sessions/:id/load", h.loadSavedMix)
		v1.POST("/sessions/:id/confirm", h.resolveIntent)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"sessions": h.registry.Len(),
		"time":     time.Now().Unix(),
	})
}

// listProducts returns the purchasable catalog.
func (h *Handler) listProducts(c *gin.Context) {
	items, err := h.provider.Catalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load catalog",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": items})
}

// getNutrition returns per-product nutrition facts. Unknown codes get
// the "not available" info dialog rather than an error notification.
func (h *Handler) getNutrition(c *gin.Context) {
	code := c.Param("code")
	facts, ok := nutrition.Lookup(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"notification": models.Notification{
				Icon:              models.IconInfo,
				Title:             "Información no disponible",
				Text:              "Información nutricional no disponible para este producto.",
				ConfirmButtonText: "Entendido",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code, "nutrition": facts})
}

// listSavedMixes returns all persisted mixes.
func (h *Handler) listSavedMixes(c *gin.Context) {
	mixes, err := h.saved.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load saved mixes",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mixes": mixes})
}

// openSession creates a designer session. The catalog snapshot and view
// mode are captured here, once per session.
func (h *Handler) openSession(c *gin.Context) {
	items, err := h.provider.Catalog(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load catalog",
			"details": err.Error(),
		})
		return
	}

	id := uuid.New().String()
	d := designer.New(
		catalog.NewSnapshot(items),
		h.saved,
		h.intake,
		h.detector.Current(c.Request.Context()),
	)
	h.registry.Put(id, d)
	util.SessionsOpenedTotal.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"session_id": id,
		"draft":      d.View(),
	})
}

// getDraft returns the current draft view.
func (h *Handler) getDraft(c *gin.Context) {
	d, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d.View()})
}

type setNameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) setName(c *gin.Context) {
	d, ok := h.session(c)
	if !ok {
		return
	}

	var req setNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := d.SetName(req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d.View()})
}

type addComponentRequest struct {
	ProductCode string `json:"product_code"`
	Quantity    string `json:"quantity"`
}

func (h *Handler) addComponent(c *gin.Context) {
	d, ok := h.session(c)
	if !ok {
		return
	}

	var req addComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	noti, err := d.AddComponent(c.Request.Context(), req.ProductCode, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"notification": noti,
		"draft":        d.View(),
	})
}

func (h *Handler) beginEditQuantity(c *gin.Context) {
	d, ok := h.session(c)
	if !ok {
		return
	}
	index, ok := componentIndex(c)
	if !ok {
		return
	}

	if err := d.BeginEditQuantity(index); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d.View()})
}

type editQuantityRequest struct {
	Quantity string `json:"quantity"`
}

func (h *Handler) commitEditQuantity(c *gin.Context) {
	d, ok := h.session(c)
	if !ok {
		return
	}
	index, ok := componentIndex(c)
	if !ok {
		return
	}

	var req editQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	noti, rejection, err := d.CommitEditQuantity(c.Request.Context(), index, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	if rejection != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"notification":     rejection.Rule.Notification(),
			"restore_quantity": rejection.RestoreQuantity,
			"draft":            d.View(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notification": noti,
		"draft":        d.View(),
	})
}

func (h *Handler) removeComponent(c *gin.Context) {
	d, ok := h.session(c)
	if !ok {
		return
	}
	index, ok := componentIndex(c)
	if !ok {
		return
	}

	confirm, err := d.RemoveComponent(c.Request.Context(), index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"confirm": confirm})
}

type saveMixRequest struct {
	Name string `json:"name"`
}

func (h *Handler) saveMix(c *gin.Context) {
	d, ok := h.session(c)
	if !ok {
		return
	}

	var req saveMixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := d.Save(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"result": result,
		"draft":  d.View(),
	})
}

func (h *Handler) convertToOrder(c *gin.Context) {
	d, ok := h.session(c)
	if !ok {
		return
	}

	if _, err := d.ConvertToOrder(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d.View()})
}

func (h *Handler) clearDraft(c *gin.Context) {
	d, ok := h.session(c)
	if !ok {
		return
	}

	confirm, err := d.Clear(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"confirm": confirm})
}

type loadMixRequest struct {
	MixID int64 `json:"mix_id" binding:"required"`
}

func (h *Handler) loadSavedMix(c *gin.Context) {
	d, ok := h.session(c)
	if !ok {
		return
	}

	var req loadMixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if _, err := d.LoadSavedMix(c.Request.Context(), req.MixID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d.View()})
}

type resolveIntentRequest struct {
	IntentID  string `json:"intent_id" binding:"required"`
	Confirmed *bool  `json:"confirmed" binding:"required"`
}

func (h *Handler) resolveIntent(c *gin.Context) {
	d, ok := h.session(c)
	if !ok {
		return
	}

	var req resolveIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	noti, err := d.Resolve(c.Request.Context(), req.IntentID, *req.Confirmed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notification": noti,
		"draft":        d.View(),
	})
}

// session resolves the designer for the :id path param, writing the 404
// itself when absent.
func (h *Handler) session(c *gin.Context) (*designer.Designer, bool) {
	id := c.Param("id")
	d, ok := h.registry.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return d, true
}

func componentIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid component index"})
		return 0, false
	}
	return index, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}

// respondError maps engine errors to HTTP responses. Rule failures and
// system errors carry the dialog the client should render.
func respondError(c *gin.Context, err error) {
	if re, ok := mix.AsRuleError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        re.Error(),
			"rule":         re.Code,
			"notification": re.Notification(),
		})
		return
	}

	var se *designer.SystemError
	if errors.As(err, &se) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        se.Error(),
			"notification": se.Notification(),
		})
		return
	}

	switch {
	case errors.Is(err, designer.ErrConfirmationPending),
		errors.Is(err, designer.ErrNoPendingIntent):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, designer.ErrIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, designer.ErrMixNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
