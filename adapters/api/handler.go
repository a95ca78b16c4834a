package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"distfit/app"
	domain "distfit/domain/fit"
	"distfit/internal"
	"distfit/internal/config"
	"distfit/internal/errors"
)

// Handler serves the JSON API on top of the evaluation service
type Handler struct {
	svc    *app.EvaluationService
	logger *internal.Logger
}

// NewHandler creates a new API handler
func NewHandler(svc *app.EvaluationService, logger *internal.Logger) *Handler {
	if logger == nil {
		logger = internal.NopLogger()
	}
	return &Handler{svc: svc, logger: logger.WithPrefix("api")}
}

// NewRouter builds a gin engine with every route registered
func NewRouter(svc *app.EvaluationService, cfg config.ServerConfig, logger *internal.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), limitBody(cfg.MaxBodyBytes))
	NewHandler(svc, logger).RegisterRoutes(router)
	return router
}

// limitBody caps request bodies; a non-positive limit leaves them unbounded
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// RegisterRoutes mounts the API on r
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	v1.POST("/evaluate", h.Evaluate)
	v1.POST("/evaluate/batch", h.EvaluateBatch)
	v1.POST("/generate", h.Generate)
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Evaluate decides the verdict for one sample
func (h *Handler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "invalid request body")))
		return
	}

	eval, err := h.svc.EvaluateSample(c.Request.Context(), req.Sample)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, newEvaluationResponse(eval, true))
}

// EvaluateBatch evaluates several samples; each result carries its own error
func (h *Handler) EvaluateBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "invalid request body")))
		return
	}
	if len(req.Samples) == 0 {
		h.fail(c, errors.InvalidInput("samples must contain at least one sample"))
		return
	}

	samples := make([]domain.Sample, len(req.Samples))
	for i, s := range req.Samples {
		samples[i] = s
	}

	results, err := h.svc.EvaluateBatch(c.Request.Context(), samples)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := batchResponse{Results: make([]batchItem, len(results))}
	for i, r := range results {
		item := batchItem{Index: r.Index}
		if r.Err != nil {
			item.Error = newErrorBody(r.Err)
		} else {
			item.Evaluation = newEvaluationResponse(r.Evaluation, false)
		}
		resp.Results[i] = item
	}
	c.JSON(http.StatusOK, resp)
}

// Generate draws a synthetic sample
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "invalid request body")))
		return
	}

	family, err := domain.ParseFamily(req.Distribution)
	if err != nil {
		h.fail(c, err)
		return
	}

	sample, err := h.svc.GenerateSample(c.Request.Context(), family, req.Count, req.Seed)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, generateResponse{
		Distribution: family,
		Count:        len(sample),
		Seed:         req.Seed,
		Sample:       sample,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		h.logger.Debug("%s %s rejected: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: *newErrorBody(err)})
}
