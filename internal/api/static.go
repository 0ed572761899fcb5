package api

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wb-service/portal/backend/internal/middleware"
	"github.com/wb-service/portal/backend/internal/service"
	"github.com/wb-service/portal/backend/internal/types"
)

type StaticHandler struct {
	responder
	staticService service.IStaticService
	limiter       *middleware.RateLimiter
}

func NewStaticHandler(staticService service.IStaticService, limiter *middleware.RateLimiter, res responder) *StaticHandler {
	return &StaticHandler{
		responder:     res,
		staticService: staticService,
		limiter:       limiter,
	}
}

func (h *StaticHandler) RegisterRoutes(router *gin.RouterGroup) {
	static := router.Group("/static")
	{
		if h.limiter != nil {
			static.POST("/add", h.limiter.RateLimitMiddleware(), h.Upload)
		} else {
			static.POST("/add", h.Upload)
		}
		static.GET("/get", h.Get)
		static.DELETE("/delete", h.Delete)
	}
}

// Upload stores a multipart file and returns its id
func (h *StaticHandler) Upload(c *gin.Context) {
	eid, ok := h.caller(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.respondError(c, service.WrongParameters("file"))
		return
	}

	fileType := c.PostForm("type")
	if fileType == "" {
		fileType = c.Query("type")
	}
	name := c.PostForm("name")
	if name == "" {
		name = c.Query("name")
	}

	file, err := header.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	id, err := h.staticService.Upload(c.Request.Context(), service.Upload{
		CreatedBy:   eid,
		Type:        fileType,
		Name:        name,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.UploadResponse{ID: id})
}

// Get streams a stored file
func (h *StaticHandler) Get(c *gin.Context) {
	if _, ok := h.caller(c); !ok {
		return
	}

	id, err := int64Query(c, "id", 0)
	if err != nil || c.Query("id") == "" {
		h.respondError(c, service.WrongParameters("id"))
		return
	}

	stored, err := h.staticService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer stored.Content.Close()

	headers := map[string]string{}
	if stored.DownloadName != "" {
		headers["Content-Disposition"] = mime.FormatMediaType("attachment", map[string]string{"filename": stored.DownloadName})
	}
	c.DataFromReader(http.StatusOK, -1, stored.MimeType, stored.Content, headers)
}

// Delete removes a file uploaded by the caller
func (h *StaticHandler) Delete(c *gin.Context) {
	eid, ok := h.caller(c)
	if !ok {
		return
	}

	id, err := int64Query(c, "id", 0)
	if err != nil || c.Query("id") == "" {
		h.respondError(c, service.WrongParameters("id"))
		return
	}

	allowed, err := h.staticService.CanDelete(c.Request.Context(), id, eid)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !allowed {
		h.respondError(c, service.NotAllowed(""))
		return
	}

	if err := h.staticService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
