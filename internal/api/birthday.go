package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wb-service/portal/backend/internal/service"
	"github.com/wb-service/portal/backend/internal/types"
)

type BirthdayHandler struct {
	responder
	birthdayService service.IBirthdayService
}

func NewBirthdayHandler(birthdayService service.IBirthdayService, res responder) *BirthdayHandler {
	return &BirthdayHandler{
		responder:       res,
		birthdayService: birthdayService,
	}
}

func (h *BirthdayHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/birthday/upcoming", h.Upcoming)
}

// Upcoming lists birthdays within the day, week or month window
func (h *BirthdayHandler) Upcoming(c *gin.Context) {
	unit, err := service.ParseTimeUnit(c.Query("time_unit"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	birthdays, err := h.birthdayService.Upcoming(c.Request.Context(), unit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if birthdays == nil {
		birthdays = []types.Birthday{}
	}

	c.JSON(http.StatusOK, types.BirthdayListResponse{Birthdays: birthdays})
}
