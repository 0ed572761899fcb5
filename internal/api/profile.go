package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wb-service/portal/backend/internal/service"
	"github.com/wb-service/portal/backend/internal/types"
)

type ProfileHandler struct {
	responder
	profileService service.IProfileService
}

func NewProfileHandler(profileService service.IProfileService, res responder) *ProfileHandler {
	return &ProfileHandler{
		responder:      res,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("/me", h.GetMyProfile)
		profile.PATCH("/me", h.UpdateMyProfile)
		profile.GET("/log", h.GetEditLog)
		profile.GET("/share", h.ShareProfile)
		profile.GET("/phone-access", h.GetPhoneAccess)
	}
	router.GET("/profiles/:eid", h.GetProfile)
}

// GetMyProfile returns the caller's full profile
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	eid, ok := h.caller(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), eid)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile applies a partial update and returns the stored profile
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	eid, ok := h.caller(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, service.WrongParameters("body"))
		return
	}

	if err := h.profileService.UpdateProfile(c.Request.Context(), eid, eid, &req); err != nil {
		h.respondError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), eid)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetEditLog returns the change log of the caller or of the employee in
// the eid query parameter
func (h *ProfileHandler) GetEditLog(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	eid, err := int64Query(c, "eid", caller)
	if err != nil {
		h.respondError(c, err)
		return
	}

	entries, err := h.profileService.GetEditLog(c.Request.Context(), caller, eid)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if entries == nil {
		entries = []types.ChangeLogEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

func (h *ProfileHandler) ShareProfile(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	eid, err := int64Query(c, "eid", caller)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ShareLinkResponse{Link: h.profileService.ShareLink(eid)})
}

// GetPhoneAccess lists the employees whose personal phone the caller may see
func (h *ProfileHandler) GetPhoneAccess(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	eids, err := h.profileService.PhoneAccess(c.Request.Context(), caller)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if eids == nil {
		eids = []int64{}
	}

	c.JSON(http.StatusOK, types.PhoneAccessResponse{EIDs: eids})
}

// GetProfile returns another employee's profile as the caller may see it
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	caller, ok := h.caller(c)
	if !ok {
		return
	}

	eid, err := strconv.ParseInt(c.Param("eid"), 10, 64)
	if err != nil {
		h.respondError(c, service.WrongParameters("eid"))
		return
	}

	profile, err := h.profileService.GetProfileFor(c.Request.Context(), caller, eid)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
