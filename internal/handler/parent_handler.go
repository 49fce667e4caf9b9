package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/service"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/response"
)

// ParentHandler exposes the parent portal. The parent identity always comes
// from the token, never from the request.
type ParentHandler struct {
	parents *service.ParentService
}

// NewParentHandler constructs handler.
func NewParentHandler(parents *service.ParentService) *ParentHandler {
	return &ParentHandler{parents: parents}
}

// Children godoc
// @Summary List students linked to the authenticated parent
// @Tags Parents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /parent/children [get]
func (h *ParentHandler) Children(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	children, err := h.parents.Children(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, children, nil)
}

// ChildGrades godoc
// @Summary Grades for a linked child
// @Tags Parents
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Router /parent/children/{id}/grades [get]
func (h *ParentHandler) ChildGrades(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	grades, err := h.parents.ChildGrades(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades, nil)
}

// ChildAttendance godoc
// @Summary Attendance history for a linked child
// @Tags Parents
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Router /parent/children/{id}/attendance [get]
func (h *ParentHandler) ChildAttendance(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	records, err := h.parents.ChildAttendance(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// ChildOverview godoc
// @Summary Combined GPA, attendance, and recent grades for a linked child
// @Tags Parents
// @Produce json
// @Param id path string true "Student id"
// @Success 200 {object} response.Envelope
// @Router /parent/children/{id}/overview [get]
func (h *ParentHandler) ChildOverview(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	overview, err := h.parents.ChildOverview(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}
