package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KhobaitUddinSimran/Student-Management-System/internal/dto"
	"github.com/KhobaitUddinSimran/Student-Management-System/internal/service"
	appErrors "github.com/KhobaitUddinSimran/Student-Management-System/pkg/errors"
	"github.com/KhobaitUddinSimran/Student-Management-System/pkg/response"
)

// ClassHandler exposes class and subject management endpoints.
type ClassHandler struct {
	classes *service.ClassService
}

// NewClassHandler constructs handler.
func NewClassHandler(classes *service.ClassService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// Create godoc
// @Summary Create a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body dto.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	class, err := h.classes.CreateClass(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.classes.ListClasses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}

// Get godoc
// @Summary Fetch one class
// @Tags Classes
// @Produce json
// @Param id path string true "Class id"
// @Success 200 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.classes.GetClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class, nil)
}

// Enroll godoc
// @Summary Enroll a student into a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class id"
// @Param payload body dto.EnrollStudentRequest true "Enrollment payload"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/students [post]
func (h *ClassHandler) Enroll(c *gin.Context) {
	var req dto.EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.classes.EnrollStudent(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "enrolled"}, nil)
}

// RemoveStudent godoc
// @Summary Remove a student from a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class id"
// @Param studentId path string true "Student id"
// @Success 204
// @Router /classes/{id}/students/{studentId} [delete]
func (h *ClassHandler) RemoveStudent(c *gin.Context) {
	if err := h.classes.RemoveStudent(c.Request.Context(), c.Param("id"), c.Param("studentId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Roster godoc
// @Summary List students enrolled in a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class id"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/students [get]
func (h *ClassHandler) Roster(c *gin.Context) {
	roster, err := h.classes.ClassRoster(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /subjects [post]
func (h *ClassHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subject, err := h.classes.CreateSubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *ClassHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.classes.ListSubjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// AssignSubject godoc
// @Summary Assign a subject and teacher to a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class id"
// @Param payload body dto.AssignSubjectRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /classes/{id}/subjects [post]
func (h *ClassHandler) AssignSubject(c *gin.Context) {
	var req dto.AssignSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.classes.AssignSubject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// ClassSubjects godoc
// @Summary List subjects assigned to a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class id"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/subjects [get]
func (h *ClassHandler) ClassSubjects(c *gin.Context) {
	subjects, err := h.classes.ClassSubjects(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}
