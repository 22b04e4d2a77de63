package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cantinazo/api/internal/api/handler/v1/request"
	"github.com/cantinazo/api/internal/api/handler/v1/response"
	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/service"
)

type RosterService interface {
	RegisterRepresentative(ctx context.Context, phoneCode, phoneNumber, name string) (domain.Representative, error)
	GetRepresentative(ctx context.Context, id uint64) (domain.Representative, error)
	CreateStudent(ctx context.Context, representativeID uint64, name, grade, section string) (domain.Student, error)
	ListStudents(ctx context.Context, representativeID uint64) ([]domain.Student, error)
	DetachStudent(ctx context.Context, studentID uint) error
}

type RosterHandler struct {
	svc RosterService
}

func NewRosterHandler(svc RosterService) *RosterHandler {
	return &RosterHandler{
		svc: svc,
	}
}

// HandleRegisterRepresentative godoc
// @Summary      Register a representative, or return the existing one for the same phone
// @Tags         roster
// @Produce      json
// @Param        request   body      request.RegisterRepresentativeRequest true "request body"
// @Success      200      {object}   domain.Representative
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /representatives [post]
func (h *RosterHandler) HandleRegisterRepresentative(ctx *gin.Context) {
	req := request.RegisterRepresentativeRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rep, err := h.svc.RegisterRepresentative(ctx.Request.Context(), req.PhoneCode, req.PhoneNumber, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhone) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleRegisterRepresentative -> h.svc.RegisterRepresentative -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, rep)
}

// HandleGetRepresentative godoc
// @Summary      Get a representative with their students
// @Tags         roster
// @Produce      json
// @Param        representativeID   path   integer true "representative ID"
// @Success      200      {object}   domain.Representative
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /representatives/{representativeID} [get]
func (h *RosterHandler) HandleGetRepresentative(ctx *gin.Context) {
	rawID := ctx.Param("representativeID")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("representative ID %v is invalid", rawID)))

		return
	}

	rep, err := h.svc.GetRepresentative(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRepresentativeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("representative", "ID", rawID))

			return
		}

		err = fmt.Errorf("v1.HandleGetRepresentative -> h.svc.GetRepresentative -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, rep)
}

// HandleCreateStudent godoc
// @Summary      Create a student under a representative
// @Tags         roster
// @Produce      json
// @Param        request   body      request.CreateStudentRequest true "request body"
// @Success      201      {object}   domain.Student
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students [post]
func (h *RosterHandler) HandleCreateStudent(ctx *gin.Context) {
	req := request.CreateStudentRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	student, err := h.svc.CreateStudent(ctx.Request.Context(), req.RepresentativeID, req.Name, req.Grade, req.Section)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidGrade), errors.Is(err, service.ErrInvalidSection):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrRepresentativeNotFound):
			response.RenderErr(ctx, response.ErrNotFound("representative", "ID", strconv.FormatUint(req.RepresentativeID, 10)))
		default:
			err = fmt.Errorf("v1.HandleCreateStudent -> h.svc.CreateStudent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// HandleListStudents godoc
// @Summary      List the students of a representative
// @Tags         roster
// @Produce      json
// @Param        representativeID   path   integer true "representative ID"
// @Success      200      {object}   []domain.Student
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /representatives/{representativeID}/students [get]
func (h *RosterHandler) HandleListStudents(ctx *gin.Context) {
	rawID := ctx.Param("representativeID")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("representative ID %v is invalid", rawID)))

		return
	}

	students, err := h.svc.ListStudents(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRepresentativeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("representative", "ID", rawID))

			return
		}

		err = fmt.Errorf("v1.HandleListStudents -> h.svc.ListStudents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, students)
}

// HandleDetachStudent godoc
// @Summary      Detach a student from their representative
// @Tags         roster
// @Produce      json
// @Param        studentID   path   integer true "student ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /students/{studentID} [delete]
func (h *RosterHandler) HandleDetachStudent(ctx *gin.Context) {
	rawID := ctx.Param("studentID")
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("student ID %v is invalid", rawID)))

		return
	}

	if err = h.svc.DetachStudent(ctx.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("student", "ID", rawID))

			return
		}

		err = fmt.Errorf("v1.HandleDetachStudent -> h.svc.DetachStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
