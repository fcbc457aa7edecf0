package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/leavedesk/leave-api/internal/api/metrics"
	"github.com/leavedesk/leave-api/internal/core/domain"
	"github.com/leavedesk/leave-api/internal/core/ports"
)

// LeaveHandler serves the leave routes. Every route sits behind the access
// guard; the HR-only ones are additionally wrapped by the role guard.
type LeaveHandler struct {
	leaveService ports.LeaveService
}

func NewLeaveHandler(leaveService ports.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// Apply handles POST /leaves.
//
// @Summary      Apply for leave
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyLeaveRequest  true  "Leave request"
// @Success      201   {object}  applyLeaveResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /leaves [post]
func (h *LeaveHandler) Apply(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req applyLeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	leave, err := h.leaveService.Apply(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}

	metrics.LeavesAppliedTotal.WithLabelValues(string(leave.LeaveType)).Inc()
	return c.JSON(http.StatusCreated, applyLeaveResponse{Message: "Leave applied successfully", Leave: toLeaveResponse(leave)})
}

// Mine handles GET /leaves/my.
//
// @Summary      List my leaves
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   leaveResponse
// @Failure      401  {object}  messageResponse
// @Router       /leaves/my [get]
func (h *LeaveHandler) Mine(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}

	leaves, err := h.leaveService.ListMine(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLeaveResponses(leaves))
}

// All handles GET /leaves (HR only).
//
// @Summary      List all leaves
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   leaveResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /leaves [get]
func (h *LeaveHandler) All(c echo.Context) error {
	leaves, err := h.leaveService.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLeaveResponses(leaves))
}

// UpdateStatus handles PUT /leaves/:id (HR only).
//
// @Summary      Approve or reject a leave
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Leave ID"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      422   {object}  messageResponse
// @Router       /leaves/{id} [put]
func (h *LeaveHandler) UpdateStatus(c echo.Context) error {
	leaveID, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.leaveService.UpdateStatus(c.Request().Context(), leaveID, req.Status); err != nil {
		return err
	}

	metrics.LeaveStatusChangesTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Leave status updated"})
}

// Delete handles DELETE /leaves/:id.
//
// @Summary      Delete a leave
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Leave ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /leaves/{id} [delete]
func (h *LeaveHandler) Delete(c echo.Context) error {
	id, err := requireIdentity(c)
	if err != nil {
		return err
	}
	leaveID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.leaveService.Delete(c.Request().Context(), id, leaveID); err != nil {
		if errors.Is(err, domain.ErrLeaveNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "leave not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Leave deleted"})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid leave id")
	}
	return id, nil
}
