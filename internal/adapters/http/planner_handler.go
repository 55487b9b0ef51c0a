package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// PlannerHandler handles planner document requests
type PlannerHandler struct {
	plannerService ports.PlannerService
}

// NewPlannerHandler creates a new planner handler
func NewPlannerHandler(plannerService ports.PlannerService) *PlannerHandler {
	return &PlannerHandler{
		plannerService: plannerService,
	}
}

// GetData godoc
// @Summary Get the planner document
// @Tags planner
// @Produce json
// @Success 200 {object} entities.PlannerDocument
// @Router /data [get]
func (h *PlannerHandler) GetData(c echo.Context) error {
	return c.JSON(http.StatusOK, h.plannerService.GetData())
}

// UpdateGoalText godoc
// @Summary Set the text of a six-month goal
// @Tags planner
// @Accept json
// @Produce json
// @Param index path int true "Goal index (0-4)"
// @Param request body ports.GoalTextRequest false "New text; omitted text clears the goal"
// @Success 200 {object} entities.PlannerDocument
// @Failure 400 {object} ErrorResponse
// @Router /goals/{index} [patch]
func (h *PlannerHandler) UpdateGoalText(c echo.Context) error {
	var req ports.GoalTextRequest
	if err := bindPath(c, &req); err != nil {
		return err
	}
	if err := bindBody(c, &req, "text", entities.MsgTextBody); err != nil {
		return err
	}

	if _, err := h.plannerService.SetGoalText(c.Request().Context(), atoi(req.Index), req.Text); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.plannerService.GetData())
}

// UpdateGoalCheck godoc
// @Summary Toggle or set a six-month goal checkbox
// @Tags planner
// @Accept json
// @Produce json
// @Param index path int true "Goal index (0-4)"
// @Param request body ports.GoalCheckRequest false "Omit checked to toggle"
// @Success 200 {object} entities.PlannerDocument
// @Failure 400 {object} ErrorResponse
// @Router /goals/{index}/check [patch]
func (h *PlannerHandler) UpdateGoalCheck(c echo.Context) error {
	var req ports.GoalCheckRequest
	if err := bindPath(c, &req); err != nil {
		return err
	}
	if err := bindBody(c, &req, "checked", entities.MsgCheckedBody); err != nil {
		return err
	}

	update := entities.CheckUpdateFrom(req.Checked)
	if _, err := h.plannerService.SetGoalCheck(c.Request().Context(), atoi(req.Index), update); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.plannerService.GetData())
}

// UpdateMonthlyCheck godoc
// @Summary Toggle or set a monthly checklist item
// @Tags planner
// @Accept json
// @Produce json
// @Param monthId path string true "Month id" Enums(feb, mar, apr, may, jun, jul)
// @Param itemIndex path int true "Item index (0-5)"
// @Param request body ports.MonthlyCheckRequest false "Omit checked to toggle"
// @Success 200 {object} entities.PlannerDocument
// @Failure 400 {object} ErrorResponse
// @Router /monthly/{monthId}/{itemIndex} [patch]
func (h *PlannerHandler) UpdateMonthlyCheck(c echo.Context) error {
	var req ports.MonthlyCheckRequest
	if err := bindPath(c, &req); err != nil {
		return err
	}
	if err := bindBody(c, &req, "checked", entities.MsgCheckedBody); err != nil {
		return err
	}

	update := entities.CheckUpdateFrom(req.Checked)
	monthID := entities.MonthID(req.MonthID)
	if _, err := h.plannerService.SetMonthlyCheck(c.Request().Context(), monthID, atoi(req.ItemIndex), update); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.plannerService.GetData())
}

// UpdateDailyCheck godoc
// @Summary Toggle or set a day checkbox
// @Tags planner
// @Accept json
// @Produce json
// @Param monthId path string true "Month id" Enums(feb, mar, apr, may, jun, jul)
// @Param day path int true "Day of month (1-31)"
// @Param request body ports.DailyCheckRequest false "Omit checked to toggle"
// @Success 200 {object} entities.PlannerDocument
// @Failure 400 {object} ErrorResponse
// @Router /daily/{monthId}/{day} [patch]
func (h *PlannerHandler) UpdateDailyCheck(c echo.Context) error {
	var req ports.DailyCheckRequest
	if err := bindPath(c, &req); err != nil {
		return err
	}
	if err := bindBody(c, &req, "checked", entities.MsgCheckedBody); err != nil {
		return err
	}

	update := entities.CheckUpdateFrom(req.Checked)
	monthID := entities.MonthID(req.MonthID)
	if _, err := h.plannerService.SetDailyCheck(c.Request().Context(), monthID, atoi(req.Day), update); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, h.plannerService.GetData())
}

// bindPath binds the path parameters and validates them before the body
// is read, so a bad parameter is reported ahead of a bad body.
func bindPath(c echo.Context, req interface{}) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, req); err != nil {
		return err
	}
	return c.Validate(req)
}

// bindBody decodes only the request body. An empty body, or one that is
// not JSON, leaves the request untouched.
func bindBody(c echo.Context, req interface{}, field, message string) error {
	binder := &echo.DefaultBinder{}
	err := binder.BindBody(c, req)
	if err == nil || errors.Is(err, echo.ErrUnsupportedMediaType) {
		return nil
	}
	return &entities.ValidationError{Field: field, Message: message, Err: err}
}

// atoi converts a path parameter that already passed validation. Anything
// else maps to -1, which the store rejects.
func atoi(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}

// Response types

type ErrorResponse struct {
	Error string `json:"error"`
}
