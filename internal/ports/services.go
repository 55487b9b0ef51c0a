package ports

import (
	"context"
	"time"

	"github.com/taskmaster/planner/internal/domain/entities"
)

// PlannerService interface for planner document operations
type PlannerService interface {
	GetData() *entities.PlannerDocument
	SetGoalText(ctx context.Context, index int, text *string) (string, error)
	SetGoalCheck(ctx context.Context, index int, update entities.CheckUpdate) (bool, error)
	SetMonthlyCheck(ctx context.Context, monthID entities.MonthID, itemIndex int, update entities.CheckUpdate) (bool, error)
	SetDailyCheck(ctx context.Context, monthID entities.MonthID, day int, update entities.CheckUpdate) (bool, error)
}

// MutationRecorder receives store activity for metrics
type MutationRecorder interface {
	RecordMutation(operation string, err error)
	RecordPersist(duration time.Duration, err error)
}

// Request types
//
// Path parameters are bound as raw strings and checked by the registered
// goal_index, item_index, day_of_month and month_id validation rules.

// GoalTextRequest is the body of PATCH /api/goals/:index
type GoalTextRequest struct {
	Index string  `param:"index" json:"-" validate:"goal_index"`
	Text  *string `json:"text"`
}

// GoalCheckRequest is the body of PATCH /api/goals/:index/check
type GoalCheckRequest struct {
	Index   string `param:"index" json:"-" validate:"goal_index"`
	Checked *bool  `json:"checked"`
}

// MonthlyCheckRequest is the body of PATCH /api/monthly/:monthId/:itemIndex
type MonthlyCheckRequest struct {
	MonthID   string `param:"monthId" json:"-" validate:"month_id"`
	ItemIndex string `param:"itemIndex" json:"-" validate:"item_index"`
	Checked   *bool  `json:"checked"`
}

// DailyCheckRequest is the body of PATCH /api/daily/:monthId/:day
type DailyCheckRequest struct {
	MonthID string `param:"monthId" json:"-" validate:"month_id"`
	Day     string `param:"day" json:"-" validate:"day_of_month"`
	Checked *bool  `json:"checked"`
}
