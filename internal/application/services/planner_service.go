package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// Operation names reported to the mutation recorder
const (
	OpSetGoalText     = "set_goal_text"
	OpSetGoalCheck    = "set_goal_check"
	OpSetMonthlyCheck = "set_monthly_check"
	OpSetDailyCheck   = "set_daily_check"
)

// PlannerService owns the in-memory planner document. Every mutation is
// applied and written back to the repository before the call returns.
type PlannerService struct {
	repo     ports.DocumentRepository
	recorder ports.MutationRecorder
	logger   *logger.Logger

	mu  sync.Mutex
	doc *entities.PlannerDocument
}

// NewPlannerService loads the persisted document and returns a store ready
// to serve it. A missing file yields the default document.
func NewPlannerService(ctx context.Context, repo ports.DocumentRepository, recorder ports.MutationRecorder, logger *logger.Logger) (*PlannerService, error) {
	doc, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load planner document: %w", err)
	}
	doc.EnsureShape()

	logger.Info("Planner document loaded", "location", repo.Location())

	return &PlannerService{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
		doc:      doc,
	}, nil
}

// GetData returns a deep copy of the current document
func (s *PlannerService) GetData() *entities.PlannerDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.Clone()
}

// SetGoalText replaces the text of one six-month goal. A nil text stores
// the empty string.
func (s *PlannerService) SetGoalText(ctx context.Context, index int, text *string) (string, error) {
	if err := entities.ValidateGoalIndex(index); err != nil {
		s.record(OpSetGoalText, err, "index", index)
		return "", err
	}

	value := ""
	if text != nil {
		value = *text
	}

	err := s.mutate(ctx, func(doc *entities.PlannerDocument) {
		doc.SixMonthGoals[index] = value
	})
	s.record(OpSetGoalText, err, "index", index)
	if err != nil {
		return "", err
	}

	return value, nil
}

// SetGoalCheck toggles or sets the checkbox of one six-month goal
func (s *PlannerService) SetGoalCheck(ctx context.Context, index int, update entities.CheckUpdate) (bool, error) {
	if err := entities.ValidateGoalIndex(index); err != nil {
		s.record(OpSetGoalCheck, err, "index", index)
		return false, err
	}

	var result bool
	err := s.mutate(ctx, func(doc *entities.PlannerDocument) {
		result = applyCheck(doc.SixMonthChecks, strconv.Itoa(index), update)
	})
	s.record(OpSetGoalCheck, err, "index", index, "update", update.String())
	if err != nil {
		return false, err
	}

	return result, nil
}

// SetMonthlyCheck toggles or sets one monthly checklist item
func (s *PlannerService) SetMonthlyCheck(ctx context.Context, monthID entities.MonthID, itemIndex int, update entities.CheckUpdate) (bool, error) {
	if err := entities.ValidateMonthID(monthID); err != nil {
		s.record(OpSetMonthlyCheck, err, "month_id", monthID)
		return false, err
	}
	if err := entities.ValidateItemIndex(itemIndex); err != nil {
		s.record(OpSetMonthlyCheck, err, "month_id", monthID, "item_index", itemIndex)
		return false, err
	}

	var result bool
	err := s.mutate(ctx, func(doc *entities.PlannerDocument) {
		result = applyCheck(doc.MonthlyChecks[monthID], strconv.Itoa(itemIndex), update)
	})
	s.record(OpSetMonthlyCheck, err, "month_id", monthID, "item_index", itemIndex, "update", update.String())
	if err != nil {
		return false, err
	}

	return result, nil
}

// SetDailyCheck toggles or sets the checkbox of one day of a month
func (s *PlannerService) SetDailyCheck(ctx context.Context, monthID entities.MonthID, day int, update entities.CheckUpdate) (bool, error) {
	if err := entities.ValidateMonthID(monthID); err != nil {
		s.record(OpSetDailyCheck, err, "month_id", monthID)
		return false, err
	}
	if err := entities.ValidateDay(day); err != nil {
		s.record(OpSetDailyCheck, err, "month_id", monthID, "day", day)
		return false, err
	}

	var result bool
	err := s.mutate(ctx, func(doc *entities.PlannerDocument) {
		result = applyCheck(doc.DateChecks[monthID], strconv.Itoa(day), update)
	})
	s.record(OpSetDailyCheck, err, "month_id", monthID, "day", day, "update", update.String())
	if err != nil {
		return false, err
	}

	return result, nil
}

// Persist writes the current document without changing it. Used to rewrite
// a hand-edited file in normalized form.
func (s *PlannerService) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persistLocked(ctx)
}

// mutate applies fn and writes the document under the lock. Once fn has
// run, the write is no longer subject to ctx cancellation so memory and
// disk do not drift apart because a client went away.
func (s *PlannerService) mutate(ctx context.Context, fn func(doc *entities.PlannerDocument)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.doc)

	return s.persistLocked(context.WithoutCancel(ctx))
}

func (s *PlannerService) persistLocked(ctx context.Context) error {
	start := time.Now()
	err := s.repo.Save(ctx, s.doc)
	s.recorder.RecordPersist(time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to persist planner document: %w", err)
	}

	return nil
}

func (s *PlannerService) record(operation string, err error, kv ...interface{}) {
	s.recorder.RecordMutation(operation, err)

	fields := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}

	if err != nil && entities.IsValidation(err) {
		s.logger.Debugw("Planner mutation rejected", "operation", operation, "reason", err.Error())
		return
	}
	s.logger.LogMutation(operation, fields, err)
}

func applyCheck(checks entities.CheckMap, key string, update entities.CheckUpdate) bool {
	value := update.Apply(checks[key])
	checks[key] = value
	return value
}
