package services_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmaster/planner/internal/adapters/repository"
	"github.com/taskmaster/planner/internal/application/services"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/infrastructure/metrics"
)

// memoryRepository keeps the document in memory and counts writes
type memoryRepository struct {
	mu      sync.Mutex
	doc     *entities.PlannerDocument
	saves   int
	saveErr error
}

func (r *memoryRepository) Load(context.Context) (*entities.PlannerDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.doc == nil {
		return entities.NewDefaultDocument(), nil
	}
	return r.doc.Clone(), nil
}

func (r *memoryRepository) Save(_ context.Context, doc *entities.PlannerDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.doc = doc.Clone()
	return nil
}

func (r *memoryRepository) HealthCheck(context.Context) error { return nil }

func (r *memoryRepository) Location() string { return "memory" }

func (r *memoryRepository) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// recordingRecorder captures mutation outcomes
type recordingRecorder struct {
	mu        sync.Mutex
	mutations []string
	persists  int
}

func (r *recordingRecorder) RecordMutation(operation string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.mutations = append(r.mutations, operation+":"+outcome)
}

func (r *recordingRecorder) RecordPersist(time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persists++
}

func newStore(t *testing.T, repo *memoryRepository) *services.PlannerService {
	t.Helper()

	store, err := services.NewPlannerService(context.Background(), repo, metrics.Noop{}, logger.NewNop())
	require.NoError(t, err)
	return store
}

func strPtr(s string) *string { return &s }

func Test_NewPlannerService_Starts_From_Default_When_Nothing_Persisted(t *testing.T) {
	t.Parallel()

	store := newStore(t, &memoryRepository{})

	if diff := cmp.Diff(entities.NewDefaultDocument(), store.GetData()); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func Test_NewPlannerService_Returns_Error_When_Load_Fails(t *testing.T) {
	t.Parallel()

	repo := repository.NewDocumentRepository(filepath.Join(t.TempDir(), "data.json"))
	_, err := services.NewPlannerService(canceledContext(), repo, metrics.Noop{}, logger.NewNop())
	require.ErrorIs(t, err, context.Canceled)
}

func Test_SetGoalText_Stores_Text_And_Persists(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{}
	store := newStore(t, repo)

	got, err := store.SetGoalText(context.Background(), 0, strPtr("Learn Rust"))
	require.NoError(t, err)

	assert.Equal(t, "Learn Rust", got)
	assert.Equal(t, "Learn Rust", store.GetData().SixMonthGoals[0])
	assert.Equal(t, 1, repo.saveCount())
	assert.Equal(t, "Learn Rust", repo.doc.SixMonthGoals[0])
}

func Test_SetGoalText_Stores_Empty_String_When_Text_Is_Nil(t *testing.T) {
	t.Parallel()

	store := newStore(t, &memoryRepository{})

	_, err := store.SetGoalText(context.Background(), 3, strPtr("something"))
	require.NoError(t, err)

	got, err := store.SetGoalText(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
	assert.Equal(t, "", store.GetData().SixMonthGoals[3])
}

func Test_SetGoalCheck_Toggle_Is_Its_Own_Inverse(t *testing.T) {
	t.Parallel()

	store := newStore(t, &memoryRepository{})
	original := store.GetData().SixMonthChecks["2"]

	first, err := store.SetGoalCheck(context.Background(), 2, entities.Toggle())
	require.NoError(t, err)
	assert.Equal(t, !original, first)

	second, err := store.SetGoalCheck(context.Background(), 2, entities.Toggle())
	require.NoError(t, err)
	assert.Equal(t, original, second)
	assert.Equal(t, original, store.GetData().SixMonthChecks["2"])
}

func Test_SetGoalCheck_Set_Is_Idempotent(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{}
	store := newStore(t, repo)

	for i := 0; i < 2; i++ {
		got, err := store.SetGoalCheck(context.Background(), 4, entities.SetTo(true))
		require.NoError(t, err)
		assert.True(t, got)
	}

	assert.True(t, store.GetData().SixMonthChecks["4"])
	assert.Equal(t, 2, repo.saveCount())
}

func Test_SetMonthlyCheck_Sets_Only_The_Addressed_Item(t *testing.T) {
	t.Parallel()

	store := newStore(t, &memoryRepository{})

	got, err := store.SetMonthlyCheck(context.Background(), entities.MonthFeb, 3, entities.SetTo(false))
	require.NoError(t, err)
	assert.False(t, got)

	want := entities.NewDefaultDocument()
	want.MonthlyChecks[entities.MonthFeb]["3"] = false

	if diff := cmp.Diff(want, store.GetData()); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func Test_SetMonthlyCheck_Toggles_Absent_Item_To_True(t *testing.T) {
	t.Parallel()

	store := newStore(t, &memoryRepository{})

	got, err := store.SetMonthlyCheck(context.Background(), entities.MonthJul, 5, entities.Toggle())
	require.NoError(t, err)
	assert.True(t, got)
	assert.True(t, store.GetData().MonthlyChecks[entities.MonthJul]["5"])
}

func Test_SetDailyCheck_Toggles_And_Sets(t *testing.T) {
	t.Parallel()

	store := newStore(t, &memoryRepository{})

	got, err := store.SetDailyCheck(context.Background(), entities.MonthApr, 31, entities.Toggle())
	require.NoError(t, err)
	assert.True(t, got)

	got, err = store.SetDailyCheck(context.Background(), entities.MonthApr, 31, entities.SetTo(true))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = store.SetDailyCheck(context.Background(), entities.MonthApr, 1, entities.SetTo(false))
	require.NoError(t, err)
	assert.False(t, got)

	assert.Equal(t, entities.CheckMap{"31": true, "1": false}, store.GetData().DateChecks[entities.MonthApr])
}

func Test_Mutations_Reject_Invalid_Input_Without_Mutating_Or_Persisting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	testCases := []struct {
		name    string
		call    func(store *services.PlannerService) error
		message string
	}{
		{
			name: "DailyUnknownMonth",
			call: func(store *services.PlannerService) error {
				_, err := store.SetDailyCheck(ctx, "xyz", 10, entities.SetTo(true))
				return err
			},
			message: entities.MsgMonthID,
		},
		{
			name: "DailyDayZero",
			call: func(store *services.PlannerService) error {
				_, err := store.SetDailyCheck(ctx, entities.MonthFeb, 0, entities.Toggle())
				return err
			},
			message: entities.MsgDay,
		},
		{
			name: "DailyDay32",
			call: func(store *services.PlannerService) error {
				_, err := store.SetDailyCheck(ctx, entities.MonthFeb, 32, entities.Toggle())
				return err
			},
			message: entities.MsgDay,
		},
		{
			name: "MonthlyUnknownMonth",
			call: func(store *services.PlannerService) error {
				_, err := store.SetMonthlyCheck(ctx, "aug", 1, entities.Toggle())
				return err
			},
			message: entities.MsgMonthID,
		},
		{
			name: "MonthlyItemSix",
			call: func(store *services.PlannerService) error {
				_, err := store.SetMonthlyCheck(ctx, entities.MonthMar, 6, entities.Toggle())
				return err
			},
			message: entities.MsgItemIndex,
		},
		{
			name: "GoalCheckNegative",
			call: func(store *services.PlannerService) error {
				_, err := store.SetGoalCheck(ctx, -1, entities.Toggle())
				return err
			},
			message: entities.MsgGoalIndex,
		},
		{
			name: "GoalTextFive",
			call: func(store *services.PlannerService) error {
				_, err := store.SetGoalText(ctx, 5, strPtr("x"))
				return err
			},
			message: entities.MsgGoalIndex,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			repo := &memoryRepository{}
			store := newStore(t, repo)
			before := store.GetData()

			err := testCase.call(store)
			require.Error(t, err)
			assert.True(t, entities.IsValidation(err))
			assert.EqualError(t, err, testCase.message)

			assert.Equal(t, 0, repo.saveCount())
			if diff := cmp.Diff(before, store.GetData()); diff != "" {
				t.Fatalf("document changed (-before +after):\n%s", diff)
			}
		})
	}
}

func Test_Mutation_Returns_PersistenceError_And_Keeps_Memory_State(t *testing.T) {
	t.Parallel()

	cause := &entities.PersistenceError{Op: "write", Path: "memory", Err: errors.New("disk full")}
	repo := &memoryRepository{saveErr: cause}
	store := newStore(t, repo)

	_, err := store.SetGoalCheck(context.Background(), 1, entities.SetTo(true))
	require.Error(t, err)

	var pe *entities.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.False(t, entities.IsValidation(err))

	// The in-memory document is the only record of the change.
	assert.True(t, store.GetData().SixMonthChecks["1"])
}

func Test_Mutation_Is_Not_Applied_When_Context_Already_Canceled(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{}
	store := newStore(t, repo)

	_, err := store.SetGoalText(canceledContext(), 0, strPtr("never"))
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, "", store.GetData().SixMonthGoals[0])
	assert.Equal(t, 0, repo.saveCount())
}

func Test_GetData_Returns_Isolated_Copy(t *testing.T) {
	t.Parallel()

	store := newStore(t, &memoryRepository{})

	data := store.GetData()
	data.SixMonthGoals[0] = "mutated"
	data.SixMonthChecks["0"] = true
	data.MonthlyChecks[entities.MonthFeb]["0"] = true

	fresh := store.GetData()
	assert.Equal(t, "", fresh.SixMonthGoals[0])
	assert.False(t, fresh.SixMonthChecks["0"])
	assert.NotContains(t, fresh.MonthlyChecks[entities.MonthFeb], "0")
}

func Test_Mutations_Are_Recorded(t *testing.T) {
	t.Parallel()

	recorder := &recordingRecorder{}
	store, err := services.NewPlannerService(context.Background(), &memoryRepository{}, recorder, logger.NewNop())
	require.NoError(t, err)

	_, err = store.SetGoalText(context.Background(), 0, strPtr("a"))
	require.NoError(t, err)
	_, err = store.SetDailyCheck(context.Background(), "xyz", 1, entities.Toggle())
	require.Error(t, err)

	assert.Equal(t, []string{
		services.OpSetGoalText + ":ok",
		services.OpSetDailyCheck + ":error",
	}, recorder.mutations)
	assert.Equal(t, 1, recorder.persists)
}

func Test_Concurrent_Toggles_Are_Serialized(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{}
	store := newStore(t, repo)

	const toggles = 50

	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.SetDailyCheck(context.Background(), entities.MonthMay, 10, entities.Toggle())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// An even number of toggles lands back on unchecked.
	assert.False(t, store.GetData().DateChecks[entities.MonthMay]["10"])
	assert.Equal(t, toggles, repo.saveCount())
}

func Test_Scenario_Goal_Text_Reaches_Disk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.json")
	repo := repository.NewDocumentRepository(path)

	store, err := services.NewPlannerService(context.Background(), repo, metrics.Noop{}, logger.NewNop())
	require.NoError(t, err)

	_, err = store.SetGoalText(context.Background(), 0, strPtr("Learn Rust"))
	require.NoError(t, err)
	_, err = store.SetMonthlyCheck(context.Background(), entities.MonthJun, 2, entities.Toggle())
	require.NoError(t, err)

	assert.Equal(t, "Learn Rust", store.GetData().SixMonthGoals[0])

	onDisk, err := repository.NewDocumentRepository(path).Load(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(store.GetData(), onDisk); diff != "" {
		t.Fatalf("persisted document differs from memory (-memory +disk):\n%s", diff)
	}
}

func Test_Persist_Rewrites_Document(t *testing.T) {
	t.Parallel()

	repo := &memoryRepository{}
	store := newStore(t, repo)

	require.NoError(t, store.Persist(context.Background()))
	assert.Equal(t, 1, repo.saveCount())
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
