package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dhruvbhalode/capstone/internal/errors"
	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/services"
	"github.com/dhruvbhalode/capstone/internal/testutil/mocks"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

type interactionFixture struct {
	interactionRepo *mocks.MockInteractionRepository
	userRepo        *mocks.MockUserRepository
	problemRepo     *mocks.MockProblemRepository
	queue           *mocks.MockJobQueue
	service         services.InteractionService
}

func newInteractionFixture() *interactionFixture {
	f := &interactionFixture{
		interactionRepo: new(mocks.MockInteractionRepository),
		userRepo:        new(mocks.MockUserRepository),
		problemRepo:     new(mocks.MockProblemRepository),
		queue:           new(mocks.MockJobQueue),
	}
	f.service = services.NewInteractionService(f.interactionRepo, f.userRepo, f.problemRepo, f.queue, 80)
	return f
}

func validInput() services.RecordInteractionInput {
	return services.RecordInteractionInput{
		UserID:    7,
		ProblemID: 3,
		Correct:   boolPtr(true),
		Phase:     models.PhaseCompleted,
		TimeSpent: 240,
	}
}

// expectProgressRefresh wires the aggregate recomputation that follows every
// successful insert.
func (f *interactionFixture) expectProgressRefresh(userID int64, total, correctCount int, solvedIDs []int64, accuracy int) {
	correct := true
	f.interactionRepo.On("Count", mock.Anything, models.InteractionFilter{UserID: userID}).
		Return(total, nil).Once()
	f.interactionRepo.On("Count", mock.Anything, models.InteractionFilter{UserID: userID, Correct: &correct}).
		Return(correctCount, nil).Once()
	f.interactionRepo.On("DistinctProblemIDs", mock.Anything, models.InteractionFilter{
		UserID: userID, Correct: &correct, Phase: models.PhaseCompleted,
	}).Return(solvedIDs, nil).Once()
	f.userRepo.On("UpdateProgress", mock.Anything, userID, len(solvedIDs), accuracy).
		Return(nil).Once()
}

func TestRecordInteraction_Success(t *testing.T) {
	f := newInteractionFixture()
	ctx := context.Background()

	f.userRepo.On("Get", ctx, int64(7)).Return(&models.User{ID: 7}, nil).Once()
	f.problemRepo.On("Get", ctx, int64(3)).Return(&models.Problem{ID: 3, Skills: []string{"arrays"}}, nil).Once()

	stored := &models.Interaction{ID: 42, UserID: 7, ProblemID: 3, Correct: true, Phase: models.PhaseCompleted}
	f.interactionRepo.On("Insert", ctx, mock.AnythingOfType("models.Interaction")).Return(stored, nil).Once()
	f.queue.On("EnqueueForward", *stored).Return(nil).Once()
	f.expectProgressRefresh(7, 4, 3, []int64{3}, 75)

	out, err := f.service.RecordInteraction(ctx, validInput())

	require.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	f.interactionRepo.AssertExpectations(t)
	f.userRepo.AssertExpectations(t)
	f.queue.AssertExpectations(t)
}

func TestRecordInteraction_SkillsSnapshotFromProblem(t *testing.T) {
	f := newInteractionFixture()
	ctx := context.Background()

	f.userRepo.On("Get", ctx, int64(7)).Return(&models.User{ID: 7}, nil).Once()
	f.problemRepo.On("Get", ctx, int64(3)).
		Return(&models.Problem{ID: 3, Skills: []string{"graph", "bfs"}}, nil).Once()

	var inserted models.Interaction
	f.interactionRepo.On("Insert", ctx, mock.AnythingOfType("models.Interaction")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(models.Interaction)
		}).
		Return(&models.Interaction{ID: 1, UserID: 7, ProblemID: 3}, nil).Once()
	f.queue.On("EnqueueForward", mock.Anything).Return(nil).Once()
	f.expectProgressRefresh(7, 1, 1, nil, 100)

	input := validInput()
	input.Skills = nil
	_, err := f.service.RecordInteraction(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, []string{"graph", "bfs"}, inserted.Skills, "empty payload skills default to the problem's tags")
}

func TestRecordInteraction_ValidationRejectsBeforePersisting(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*services.RecordInteractionInput)
	}{
		{"missing user_id", func(in *services.RecordInteractionInput) { in.UserID = 0 }},
		{"missing problem_id", func(in *services.RecordInteractionInput) { in.ProblemID = 0 }},
		{"missing correct", func(in *services.RecordInteractionInput) { in.Correct = nil }},
		{"missing phase", func(in *services.RecordInteractionInput) { in.Phase = "" }},
		{"unknown phase", func(in *services.RecordInteractionInput) { in.Phase = "debugging" }},
		{"mcq score too high", func(in *services.RecordInteractionInput) { in.MCQScore = intPtr(101) }},
		{"mcq score negative", func(in *services.RecordInteractionInput) { in.MCQScore = intPtr(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInteractionFixture()
			input := validInput()
			tt.mutate(&input)

			_, err := f.service.RecordInteraction(context.Background(), input)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
			f.interactionRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
			f.queue.AssertNotCalled(t, "EnqueueForward", mock.Anything)
		})
	}
}

func TestRecordInteraction_ExplicitFalseCorrectIsAccepted(t *testing.T) {
	f := newInteractionFixture()
	ctx := context.Background()

	f.userRepo.On("Get", ctx, int64(7)).Return(&models.User{ID: 7}, nil).Once()
	f.problemRepo.On("Get", ctx, int64(3)).Return(&models.Problem{ID: 3}, nil).Once()

	var inserted models.Interaction
	f.interactionRepo.On("Insert", ctx, mock.AnythingOfType("models.Interaction")).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(models.Interaction)
		}).
		Return(&models.Interaction{ID: 1, UserID: 7, ProblemID: 3}, nil).Once()
	f.queue.On("EnqueueForward", mock.Anything).Return(nil).Once()
	f.expectProgressRefresh(7, 1, 0, nil, 0)

	input := validInput()
	input.Correct = boolPtr(false)
	_, err := f.service.RecordInteraction(ctx, input)

	require.NoError(t, err)
	assert.False(t, inserted.Correct)
}

func TestRecordInteraction_MCQCorrectnessDecidedByThreshold(t *testing.T) {
	tests := []struct {
		name          string
		score         int
		claimed       bool
		storedCorrect bool
	}{
		{"passing score overrides claimed false", 100, false, true},
		{"failing score overrides claimed true", 50, true, false},
		{"threshold boundary passes", 80, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInteractionFixture()
			ctx := context.Background()

			f.userRepo.On("Get", ctx, int64(7)).Return(&models.User{ID: 7}, nil).Once()
			f.problemRepo.On("Get", ctx, int64(3)).Return(&models.Problem{ID: 3}, nil).Once()

			var inserted models.Interaction
			f.interactionRepo.On("Insert", ctx, mock.AnythingOfType("models.Interaction")).
				Run(func(args mock.Arguments) {
					inserted = args.Get(1).(models.Interaction)
				}).
				Return(&models.Interaction{ID: 1, UserID: 7, ProblemID: 3}, nil).Once()
			f.queue.On("EnqueueForward", mock.Anything).Return(nil).Once()
			f.expectProgressRefresh(7, 1, 1, nil, 100)

			input := validInput()
			input.Phase = models.PhaseMCQ
			input.Correct = boolPtr(tt.claimed)
			input.MCQScore = intPtr(tt.score)

			_, err := f.service.RecordInteraction(ctx, input)

			require.NoError(t, err)
			assert.Equal(t, tt.storedCorrect, inserted.Correct)
		})
	}
}

func TestRecordInteraction_UnknownUser(t *testing.T) {
	f := newInteractionFixture()
	ctx := context.Background()

	f.userRepo.On("Get", ctx, int64(7)).Return(nil, nil).Once()

	_, err := f.service.RecordInteraction(ctx, validInput())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	f.interactionRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRecordInteraction_UnknownProblem(t *testing.T) {
	f := newInteractionFixture()
	ctx := context.Background()

	f.userRepo.On("Get", ctx, int64(7)).Return(&models.User{ID: 7}, nil).Once()
	f.problemRepo.On("Get", ctx, int64(3)).Return(nil, nil).Once()

	_, err := f.service.RecordInteraction(ctx, validInput())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	f.interactionRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRecordInteraction_QueueFullDoesNotFailRecording(t *testing.T) {
	f := newInteractionFixture()
	ctx := context.Background()

	f.userRepo.On("Get", ctx, int64(7)).Return(&models.User{ID: 7}, nil).Once()
	f.problemRepo.On("Get", ctx, int64(3)).Return(&models.Problem{ID: 3}, nil).Once()

	stored := &models.Interaction{ID: 1, UserID: 7, ProblemID: 3}
	f.interactionRepo.On("Insert", ctx, mock.Anything).Return(stored, nil).Once()
	f.queue.On("EnqueueForward", *stored).Return(assert.AnError).Once()
	f.expectProgressRefresh(7, 1, 1, nil, 100)

	out, err := f.service.RecordInteraction(ctx, validInput())

	require.NoError(t, err, "scoring forward is best effort")
	assert.Equal(t, int64(1), out.ID)
}

func TestRecordInteraction_ProgressFailureDoesNotFailRecording(t *testing.T) {
	f := newInteractionFixture()
	ctx := context.Background()

	f.userRepo.On("Get", ctx, int64(7)).Return(&models.User{ID: 7}, nil).Once()
	f.problemRepo.On("Get", ctx, int64(3)).Return(&models.Problem{ID: 3}, nil).Once()

	stored := &models.Interaction{ID: 1, UserID: 7, ProblemID: 3}
	f.interactionRepo.On("Insert", ctx, mock.Anything).Return(stored, nil).Once()
	f.queue.On("EnqueueForward", *stored).Return(nil).Once()
	f.interactionRepo.On("Count", mock.Anything, mock.Anything).Return(0, assert.AnError).Once()

	out, err := f.service.RecordInteraction(ctx, validInput())

	require.NoError(t, err, "aggregate refresh is recoverable, never fails the write")
	assert.Equal(t, int64(1), out.ID)
	f.userRepo.AssertNotCalled(t, "UpdateProgress", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordInteraction_AccuracyRounding(t *testing.T) {
	// 2 of 3 correct rounds to 67, not truncates to 66.
	f := newInteractionFixture()
	ctx := context.Background()

	f.userRepo.On("Get", ctx, int64(7)).Return(&models.User{ID: 7}, nil).Once()
	f.problemRepo.On("Get", ctx, int64(3)).Return(&models.Problem{ID: 3}, nil).Once()

	stored := &models.Interaction{ID: 1, UserID: 7, ProblemID: 3}
	f.interactionRepo.On("Insert", ctx, mock.Anything).Return(stored, nil).Once()
	f.queue.On("EnqueueForward", *stored).Return(nil).Once()
	f.expectProgressRefresh(7, 3, 2, []int64{3, 9}, 67)

	_, err := f.service.RecordInteraction(ctx, validInput())

	require.NoError(t, err)
	f.userRepo.AssertExpectations(t)
}
