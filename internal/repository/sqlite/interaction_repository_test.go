package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/repository"
	"github.com/dhruvbhalode/capstone/internal/repository/sqlite"
	"github.com/dhruvbhalode/capstone/internal/testutil"
)

type InteractionRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.InteractionRepository
}

func (s *InteractionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewInteractionRepository(s.db)
}

func (s *InteractionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *InteractionRepositorySuite) setupUserAndProblems(problemCount int) (int64, []int64) {
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
		"testuser", "test@example.com", "hash")
	s.Require().NoError(err)
	userID, err := res.LastInsertId()
	s.Require().NoError(err)

	var problemIDs []int64
	for i := 0; i < problemCount; i++ {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO problems (title, difficulty, description) VALUES (?, ?, ?)`,
			"Problem", "Easy", "desc")
		s.Require().NoError(err)
		id, err := res.LastInsertId()
		s.Require().NoError(err)
		problemIDs = append(problemIDs, id)
	}
	return userID, problemIDs
}

func (s *InteractionRepositorySuite) TestInsertDefaults() {
	ctx := context.Background()
	userID, problemIDs := s.setupUserAndProblems(1)

	in, err := s.repo.Insert(ctx, models.Interaction{
		UserID:    userID,
		ProblemID: problemIDs[0],
		Skills:    []string{"arrays"},
		Correct:   true,
		Phase:     models.PhaseCompleted,
	})
	s.Require().NoError(err)

	s.NotZero(in.ID)
	s.Equal(1, in.Attempts, "attempts defaults to 1")
	s.False(in.CreatedAt.IsZero(), "created_at is filled in")
}

func (s *InteractionRepositorySuite) TestInsertAndList() {
	ctx := context.Background()
	userID, problemIDs := s.setupUserAndProblems(2)

	score := 85
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	_, err := s.repo.Insert(ctx, models.Interaction{
		UserID: userID, ProblemID: problemIDs[0], Skills: []string{"arrays", "hash-table"},
		Correct: true, Phase: models.PhaseMCQ, MCQScore: &score, CreatedAt: base,
	})
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, models.Interaction{
		UserID: userID, ProblemID: problemIDs[1],
		Correct: false, Phase: models.PhaseCoding, TimeSpent: 300, CreatedAt: base.Add(time.Minute),
	})
	s.Require().NoError(err)

	list, err := s.repo.List(ctx, models.InteractionFilter{UserID: userID})
	s.Require().NoError(err)
	s.Require().Len(list, 2)

	s.Equal(problemIDs[1], list[0].ProblemID, "newest first")
	s.Nil(list[0].MCQScore)
	s.Equal(300, list[0].TimeSpent)

	s.Equal(problemIDs[0], list[1].ProblemID)
	s.Equal([]string{"arrays", "hash-table"}, list[1].Skills)
	s.Require().NotNil(list[1].MCQScore)
	s.Equal(85, *list[1].MCQScore)
}

func (s *InteractionRepositorySuite) TestListOrderTiesBrokenByID() {
	ctx := context.Background()
	userID, problemIDs := s.setupUserAndProblems(1)

	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	first, err := s.repo.Insert(ctx, models.Interaction{
		UserID: userID, ProblemID: problemIDs[0], Correct: false, Phase: models.PhaseReading, CreatedAt: ts,
	})
	s.Require().NoError(err)
	second, err := s.repo.Insert(ctx, models.Interaction{
		UserID: userID, ProblemID: problemIDs[0], Correct: true, Phase: models.PhaseCompleted, CreatedAt: ts,
	})
	s.Require().NoError(err)

	list, err := s.repo.List(ctx, models.InteractionFilter{UserID: userID})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(second.ID, list[0].ID)
	s.Equal(first.ID, list[1].ID)
}

func (s *InteractionRepositorySuite) TestListFilters() {
	ctx := context.Background()
	userID, problemIDs := s.setupUserAndProblems(2)

	correct := true
	incorrect := false
	s.mustInsert(userID, problemIDs[0], true, models.PhaseCompleted)
	s.mustInsert(userID, problemIDs[0], false, models.PhaseCoding)
	s.mustInsert(userID, problemIDs[1], true, models.PhaseMCQ)

	byCorrect, err := s.repo.List(ctx, models.InteractionFilter{UserID: userID, Correct: &correct})
	s.Require().NoError(err)
	s.Len(byCorrect, 2)

	byIncorrect, err := s.repo.List(ctx, models.InteractionFilter{UserID: userID, Correct: &incorrect})
	s.Require().NoError(err)
	s.Len(byIncorrect, 1)

	byPhase, err := s.repo.List(ctx, models.InteractionFilter{UserID: userID, Phase: models.PhaseMCQ})
	s.Require().NoError(err)
	s.Require().Len(byPhase, 1)
	s.Equal(problemIDs[1], byPhase[0].ProblemID)

	byProblem, err := s.repo.List(ctx, models.InteractionFilter{ProblemID: problemIDs[0]})
	s.Require().NoError(err)
	s.Len(byProblem, 2)
}

func (s *InteractionRepositorySuite) TestListLimitAndOffset() {
	ctx := context.Background()
	userID, problemIDs := s.setupUserAndProblems(1)

	for i := 0; i < 5; i++ {
		s.mustInsert(userID, problemIDs[0], false, models.PhaseCoding)
	}

	page, err := s.repo.List(ctx, models.InteractionFilter{UserID: userID, Limit: 2, Offset: 1})
	s.Require().NoError(err)
	s.Len(page, 2)
}

func (s *InteractionRepositorySuite) TestCount() {
	ctx := context.Background()
	userID, problemIDs := s.setupUserAndProblems(1)

	s.mustInsert(userID, problemIDs[0], true, models.PhaseCompleted)
	s.mustInsert(userID, problemIDs[0], false, models.PhaseCoding)
	s.mustInsert(userID, problemIDs[0], true, models.PhaseMCQ)

	total, err := s.repo.Count(ctx, models.InteractionFilter{UserID: userID})
	s.Require().NoError(err)
	s.Equal(3, total)

	correct := true
	correctCount, err := s.repo.Count(ctx, models.InteractionFilter{UserID: userID, Correct: &correct})
	s.Require().NoError(err)
	s.Equal(2, correctCount)
}

func (s *InteractionRepositorySuite) TestDistinctProblemIDs() {
	ctx := context.Background()
	userID, problemIDs := s.setupUserAndProblems(3)

	// Problem 0 solved twice, problem 1 attempted but never completed,
	// problem 2 completed incorrectly.
	s.mustInsert(userID, problemIDs[0], true, models.PhaseCompleted)
	s.mustInsert(userID, problemIDs[0], true, models.PhaseCompleted)
	s.mustInsert(userID, problemIDs[1], true, models.PhaseMCQ)
	s.mustInsert(userID, problemIDs[2], false, models.PhaseCompleted)

	correct := true
	solved, err := s.repo.DistinctProblemIDs(ctx, models.InteractionFilter{
		UserID: userID, Correct: &correct, Phase: models.PhaseCompleted,
	})
	s.Require().NoError(err)
	s.Equal([]int64{problemIDs[0]}, solved, "retries do not double count")
}

func (s *InteractionRepositorySuite) mustInsert(userID, problemID int64, correct bool, phase string) {
	_, err := s.repo.Insert(context.Background(), models.Interaction{
		UserID: userID, ProblemID: problemID, Correct: correct, Phase: phase,
	})
	s.Require().NoError(err)
}

func TestInteractionRepositorySuite(t *testing.T) {
	suite.Run(t, new(InteractionRepositorySuite))
}
