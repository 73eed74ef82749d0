package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/dhruvbhalode/capstone/internal/logger"
	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/repository"
)

type problemRepository struct {
	db *sql.DB
}

// NewProblemRepository creates a new ProblemRepository implementation
func NewProblemRepository(db *sql.DB) repository.ProblemRepository {
	return &problemRepository{db: db}
}

const problemColumns = `id, title, difficulty, description, input_format, output_format, constraints, skills, hints, optimal_solution, leetcode_url, estimated_time, created_at`

func scanProblem(row interface{ Scan(...any) error }) (*models.Problem, error) {
	var p models.Problem
	var constraints, skills, hints string
	err := row.Scan(&p.ID, &p.Title, &p.Difficulty, &p.Description, &p.InputFormat, &p.OutputFormat,
		&constraints, &skills, &hints, &p.OptimalSolution, &p.LeetcodeURL, &p.EstimatedTime, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Constraints = unmarshalStrings(constraints)
	p.Skills = unmarshalStrings(skills)
	p.Hints = unmarshalStrings(hints)
	return &p, nil
}

func (r *problemRepository) Get(ctx context.Context, id int64) (*models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")
	log.Debug("getting problem: id=%d", id)

	row := r.db.QueryRowContext(ctx, `
SELECT `+problemColumns+`
FROM problems
WHERE id = ?
`, id)
	p, err := scanProblem(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("problem not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get problem: %v", err)
		return nil, err
	}

	questions, err := r.questionsForProblem(ctx, id)
	if err != nil {
		return nil, err
	}
	p.MCQQuestions = questions
	return p, nil
}

func (r *problemRepository) questionsForProblem(ctx context.Context, problemID int64) ([]models.MCQQuestion, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, problem_id, question, options, correct_answer, explanation, category
FROM mcq_questions
WHERE problem_id = ?
ORDER BY position ASC
`, problemID)
	if err != nil {
		log.Error("failed to query mcq questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.MCQQuestion
	for rows.Next() {
		var q models.MCQQuestion
		var options string
		if err := rows.Scan(&q.ID, &q.ProblemID, &q.Question, &options, &q.CorrectAnswer, &q.Explanation, &q.Category); err != nil {
			log.Error("failed to scan mcq question row: %v", err)
			return nil, err
		}
		q.Options = unmarshalStrings(options)
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func problemWhere(query squirrel.SelectBuilder, filter models.ProblemFilter) squirrel.SelectBuilder {
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	if filter.Skill != "" {
		query = query.Where(`EXISTS (SELECT 1 FROM json_each(problems.skills) WHERE json_each.value = ?)`, filter.Skill)
	}
	if len(filter.IDs) > 0 {
		query = query.Where(squirrel.Eq{"id": filter.IDs})
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where(squirrel.NotEq{"id": filter.ExcludeIDs})
	}
	return query
}

func (r *problemRepository) List(ctx context.Context, filter models.ProblemFilter) ([]models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")
	log.Debug("listing problems: difficulty=%s, skill=%s, exclude=%d ids",
		filter.Difficulty, filter.Skill, len(filter.ExcludeIDs))

	query := sqlBuilder.Select(
		"id", "title", "difficulty", "description", "input_format", "output_format",
		"constraints", "skills", "hints", "optimal_solution", "leetcode_url",
		"estimated_time", "created_at",
	).From("problems")

	query = problemWhere(query, filter)
	query = query.OrderBy("id ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list problems: %v", err)
		return nil, err
	}
	defer rows.Close()

	var problems []models.Problem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			log.Error("failed to scan problem row: %v", err)
			return nil, err
		}
		problems = append(problems, *p)
	}
	log.Debug("found %d problems", len(problems))
	return problems, rows.Err()
}

func (r *problemRepository) Count(ctx context.Context, filter models.ProblemFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")

	query := problemWhere(sqlBuilder.Select("COUNT(*)").From("problems"), filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count problems: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *problemRepository) Insert(ctx context.Context, p models.Problem) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("problem_repo")
	log.Debug("inserting problem: title=%s", p.Title)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO problems (title, difficulty, description, input_format, output_format, constraints, skills, hints, optimal_solution, leetcode_url, estimated_time)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, p.Title, p.Difficulty, p.Description, p.InputFormat, p.OutputFormat,
		marshalStrings(p.Constraints), marshalStrings(p.Skills), marshalStrings(p.Hints),
		p.OptimalSolution, p.LeetcodeURL, p.EstimatedTime)
	if err != nil {
		log.Error("failed to insert problem: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get problem id: %v", err)
		return 0, err
	}

	for i, q := range p.MCQQuestions {
		if _, err := r.db.ExecContext(ctx, `
INSERT INTO mcq_questions (problem_id, position, question, options, correct_answer, explanation, category)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, id, i, q.Question, marshalStrings(q.Options), q.CorrectAnswer, q.Explanation, q.Category); err != nil {
			log.Error("failed to insert mcq question: %v", err)
			return 0, err
		}
	}

	log.Debug("problem inserted: id=%d, questions=%d", id, len(p.MCQQuestions))
	return id, nil
}
