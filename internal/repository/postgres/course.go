package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"portal/internal/domain"
)

var ErrNoActiveTerm = errors.New("no active term")

func (s *Storage) GetActiveTerm(ctx context.Context) (*domain.Term, error) {
	const query = `
		SELECT id, name, is_active
		FROM terms
		WHERE is_active
		ORDER BY id DESC
		LIMIT 1;
	`

	var t domain.Term
	err := s.pool.QueryRow(ctx, query).Scan(&t.ID, &t.Name, &t.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActiveTerm
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *Storage) GetCourseByCode(ctx context.Context, code string) (*domain.Course, error) {
	const query = `
		SELECT code, name_en, name_ar, credits, category, prerequisites, created_at
		FROM courses WHERE code = $1;
	`

	var c domain.Course
	err := s.pool.QueryRow(ctx, query, code).Scan(
		&c.Code,
		&c.NameEn,
		&c.NameAr,
		&c.Credits,
		&c.Category,
		&c.Prerequisites,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// GetOpenSections lists open sections of a term with their course records.
func (s *Storage) GetOpenSections(ctx context.Context, termID int) ([]domain.OpenSection, error) {
	const query = `
		SELECT s.id, s.course_code, s.term_id, s.schedule, s.instructor,
			s.capacity, s.enrolled, s.is_open,
			c.code, c.name_en, c.name_ar, c.credits, c.category, c.prerequisites, c.created_at
		FROM sections s
		JOIN courses c ON c.code = s.course_code
		WHERE s.term_id = $1 AND s.is_open
		ORDER BY s.course_code, s.id;
	`

	rows, err := s.pool.Query(ctx, query, termID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var sections []domain.OpenSection
	for rows.Next() {
		var sec domain.OpenSection
		err := rows.Scan(
			&sec.ID, &sec.CourseCode, &sec.TermID, &sec.Schedule, &sec.Instructor,
			&sec.Capacity, &sec.Enrolled, &sec.IsOpen,
			&sec.Course.Code, &sec.Course.NameEn, &sec.Course.NameAr, &sec.Course.Credits,
			&sec.Course.Category, &sec.Course.Prerequisites, &sec.Course.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}

	return sections, rows.Err()
}
