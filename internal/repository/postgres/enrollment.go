package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"portal/internal/domain"
	"portal/internal/utils"
)

// LoadAcademicContext fetches the active term, the student's completed and
// in-progress enrollments, and the term's open sections.
func (s *Storage) LoadAcademicContext(ctx context.Context, studentID int) (*domain.AcademicContext, error) {
	term, err := s.GetActiveTerm(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.getCompletedCourses(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed courses: %w", err)
	}

	registered, err := s.getRegisteredCourses(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registrations: %w", err)
	}

	open, err := s.GetOpenSections(ctx, term.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open sections: %w", err)
	}

	ac := &domain.AcademicContext{
		StudentID:    studentID,
		TermID:       term.ID,
		Completed:    completed,
		Registered:   registered,
		OpenSections: open,
	}
	for _, c := range completed {
		ac.PassedCredits += c.Credits
	}
	for _, r := range registered {
		ac.RegisteredCredits += r.Credits
	}

	return ac, nil
}

func (s *Storage) getCompletedCourses(ctx context.Context, studentID int) ([]domain.CompletedCourse, error) {
	const query = `
		SELECT DISTINCT c.code, c.credits
		FROM enrollments e
		JOIN sections s ON s.id = e.section_id
		JOIN courses c ON c.code = s.course_code
		WHERE e.student_id = $1 AND e.status = $2;
	`

	rows, err := s.pool.Query(ctx, query, studentID, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var courses []domain.CompletedCourse
	for rows.Next() {
		var c domain.CompletedCourse
		if err := rows.Scan(&c.CourseCode, &c.Credits); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

func (s *Storage) getRegisteredCourses(ctx context.Context, studentID int) ([]domain.RegisteredCourse, error) {
	const query = `
		SELECT s.id, c.code, s.schedule, c.credits
		FROM enrollments e
		JOIN sections s ON s.id = e.section_id
		JOIN courses c ON c.code = s.course_code
		WHERE e.student_id = $1 AND e.status = $2;
	`

	rows, err := s.pool.Query(ctx, query, studentID, domain.StatusRegistered)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var courses []domain.RegisteredCourse
	for rows.Next() {
		var r domain.RegisteredCourse
		if err := rows.Scan(&r.SectionID, &r.CourseCode, &r.Schedule, &r.Credits); err != nil {
			return nil, err
		}
		courses = append(courses, r)
	}

	return courses, rows.Err()
}

func (s *Storage) GetStudentEnrollments(ctx context.Context, studentID int) ([]domain.EnrollmentWithSection, error) {
	const query = `
		SELECT e.id, e.student_id, e.section_id, e.status, e.created_at,
			c.code, c.name_en, c.credits, s.schedule
		FROM enrollments e
		JOIN sections s ON s.id = e.section_id
		JOIN courses c ON c.code = s.course_code
		WHERE e.student_id = $1
		ORDER BY e.created_at DESC;
	`

	rows, err := s.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var enrollments []domain.EnrollmentWithSection
	for rows.Next() {
		var e domain.EnrollmentWithSection
		err := rows.Scan(
			&e.ID, &e.StudentID, &e.SectionID, &e.Status, &e.CreatedAt,
			&e.CourseCode, &e.CourseName, &e.Credits, &e.Schedule,
		)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}

// CommitEnrollments inserts all rows in one transaction. Rows already present
// for the same student and section are left untouched. A section that fills
// up meanwhile aborts the whole commit with utils.ErrSectionFull.
func (s *Storage) CommitEnrollments(ctx context.Context, rows []domain.EnrollmentInsert) (int, error) {
	const insert = `
		INSERT INTO enrollments (student_id, section_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, section_id) DO NOTHING;
	`
	const bump = `
		UPDATE sections SET enrolled = enrolled + 1
		WHERE id = $1 AND (capacity <= 0 OR enrolled < capacity);
	`

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, r := range rows {
		tag, err := tx.Exec(ctx, insert, r.StudentID, r.SectionID, r.Status)
		if err != nil {
			return 0, fmt.Errorf("failed to insert enrollment for section %d: %w", r.SectionID, err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}
		inserted++
		tag, err = tx.Exec(ctx, bump, r.SectionID)
		if err != nil {
			return 0, err
		}
		if tag.RowsAffected() == 0 {
			return 0, fmt.Errorf("section %d: %w", r.SectionID, utils.ErrSectionFull)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return inserted, nil
}

// RegisterSection is a single-row commit.
func (s *Storage) RegisterSection(ctx context.Context, studentID, sectionID int) error {
	n, err := s.CommitEnrollments(ctx, []domain.EnrollmentInsert{{
		StudentID: studentID,
		SectionID: sectionID,
		Status:    domain.StatusRegistered,
	}})
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrNoRowsInserted
	}
	return nil
}

func (s *Storage) DropEnrollment(ctx context.Context, studentID, sectionID int) error {
	const query = `
		DELETE FROM enrollments
		WHERE student_id = $1 AND section_id = $2 AND status = $3
		RETURNING section_id;
	`
	const unbump = `UPDATE sections SET enrolled = GREATEST(enrolled - 1, 0) WHERE id = $1;`

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx, query, studentID, sectionID, domain.StatusRegistered).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return pgx.ErrNoRows
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, unbump, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
