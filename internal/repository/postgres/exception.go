package postgres

import (
	"context"

	"portal/internal/domain"
)

func (s *Storage) CreateExceptionRequest(ctx context.Context, studentID int, req *domain.CreateExceptionRequest, attachmentKey *string) (*domain.ExceptionRequest, error) {
	const query = `
		INSERT INTO exception_requests (student_id, section_id, type, reason, attachment_key, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, student_id, section_id, type, reason, attachment_key, status, created_at;
	`

	var er domain.ExceptionRequest
	err := s.pool.QueryRow(ctx, query,
		studentID, req.SectionID, req.Type, req.Reason, attachmentKey, domain.ExceptionStatusPending,
	).Scan(
		&er.ID, &er.StudentID, &er.SectionID, &er.Type, &er.Reason,
		&er.AttachmentKey, &er.Status, &er.CreatedAt,
	)

	return &er, err
}

func (s *Storage) GetStudentExceptionRequests(ctx context.Context, studentID int) ([]domain.ExceptionRequest, error) {
	const query = `
		SELECT id, student_id, section_id, type, reason, attachment_key, status, created_at
		FROM exception_requests
		WHERE student_id = $1
		ORDER BY created_at DESC;
	`

	rows, err := s.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var requests []domain.ExceptionRequest
	for rows.Next() {
		var er domain.ExceptionRequest
		err := rows.Scan(
			&er.ID, &er.StudentID, &er.SectionID, &er.Type, &er.Reason,
			&er.AttachmentKey, &er.Status, &er.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, er)
	}

	return requests, rows.Err()
}
