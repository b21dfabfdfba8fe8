package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
)

//go:embed catalog_seed.csv
var DefaultCatalog []byte

type CatalogRow struct {
	Term          string `csv:"term"`
	CourseCode    string `csv:"course_code"`
	NameEn        string `csv:"name_en"`
	NameAr        string `csv:"name_ar"`
	Credits       int    `csv:"credits"`
	Category      string `csv:"category"`
	Prerequisites string `csv:"prerequisites"`
	Schedule      string `csv:"schedule"`
	Instructor    string `csv:"instructor"`
	Capacity      int    `csv:"capacity"`
}

// ParseCatalog decodes catalog CSV, dropping rows without a course code.
func ParseCatalog(data []byte) ([]CatalogRow, error) {
	var rows []CatalogRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse catalog CSV: %w", err)
	}

	kept := rows[:0]
	for _, r := range rows {
		r.CourseCode = strings.TrimSpace(r.CourseCode)
		if r.CourseCode == "" {
			continue
		}
		r.Term = strings.TrimSpace(r.Term)
		r.Schedule = strings.TrimSpace(r.Schedule)
		r.Instructor = strings.TrimSpace(r.Instructor)
		kept = append(kept, r)
	}
	return kept, nil
}

// ActiveTermName is the term of the last catalog row. Catalog files list
// terms oldest first, so that is the one being registered for.
func ActiveTermName(rows []CatalogRow) string {
	if len(rows) == 0 {
		return ""
	}
	return rows[len(rows)-1].Term
}

// SplitPrerequisites reads the ';'-separated prerequisite column.
func SplitPrerequisites(field string) []string {
	prereqs := []string{}
	for _, p := range strings.Split(field, ";") {
		if p = strings.TrimSpace(p); p != "" {
			prereqs = append(prereqs, p)
		}
	}
	return prereqs
}

// SeedCatalog loads terms, courses and sections when the catalog is empty.
// The term of the last row becomes the active one, see ActiveTermName.
func (s *Storage) SeedCatalog(ctx context.Context, data []byte, log zerolog.Logger) error {
	var count int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM courses").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check courses: %w", err)
	}

	if count > 0 {
		log.Info().Int("courses", count).Msg("Catalog already populated, skipping seed")
		return nil
	}

	rows, err := ParseCatalog(data)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("catalog CSV has no rows")
	}

	log.Info().Int("rows", len(rows)).Msg("Starting catalog seeding")

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	termIDs := make(map[string]int)
	courses := make(map[string]bool)
	sectionsAdded := 0

	for _, r := range rows {
		termID, ok := termIDs[r.Term]
		if !ok {
			err := tx.QueryRow(ctx, `
				INSERT INTO terms (name, is_active) VALUES ($1, false)
				ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id`, r.Term).Scan(&termID)
			if err != nil {
				return fmt.Errorf("failed to insert term %s: %w", r.Term, err)
			}
			termIDs[r.Term] = termID
		}

		if !courses[r.CourseCode] {
			_, err := tx.Exec(ctx, `
				INSERT INTO courses (code, name_en, name_ar, credits, category, prerequisites)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (code) DO UPDATE SET name_en = EXCLUDED.name_en, credits = EXCLUDED.credits`,
				r.CourseCode, r.NameEn, r.NameAr, r.Credits, r.Category, SplitPrerequisites(r.Prerequisites))
			if err != nil {
				return fmt.Errorf("failed to insert course %s: %w", r.CourseCode, err)
			}
			courses[r.CourseCode] = true
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO sections (course_code, term_id, schedule, instructor, capacity, enrolled, is_open)
			VALUES ($1, $2, $3, $4, $5, 0, true)`,
			r.CourseCode, termID, nullable(r.Schedule), nullable(r.Instructor), r.Capacity)
		if err != nil {
			return fmt.Errorf("failed to insert section of %s: %w", r.CourseCode, err)
		}
		sectionsAdded++
	}

	if _, err := tx.Exec(ctx, `UPDATE terms SET is_active = (id = $1)`, termIDs[ActiveTermName(rows)]); err != nil {
		return fmt.Errorf("failed to activate term: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Info().Int("courses", len(courses)).Int("sections", sectionsAdded).
		Int("terms", len(termIDs)).Msg("Seeding complete")

	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
