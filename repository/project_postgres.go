package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"team-portal/models"
)

// PostgresProjectRepository is the SQL variant of the project store.
type PostgresProjectRepository struct {
	db *sql.DB
}

func NewPostgresProjectRepository(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

const projectColumns = `id, name, project_link, image_url, preview_type, preview_url, created_by, created_at, updated_at`

func scanProject(row rowScanner) (models.Project, error) {
	var (
		p         models.Project
		createdBy sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &p.ProjectLink, &p.ImageURL, &p.PreviewType, &p.PreviewURL,
		&createdBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Project{}, err
	}
	p.CreatedBy = createdBy.String
	return p, nil
}

func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	id := uuid.NewString()
	var createdBy sql.NullString
	if _, err := uuid.Parse(project.CreatedBy); err == nil {
		createdBy = sql.NullString{String: project.CreatedBy, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, project.Name, project.ProjectLink, project.ImageURL, project.PreviewType, project.PreviewURL,
		createdBy, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	project.ID = id
	return nil
}

func (r *PostgresProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	p, err := scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

func (r *PostgresProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	if _, err := uuid.Parse(project.ID); err != nil {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = $1, project_link = $2, image_url = $3, preview_type = $4, preview_url = $5, updated_at = $6 WHERE id = $7`,
		project.Name, project.ProjectLink, project.ImageURL, project.PreviewType, project.PreviewURL, project.UpdatedAt, project.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresProjectRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}
