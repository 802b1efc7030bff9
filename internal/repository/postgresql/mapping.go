package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/domain/mapping"
	"github.com/levanminhduc/LuongHoaThoNew-sub004/internal/pkg/database"
)

type mappingRepository struct {
	db *database.DB
}

func NewMappingRepository(db *database.DB) mapping.MappingRepository {
	return &mappingRepository{db: db}
}

func (r *mappingRepository) SaveConfig(ctx context.Context, config mapping.ImportFileConfig) (mapping.ImportFileConfig, error) {
	var saved mapping.ImportFileConfig

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO import_file_configs (name, description, file_type, is_active)
			VALUES ($1, $2, $3, true)
			ON CONFLICT (name) DO UPDATE SET
				description = EXCLUDED.description,
				file_type = EXCLUDED.file_type,
				updated_at = NOW()
			RETURNING id, name, description, file_type, is_active, created_at, updated_at
		`, config.Name, config.Description, config.FileType).Scan(
			&saved.ID, &saved.Name, &saved.Description, &saved.FileType, &saved.IsActive,
			&saved.CreatedAt, &saved.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return mapping.ErrConfigNameExists
			}
			return fmt.Errorf("failed to save import config: %w", err)
		}

		// Mappings are replaced wholesale; display_order is authoritative.
		if _, err := tx.Exec(ctx, `DELETE FROM import_column_mappings WHERE config_id = $1`, saved.ID); err != nil {
			return fmt.Errorf("failed to clear column mappings: %w", err)
		}
		for _, m := range config.Mappings {
			var saved2 mapping.ColumnMapping
			err := tx.QueryRow(ctx, `
				INSERT INTO import_column_mappings
					(config_id, database_field, excel_column_name, confidence_score, mapping_type, display_order)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id, config_id, database_field, excel_column_name, confidence_score, mapping_type, display_order
			`, saved.ID, m.DatabaseField, m.ExcelColumnName, m.ConfidenceScore, m.MappingType, m.DisplayOrder).Scan(
				&saved2.ID, &saved2.ConfigID, &saved2.DatabaseField, &saved2.ExcelColumnName,
				&saved2.ConfidenceScore, &saved2.MappingType, &saved2.DisplayOrder,
			)
			if err != nil {
				return fmt.Errorf("failed to save column mapping %s: %w", m.DatabaseField, err)
			}
			saved.Mappings = append(saved.Mappings, saved2)
		}
		return nil
	})
	if err != nil {
		return mapping.ImportFileConfig{}, err
	}
	return saved, nil
}

func (r *mappingRepository) loadMappings(ctx context.Context, configID int64) ([]mapping.ColumnMapping, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, config_id, database_field, excel_column_name, confidence_score, mapping_type, display_order
		FROM import_column_mappings
		WHERE config_id = $1
		ORDER BY display_order
	`, configID)
	if err != nil {
		return nil, fmt.Errorf("failed to load column mappings: %w", err)
	}
	defer rows.Close()

	var mappings []mapping.ColumnMapping
	for rows.Next() {
		var m mapping.ColumnMapping
		if err := rows.Scan(
			&m.ID, &m.ConfigID, &m.DatabaseField, &m.ExcelColumnName,
			&m.ConfidenceScore, &m.MappingType, &m.DisplayOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan column mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

func (r *mappingRepository) GetConfig(ctx context.Context, id int64) (mapping.ImportFileConfig, error) {
	var c mapping.ImportFileConfig
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, file_type, is_active, created_at, updated_at
		FROM import_file_configs WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.FileType, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mapping.ImportFileConfig{}, mapping.ErrConfigNotFound
		}
		return mapping.ImportFileConfig{}, fmt.Errorf("failed to get import config: %w", err)
	}

	c.Mappings, err = r.loadMappings(ctx, c.ID)
	if err != nil {
		return mapping.ImportFileConfig{}, err
	}
	return c, nil
}

func (r *mappingRepository) GetConfigByName(ctx context.Context, name string) (mapping.ImportFileConfig, error) {
	var c mapping.ImportFileConfig
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, file_type, is_active, created_at, updated_at
		FROM import_file_configs WHERE name = $1
	`, name).Scan(&c.ID, &c.Name, &c.Description, &c.FileType, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mapping.ImportFileConfig{}, mapping.ErrConfigNotFound
		}
		return mapping.ImportFileConfig{}, fmt.Errorf("failed to get import config: %w", err)
	}

	c.Mappings, err = r.loadMappings(ctx, c.ID)
	if err != nil {
		return mapping.ImportFileConfig{}, err
	}
	return c, nil
}

func (r *mappingRepository) ListConfigs(ctx context.Context, fileType string, activeOnly bool) ([]mapping.ImportFileConfig, error) {
	query := `
		SELECT id, name, description, file_type, is_active, created_at, updated_at
		FROM import_file_configs
		WHERE ($1 = '' OR file_type = $1) AND (NOT $2 OR is_active)
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, fileType, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list import configs: %w", err)
	}
	defer rows.Close()

	var configs []mapping.ImportFileConfig
	for rows.Next() {
		var c mapping.ImportFileConfig
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.FileType, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import config: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range configs {
		configs[i].Mappings, err = r.loadMappings(ctx, configs[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return configs, nil
}

func (r *mappingRepository) DeleteConfig(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE import_file_configs SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete import config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mapping.ErrConfigNotFound
	}
	return nil
}
