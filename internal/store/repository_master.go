package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/notion-brain/models"
)

// defaultMasters are the values seeded on first start. Estado values are
// system-locked: the sync engine depends on them existing in Notion, so the
// user may add new ones but never retire the seeds.
var defaultMasters = map[string][]string{
	models.MasterArea:      {"General", "Perceco", "Informática"},
	models.MasterTipo:      {"Nota", "Decisión", "Incidencia", "Tarea"},
	models.MasterEstado:    {"Pendiente", "En curso", "Finalizado"},
	models.MasterPrioridad: {"Baja", "Media", "Alta"},
	models.MasterOrigen:    {"Manual", "Sistema"},
}

// MasterRepository persists the catalog of allowed values for the select-type
// note properties.
type MasterRepository struct {
	db *DB
}

func NewMasterRepository(db *DB) *MasterRepository {
	return &MasterRepository{db: db}
}

// EnsureDefaults upserts the seed catalog. Re-running is harmless: existing
// rows are reactivated, never duplicated, and a seed that was locked stays
// locked.
func (r *MasterRepository) EnsureDefaults(ctx context.Context) error {
	log := r.db.logger.GetChildLogger("func", "MasterRepository.EnsureDefaults")

	for category, values := range defaultMasters {
		locked := int64(0)
		if category == models.MasterEstado {
			locked = 1
		}

		for _, value := range values {
			query, args, err := r.db.builder.
				Insert("masters").
				Columns("category", "value", "is_active", "is_locked").
				Values(category, value, 1, locked).
				Suffix("ON CONFLICT (category, value) DO UPDATE SET is_active = 1, is_locked = excluded.is_locked").
				ToSql()
			if err != nil {
				log.Err(err).Msg("error building sql query")
				return errors.Join(ErrBuildingSQLQuery, err)
			}

			if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
				log.Err(err).Str("category", category).Str("value", value).Msg("failed to seed master")
				return errors.Join(ErrExecutingStatement, err)
			}
		}
	}

	return nil
}

// ListActive returns the active values of one category, ordered for display.
func (r *MasterRepository) ListActive(ctx context.Context, category string) ([]string, error) {
	log := r.db.logger.GetChildLogger("func", "MasterRepository.ListActive")

	query, args, err := r.db.builder.
		Select("value").
		From("masters").
		Where(sq.Eq{"category": category, "is_active": 1}).
		OrderBy("value ASC").
		ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("category", category).Msg("error executing sql query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			log.Err(err).Msg("failed to scan master row")
			return nil, errors.Join(ErrScanningRow, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}

	return values, nil
}

// ListAll returns every master of one category, active rows first.
func (r *MasterRepository) ListAll(ctx context.Context, category string) ([]models.Master, error) {
	log := r.db.logger.GetChildLogger("func", "MasterRepository.ListAll")

	query, args, err := r.db.builder.
		Select("category", "value", "is_active", "is_locked").
		From("masters").
		Where(sq.Eq{"category": category}).
		OrderBy("is_active DESC", "value ASC").
		ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return nil, errors.Join(ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("category", category).Msg("error executing sql query")
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	var masters []models.Master
	for rows.Next() {
		var (
			master models.Master
			active int64
			locked int64
		)
		if err := rows.Scan(&master.Category, &master.Value, &active, &locked); err != nil {
			log.Err(err).Msg("failed to scan master row")
			return nil, errors.Join(ErrScanningRow, err)
		}
		master.IsActive = active == 1
		master.IsLocked = locked == 1
		masters = append(masters, master)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}

	return masters, nil
}

// Add registers (or reactivates) a value in a category.
func (r *MasterRepository) Add(ctx context.Context, category, value string) error {
	log := r.db.logger.GetChildLogger("func", "MasterRepository.Add")

	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("el valor del maestro no puede estar vacío")
	}

	query, args, err := r.db.builder.
		Insert("masters").
		Columns("category", "value", "is_active", "is_locked").
		Values(category, value, 1, 0).
		Suffix("ON CONFLICT (category, value) DO UPDATE SET is_active = 1").
		ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("category", category).Str("value", value).Msg("failed to add master")
		return errors.Join(ErrExecutingStatement, err)
	}

	return nil
}

// Deactivate retires a value from a category. Locked seeds cannot be retired.
func (r *MasterRepository) Deactivate(ctx context.Context, category, value string) error {
	log := r.db.logger.GetChildLogger("func", "MasterRepository.Deactivate")

	query, args, err := r.db.builder.
		Update("masters").
		Set("is_active", 0).
		Where(sq.Eq{"category": category, "value": value, "is_locked": 0}).
		ToSql()
	if err != nil {
		log.Err(err).Msg("error building sql query")
		return errors.Join(ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("category", category).Str("value", value).Msg("failed to deactivate master")
		return errors.Join(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Join(ErrExecutingStatement, err)
	}
	if affected == 0 {
		locked, err := r.isLocked(ctx, category, value)
		if err != nil {
			return err
		}
		if locked {
			return fmt.Errorf("%s %q: %w", category, value, ErrMasterLocked)
		}
		return fmt.Errorf("%s %q: %w", category, value, ErrMasterNotFound)
	}

	return nil
}

func (r *MasterRepository) isLocked(ctx context.Context, category, value string) (bool, error) {
	query, args, err := r.db.builder.
		Select("is_locked").
		From("masters").
		Where(sq.Eq{"category": category, "value": value}).
		ToSql()
	if err != nil {
		return false, errors.Join(ErrBuildingSQLQuery, err)
	}

	var locked int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, errors.Join(ErrExecutingQuery, err)
	}

	return locked == 1, nil
}
