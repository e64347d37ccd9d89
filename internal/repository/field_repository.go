package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel comparisons

	"github.com/iliyamo/field-reservation/internal/model"
)

// FieldRepo provides persistence for sports fields.  Operating hours
// are stored as "HH:MM" strings in the open_time and close_time
// columns; the open_time < close_time invariant is enforced by the
// handlers before rows are written.
type FieldRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewFieldRepo constructs a FieldRepo with the given DB handle.
func NewFieldRepo(db *sql.DB) *FieldRepo {
	return &FieldRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *FieldRepo) DB() *sql.DB { return r.db }

const fieldColumns = `id, name, sport, size, description, price_per_hour, open_time, close_time, is_active, created_at, updated_at`

// scanField reads one fields row into a model.Field.
func scanField(row interface{ Scan(...any) error }) (*model.Field, error) {
	var f model.Field
	var desc sql.NullString
	if err := row.Scan(&f.ID, &f.Name, &f.Sport, &f.Size, &desc, &f.PricePerHour,
		&f.OpenTime, &f.CloseTime, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		f.Description = &d
	}
	return &f, nil
}

// Create inserts a new field and reads the row back so DB defaults
// (is_active, timestamps) are populated on the given struct.
func (r *FieldRepo) Create(ctx context.Context, f *model.Field) error {
	const qInsert = `INSERT INTO fields (name, sport, size, description, price_per_hour, open_time, close_time)
                     VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, f.Name, f.Sport, f.Size, f.Description,
		f.PricePerHour, f.OpenTime, f.CloseTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)

	const qSelect = `SELECT ` + fieldColumns + ` FROM fields WHERE id = ?`
	created, err := scanField(r.db.QueryRowContext(ctx, qSelect, f.ID))
	if err != nil {
		return err
	}
	*f = *created
	return nil
}

// GetByID retrieves a field by its ID.  It returns ErrFieldNotFound
// when no row is found.
func (r *FieldRepo) GetByID(ctx context.Context, id uint64) (*model.Field, error) {
	const q = `SELECT ` + fieldColumns + ` FROM fields WHERE id = ?`
	f, err := scanField(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFieldNotFound
		}
		return nil, err
	}
	return f, nil
}

// List returns fields ordered newest first.  When sport is non-empty
// only fields of that sport are returned; when activeOnly is true
// inactive fields are filtered out (the public browse view).
func (r *FieldRepo) List(ctx context.Context, sport string, activeOnly bool) ([]*model.Field, error) {
	q := `SELECT ` + fieldColumns + ` FROM fields WHERE 1=1`
	args := make([]any, 0, 2)
	if sport != "" {
		q += ` AND sport = ?`
		args = append(args, sport)
	}
	if activeOnly {
		q += ` AND is_active = 1`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Field, 0)
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the mutable columns of a field.  Returns
// ErrFieldNotFound when the row does not exist.
func (r *FieldRepo) Update(ctx context.Context, f *model.Field) error {
	const q = `UPDATE fields
               SET name = ?, sport = ?, size = ?, description = ?, price_per_hour = ?,
                   open_time = ?, close_time = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
               WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, f.Name, f.Sport, f.Size, f.Description,
		f.PricePerHour, f.OpenTime, f.CloseTime, f.IsActive, f.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFieldNotFound
	}
	return nil
}

// Delete removes a field.  Fields that still carry active (PENDING or
// CONFIRMED) bookings cannot be removed; ErrConflict is returned so the
// handler can answer 409.  Historic bookings are detached by the FK.
func (r *FieldRepo) Delete(ctx context.Context, id uint64) error {
	const qCheck = `SELECT COUNT(*) FROM bookings WHERE field_id = ? AND status IN ('PENDING','CONFIRMED')`
	var n int
	if err := r.db.QueryRowContext(ctx, qCheck, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM fields WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrFieldNotFound
	}
	return nil
}
