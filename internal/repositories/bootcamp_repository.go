package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

// Mean Earth radius in miles, used by the Haversine radius search
const earthRadiusMiles = 3963.2

// bootcampRepository implements bootcamp data access
type bootcampRepository struct {
	db *sql.DB
}

// NewBootcampRepository creates a new bootcamp repository
func NewBootcampRepository(db *sql.DB) *bootcampRepository {
	return &bootcampRepository{
		db: db,
	}
}

// BootcampColumns whitelists the bootcamp fields exposed to list filtering
var BootcampColumns = query.ColumnSet{
	"name":          "name",
	"slug":          "slug",
	"description":   "description",
	"city":          "city",
	"zipcode":       "zipcode",
	"housing":       "housing",
	"jobAssistance": "job_assistance",
	"averageCost":   "average_cost",
	"averageRating": "average_rating",
	"createdAt":     "created_at",
}

const bootcampSelect = `
	SELECT id, user_id, name, slug, description, website, phone, email, address,
	       latitude, longitude, city, zipcode, careers, housing, job_assistance,
	       photo, average_cost, average_rating, created_at
	FROM bootcamps
`

func scanBootcamp(scanner interface{ Scan(dest ...any) error }) (*models.Bootcamp, error) {
	b := &models.Bootcamp{}
	var careers []byte
	err := scanner.Scan(
		&b.ID,
		&b.UserID,
		&b.Name,
		&b.Slug,
		&b.Description,
		&b.Website,
		&b.Phone,
		&b.Email,
		&b.Address,
		&b.Latitude,
		&b.Longitude,
		&b.City,
		&b.Zipcode,
		&careers,
		&b.Housing,
		&b.JobAssistance,
		&b.Photo,
		&b.AverageCost,
		&b.AverageRating,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(careers) > 0 {
		if err := json.Unmarshal(careers, &b.Careers); err != nil {
			return nil, fmt.Errorf("failed to decode careers: %w", err)
		}
	}
	return b, nil
}

// Create inserts a new bootcamp into the database
func (r *bootcampRepository) Create(ctx context.Context, bootcamp *models.Bootcamp) error {
	careers, err := json.Marshal(bootcamp.Careers)
	if err != nil {
		return fmt.Errorf("failed to encode careers: %w", err)
	}

	q := `
		INSERT INTO bootcamps (user_id, name, slug, description, website, phone, email,
		                       address, latitude, longitude, city, zipcode, careers,
		                       housing, job_assistance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, q,
		bootcamp.UserID,
		bootcamp.Name,
		bootcamp.Slug,
		bootcamp.Description,
		bootcamp.Website,
		bootcamp.Phone,
		bootcamp.Email,
		bootcamp.Address,
		bootcamp.Latitude,
		bootcamp.Longitude,
		bootcamp.City,
		bootcamp.Zipcode,
		careers,
		bootcamp.Housing,
		bootcamp.JobAssistance,
	)
	if err != nil {
		return fmt.Errorf("failed to create bootcamp: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	bootcamp.ID = int(id)
	return nil
}

// GetByID retrieves a bootcamp by ID
func (r *bootcampRepository) GetByID(ctx context.Context, bootcampID int) (*models.Bootcamp, error) {
	q := bootcampSelect + ` WHERE id = ? LIMIT 1`

	bootcamp, err := scanBootcamp(r.db.QueryRowContext(ctx, q, bootcampID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bootcamp %d: %w", bootcampID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bootcamp by id: %w", err)
	}

	return bootcamp, nil
}

// List retrieves bootcamps with filtering, sorting and pagination, returning
// the page and the total count of rows matching the filtered predicate
func (r *bootcampRepository) List(ctx context.Context, opts *query.Options) ([]models.Bootcamp, int, error) {
	where, args := opts.WhereClause()
	order := opts.OrderClause("created_at DESC")
	limit, offset := opts.LimitOffset()

	q := fmt.Sprintf("%s %s %s LIMIT ? OFFSET ?", bootcampSelect, where, order)

	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bootcamps: %w", err)
	}
	defer rows.Close()

	bootcamps := []models.Bootcamp{}
	for rows.Next() {
		bootcamp, err := scanBootcamp(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan bootcamp: %w", err)
		}
		bootcamps = append(bootcamps, *bootcamp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate bootcamps: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM bootcamps %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bootcamps: %w", err)
	}

	return bootcamps, total, nil
}

// ListWithinRadius retrieves bootcamps within the given distance (miles) of a
// center point, using the Haversine great-circle formula
func (r *bootcampRepository) ListWithinRadius(ctx context.Context, lat, lng, miles float64) ([]models.Bootcamp, error) {
	// Rounding can push the cosine fractionally above 1 for a bootcamp at the
	// center point itself; ACOS then returns NULL and the row is dropped, so
	// the argument is clamped.
	q := bootcampSelect + `
		WHERE (? * ACOS(LEAST(1.0,
			COS(RADIANS(?)) * COS(RADIANS(latitude)) * COS(RADIANS(longitude) - RADIANS(?)) +
			SIN(RADIANS(?)) * SIN(RADIANS(latitude))
		))) <= ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, earthRadiusMiles, lat, lng, lat, miles)
	if err != nil {
		return nil, fmt.Errorf("failed to list bootcamps within radius: %w", err)
	}
	defer rows.Close()

	bootcamps := []models.Bootcamp{}
	for rows.Next() {
		bootcamp, err := scanBootcamp(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bootcamp: %w", err)
		}
		bootcamps = append(bootcamps, *bootcamp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bootcamps: %w", err)
	}

	return bootcamps, nil
}

// CountByUser counts bootcamps owned by the given user
func (r *bootcampRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	q := `SELECT COUNT(*) FROM bootcamps WHERE user_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bootcamps by user: %w", err)
	}
	return count, nil
}

// Update updates a bootcamp's mutable fields
func (r *bootcampRepository) Update(ctx context.Context, bootcamp *models.Bootcamp) error {
	careers, err := json.Marshal(bootcamp.Careers)
	if err != nil {
		return fmt.Errorf("failed to encode careers: %w", err)
	}

	q := `
		UPDATE bootcamps
		SET name = ?, slug = ?, description = ?, website = ?, phone = ?, email = ?,
		    address = ?, latitude = ?, longitude = ?, city = ?, zipcode = ?,
		    careers = ?, housing = ?, job_assistance = ?
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, q,
		bootcamp.Name,
		bootcamp.Slug,
		bootcamp.Description,
		bootcamp.Website,
		bootcamp.Phone,
		bootcamp.Email,
		bootcamp.Address,
		bootcamp.Latitude,
		bootcamp.Longitude,
		bootcamp.City,
		bootcamp.Zipcode,
		careers,
		bootcamp.Housing,
		bootcamp.JobAssistance,
		bootcamp.ID,
	); err != nil {
		return fmt.Errorf("failed to update bootcamp: %w", err)
	}
	return nil
}

// UpdatePhoto stores the uploaded photo filename
func (r *bootcampRepository) UpdatePhoto(ctx context.Context, bootcampID int, filename string) error {
	q := `UPDATE bootcamps SET photo = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, q, filename, bootcampID); err != nil {
		return fmt.Errorf("failed to update bootcamp photo: %w", err)
	}
	return nil
}

// UpdateAverageCost recomputes the average tuition over the bootcamp's courses
func (r *bootcampRepository) UpdateAverageCost(ctx context.Context, bootcampID int) error {
	q := `
		UPDATE bootcamps
		SET average_cost = (SELECT CEIL(AVG(tuition)) FROM courses WHERE bootcamp_id = ?)
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, q, bootcampID, bootcampID); err != nil {
		return fmt.Errorf("failed to update average cost: %w", err)
	}
	return nil
}

// UpdateAverageRating recomputes the average rating over the bootcamp's reviews
func (r *bootcampRepository) UpdateAverageRating(ctx context.Context, bootcampID int) error {
	q := `
		UPDATE bootcamps
		SET average_rating = (SELECT AVG(rating) FROM reviews WHERE bootcamp_id = ?)
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, q, bootcampID, bootcampID); err != nil {
		return fmt.Errorf("failed to update average rating: %w", err)
	}
	return nil
}

// Delete removes a bootcamp; courses and reviews cascade at the schema level
func (r *bootcampRepository) Delete(ctx context.Context, bootcampID int) error {
	q := `DELETE FROM bootcamps WHERE id = ?`

	result, err := r.db.ExecContext(ctx, q, bootcampID)
	if err != nil {
		return fmt.Errorf("failed to delete bootcamp: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bootcamp %d: %w", bootcampID, apperr.ErrNotFound)
	}

	return nil
}
