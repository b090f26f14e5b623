package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (make, model, year, license_plate, price_per_day_cents, status, location, image_url, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		v.Make, v.Model, v.Year, v.LicensePlate, v.PricePerDayCents, v.Status, v.Location, v.ImageURL,
		time.Now(),
	).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, make, model, year, license_plate, price_per_day_cents, status, location, image_url, created_on
	          FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.PricePerDayCents, &v.Status, &v.Location, &v.ImageURL, &v.CreatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET make=$1, model=$2, year=$3, license_plate=$4,
	          price_per_day_cents=$5, status=$6, location=$7, image_url=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query,
		v.Make, v.Model, v.Year, v.LicensePlate, v.PricePerDayCents, v.Status, v.Location, v.ImageURL, v.ID,
	)
	return err
}

func (r *vehicleRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	builder := psql.Select("id, make, model, year, license_plate, price_per_day_cents, status, location, image_url, created_on").
		From("vehicles")
	countBuilder := psql.Select("count(*)").From("vehicles")
	if status != "" {
		builder = builder.Where(sq.Eq{"status": status})
		countBuilder = countBuilder.Where(sq.Eq{"status": status})
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var count int32
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query, args, err := builder.
		OrderBy("id").
		Limit(uint64(pageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.PricePerDayCents, &v.Status, &v.Location, &v.ImageURL, &v.CreatedOn); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}
