package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"housetasks/internal/core/domain"
)

type houseRow struct {
	ID                  uint64    `db:"id"`
	Name                string    `db:"name"`
	Points              int       `db:"points"`
	CompletedTasksCount int       `db:"completed_tasks_count"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

func (r *repository) GetHouse(ctx context.Context, id uint64) (domain.House, error) {
	var row houseRow
	query := "SELECT id, name, points, completed_tasks_count, created_at, updated_at FROM houses WHERE id = ?" + r.lockSuffix()
	err := r.tx.GetContext(ctx, &row, r.tx.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.House{}, domain.ErrHouseNotFound
	}
	if err != nil {
		return domain.House{}, fmt.Errorf("get house %d: %w", id, err)
	}
	return domain.House{
		ID:                  row.ID,
		Name:                row.Name,
		Points:              row.Points,
		CompletedTasksCount: row.CompletedTasksCount,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}, nil
}

func (r *repository) SaveHouse(ctx context.Context, house *domain.House) error {
	_, err := r.tx.ExecContext(ctx, r.tx.Rebind(`
UPDATE houses SET points = ?, completed_tasks_count = ?, updated_at = ? WHERE id = ?`),
		house.Points,
		house.CompletedTasksCount,
		house.UpdatedAt,
		house.ID,
	)
	return err
}

func (r *repository) CreateHouse(ctx context.Context, house *domain.House) error {
	id, err := r.insert(ctx, `
INSERT INTO houses (name, points, completed_tasks_count, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		house.Name,
		house.Points,
		house.CompletedTasksCount,
		house.CreatedAt,
		house.UpdatedAt,
	)
	if err != nil {
		return err
	}
	house.ID = id
	return nil
}
