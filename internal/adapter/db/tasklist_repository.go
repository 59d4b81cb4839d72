package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"housetasks/internal/core/domain"
)

type taskListRow struct {
	ID          uint64         `db:"id"`
	HouseID     uint64         `db:"house_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *repository) GetTaskList(ctx context.Context, id uint64) (domain.TaskList, error) {
	var row taskListRow
	query := "SELECT id, house_id, name, description, status, created_at, updated_at FROM task_lists WHERE id = ?" + r.lockSuffix()
	err := r.tx.GetContext(ctx, &row, r.tx.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TaskList{}, domain.ErrTaskListNotFound
	}
	if err != nil {
		return domain.TaskList{}, fmt.Errorf("get task list %d: %w", id, err)
	}

	taskList := domain.TaskList{
		ID:        row.ID,
		HouseID:   row.HouseID,
		Name:      row.Name,
		Status:    domain.Status(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Description.Valid {
		value := row.Description.String
		taskList.Description = &value
	}
	return taskList, nil
}

func (r *repository) SaveTaskList(ctx context.Context, taskList *domain.TaskList) error {
	if taskList.ID != 0 {
		_, err := r.tx.ExecContext(ctx, r.tx.Rebind(`
UPDATE task_lists SET name = ?, description = ?, status = ?, updated_at = ? WHERE id = ?`),
			taskList.Name,
			nullString(taskList.Description),
			string(taskList.Status),
			taskList.UpdatedAt,
			taskList.ID,
		)
		return err
	}

	id, err := r.insert(ctx, `
INSERT INTO task_lists (house_id, name, description, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		taskList.HouseID,
		taskList.Name,
		nullString(taskList.Description),
		string(taskList.Status),
		taskList.CreatedAt,
		taskList.UpdatedAt,
	)
	if err != nil {
		return err
	}
	taskList.ID = id
	return nil
}

func (r *repository) DeleteTaskList(ctx context.Context, id uint64) error {
	result, err := r.tx.ExecContext(ctx, r.tx.Rebind("DELETE FROM task_lists WHERE id = ?"), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskListNotFound
	}
	return nil
}

func (r *repository) ListTaskListIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	if err := r.tx.SelectContext(ctx, &ids, "SELECT id FROM task_lists ORDER BY id"); err != nil {
		return nil, err
	}
	return ids, nil
}
