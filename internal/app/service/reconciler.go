package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"housetasks/internal/core/domain"
	"housetasks/internal/core/ports"
)

const defaultSweepWorkers = 4

// TaskChange describes one task write. ID is zero for a new task. TaskListID
// is the destination list; zero keeps the task where it is.
type TaskChange struct {
	ID         uint64
	TaskListID uint64
	ActorID    *uint64
	Apply      func(task *domain.Task) error
}

// TaskWrite is the outcome of a reconciled task write inside a transaction.
type TaskWrite struct {
	Task      domain.Task
	HouseID   uint64
	Kind      domain.TransitionKind
	Operation domain.Operation
}

// Reconciler keeps house counters and task list statuses consistent with the
// tasks. Every task write goes through SaveTask or DeleteTask inside the
// caller's transaction, and Publish is called once that transaction commits.
type Reconciler struct {
	store        ports.Store
	publisher    ports.EventPublisher
	now          func() time.Time
	sweepWorkers int
}

type ReconcilerOption func(*Reconciler)

func WithClock(now func() time.Time) ReconcilerOption {
	return func(r *Reconciler) {
		r.now = now
	}
}

func WithSweepWorkers(workers int) ReconcilerOption {
	return func(r *Reconciler) {
		if workers > 0 {
			r.sweepWorkers = workers
		}
	}
}

func NewReconciler(store ports.Store, publisher ports.EventPublisher, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		store:        store,
		publisher:    publisher,
		now:          time.Now,
		sweepWorkers: defaultSweepWorkers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SaveTask creates or updates a task and reconciles the owning house and
// every task list the write touched. Locks are taken list rows first (in
// ascending id order), then the task row, then the house rows (ascending).
// Moving a task to a list of another house settles both houses.
func (r *Reconciler) SaveTask(ctx context.Context, tx ports.Tx, change TaskChange) (TaskWrite, error) {
	var currentListID uint64
	if change.ID != 0 {
		listID, err := tx.LocateTask(ctx, change.ID)
		if err != nil {
			return TaskWrite{}, err
		}
		currentListID = listID
	}

	destListID := change.TaskListID
	if destListID == 0 {
		destListID = currentListID
	}
	if destListID == 0 {
		return TaskWrite{}, domain.ErrTaskListNotFound
	}

	locked, err := lockTaskLists(ctx, tx, nil, currentListID, destListID)
	if err != nil {
		return TaskWrite{}, err
	}

	task := domain.Task{Status: domain.StatusNotComplete}
	prior, snapshot, err := r.snapshotPrior(ctx, tx, change.ID)
	if err != nil {
		return TaskWrite{}, err
	}
	op := domain.OperationCreated
	if snapshot != nil {
		task = *snapshot
		op = domain.OperationUpdated
		// The task may have been moved after LocateTask and before its row lock.
		if locked, err = lockTaskLists(ctx, tx, locked, task.TaskListID); err != nil {
			return TaskWrite{}, err
		}
	}

	task.TaskListID = destListID
	if change.Apply != nil {
		if err := change.Apply(&task); err != nil {
			return TaskWrite{}, err
		}
	}
	now := r.now().UTC()
	task.StampCompletion(change.ActorID, now)
	if task.IsComplete() && task.CompletedBy == nil {
		return TaskWrite{}, domain.ErrActorRequired
	}
	if task.ID == 0 {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	if err := tx.SaveTask(ctx, &task); err != nil {
		return TaskWrite{}, fmt.Errorf("save task: %w", err)
	}

	kind := domain.ClassifyTransition(prior, task.Status)
	houseID := locked[destListID].HouseID
	changes := []houseChange{{houseID: houseID, kind: kind, next: task.Status}}
	if snapshot != nil {
		if sourceHouseID := locked[snapshot.TaskListID].HouseID; sourceHouseID != houseID {
			changes = crossHouseChanges(sourceHouseID, houseID, snapshot.Status, task.Status)
		}
	}
	if err := r.updateHouses(ctx, tx, changes); err != nil {
		return TaskWrite{}, err
	}
	if err := r.recomputeLocked(ctx, tx, locked); err != nil {
		return TaskWrite{}, err
	}

	return TaskWrite{Task: task, HouseID: houseID, Kind: kind, Operation: op}, nil
}

// DeleteTask removes a task. A completed task takes its points and counter
// contribution with it, clamped like any other reversion.
func (r *Reconciler) DeleteTask(ctx context.Context, tx ports.Tx, id uint64) (TaskWrite, error) {
	listID, err := tx.LocateTask(ctx, id)
	if err != nil {
		return TaskWrite{}, err
	}
	locked, err := lockTaskLists(ctx, tx, nil, listID)
	if err != nil {
		return TaskWrite{}, err
	}
	task, err := tx.GetTask(ctx, id)
	if err != nil {
		return TaskWrite{}, err
	}
	if locked, err = lockTaskLists(ctx, tx, locked, task.TaskListID); err != nil {
		return TaskWrite{}, err
	}
	if err := tx.DeleteTask(ctx, id); err != nil {
		return TaskWrite{}, fmt.Errorf("delete task: %w", err)
	}

	kind := domain.TransitionUnchanged
	if task.IsComplete() {
		kind = domain.TransitionBecameNotComplete
	}
	houseID := locked[task.TaskListID].HouseID
	if err := r.updateHouse(ctx, tx, houseID, kind, domain.StatusNotComplete); err != nil {
		return TaskWrite{}, err
	}
	if err := r.recomputeLocked(ctx, tx, locked); err != nil {
		return TaskWrite{}, err
	}

	return TaskWrite{Task: task, HouseID: houseID, Kind: kind, Operation: domain.OperationDeleted}, nil
}

// RecomputeTaskList derives the list status from its current tasks and
// persists it when it differs from the stored value. The list row must
// already be locked by the caller's transaction.
func (r *Reconciler) RecomputeTaskList(ctx context.Context, tx ports.Tx, taskList domain.TaskList) (domain.TaskList, bool, error) {
	tasks, err := tx.GetTasksInList(ctx, taskList.ID)
	if err != nil {
		return taskList, false, fmt.Errorf("list tasks of task list %d: %w", taskList.ID, err)
	}
	status := domain.DeriveTaskListStatus(tasks)
	if status == taskList.Status {
		return taskList, false, nil
	}
	taskList.Status = status
	taskList.UpdatedAt = r.now().UTC()
	if err := tx.SaveTaskList(ctx, &taskList); err != nil {
		return taskList, false, fmt.Errorf("save task list %d: %w", taskList.ID, err)
	}
	return taskList, true, nil
}

type SweepResult struct {
	TaskLists int
	Changed   int
}

// ReconcileAll re-derives the status of every task list from scratch, one
// transaction per list. Running it after incremental updates changes nothing.
func (r *Reconciler) ReconcileAll(ctx context.Context) (SweepResult, error) {
	var ids []uint64
	err := r.store.ReadOnly(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		ids, err = tx.ListTaskListIDs(ctx)
		return err
	})
	if err != nil {
		return SweepResult{}, fmt.Errorf("list task lists: %w", err)
	}

	var changed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.sweepWorkers)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			return r.store.WithinTx(gctx, func(ctx context.Context, tx ports.Tx) error {
				taskList, err := tx.GetTaskList(ctx, id)
				if errors.Is(err, domain.ErrTaskListNotFound) {
					return nil
				}
				if err != nil {
					return err
				}
				_, updated, err := r.RecomputeTaskList(ctx, tx, taskList)
				if updated {
					changed.Add(1)
				}
				return err
			})
		})
	}
	if err := g.Wait(); err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{TaskLists: len(ids), Changed: int(changed.Load())}
	zap.L().Info("task list sweep finished",
		zap.Int("task_lists", result.TaskLists),
		zap.Int("changed", result.Changed),
	)
	return result, nil
}

// Publish emits one event per committed write. Delivery is best-effort: the
// writes are already committed, so failures are logged only.
func (r *Reconciler) Publish(ctx context.Context, writes ...TaskWrite) {
	if r.publisher == nil {
		return
	}
	for _, w := range writes {
		event := domain.NewTransitionEvent(w.Operation, w.Task, w.HouseID, w.Kind, r.now())
		if err := r.publisher.Publish(ctx, event); err != nil {
			zap.L().Error("failed to publish task transition",
				zap.Uint64("task_id", event.TaskID),
				zap.String("kind", string(event.Kind)),
				zap.Error(err),
			)
		}
	}
}

// snapshotPrior reads the stored task before the write. A nil status means
// there is no prior record. Lookup failures other than absence abort the write.
func (r *Reconciler) snapshotPrior(ctx context.Context, tx ports.Tx, id uint64) (*domain.Status, *domain.Task, error) {
	if id == 0 {
		return nil, nil, nil
	}
	task, err := tx.GetTask(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	status := task.Status
	return &status, &task, nil
}

type houseChange struct {
	houseID uint64
	kind    domain.TransitionKind
	next    domain.Status
}

// crossHouseChanges splits a move between houses into a departure from the
// source house and an arrival at the destination. A complete task leaving
// takes its points with it; a complete task arriving earns them anew.
func crossHouseChanges(sourceHouseID, destHouseID uint64, prior, next domain.Status) []houseChange {
	changes := make([]houseChange, 0, 2)
	if prior == domain.StatusComplete {
		changes = append(changes, houseChange{
			houseID: sourceHouseID,
			kind:    domain.TransitionBecameNotComplete,
			next:    domain.StatusNotComplete,
		})
	}
	if next == domain.StatusComplete {
		changes = append(changes, houseChange{
			houseID: destHouseID,
			kind:    domain.TransitionBecameComplete,
			next:    domain.StatusComplete,
		})
	}
	return changes
}

// updateHouses applies the changes with house rows locked in ascending id order.
func (r *Reconciler) updateHouses(ctx context.Context, tx ports.Tx, changes []houseChange) error {
	sort.Slice(changes, func(i, j int) bool { return changes[i].houseID < changes[j].houseID })
	for _, c := range changes {
		if err := r.updateHouse(ctx, tx, c.houseID, c.kind, c.next); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reconciler) updateHouse(ctx context.Context, tx ports.Tx, houseID uint64, kind domain.TransitionKind, next domain.Status) error {
	if !kind.NewlyComplete(next) && kind != domain.TransitionBecameNotComplete {
		return nil
	}

	house, err := tx.GetHouse(ctx, houseID)
	if err != nil {
		return err
	}
	adj := house.ApplyTransition(kind, next)
	if adj.PointsClamped || adj.CountClamped {
		zap.L().Warn("house counters clamped at zero",
			zap.Uint64("house_id", house.ID),
			zap.Int("points", house.Points),
			zap.Int("completed_tasks_count", house.CompletedTasksCount),
			zap.Bool("points_clamped", adj.PointsClamped),
			zap.Bool("count_clamped", adj.CountClamped),
		)
	}
	if !adj.Changed {
		return nil
	}
	house.UpdatedAt = r.now().UTC()
	if err := tx.SaveHouse(ctx, &house); err != nil {
		return fmt.Errorf("save house %d: %w", house.ID, err)
	}
	return nil
}

func (r *Reconciler) recomputeLocked(ctx context.Context, tx ports.Tx, locked map[uint64]domain.TaskList) error {
	ids := make([]uint64, 0, len(locked))
	for id := range locked {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if _, _, err := r.RecomputeTaskList(ctx, tx, locked[id]); err != nil {
			return err
		}
	}
	return nil
}

// lockTaskLists locks the given task lists in ascending id order, skipping
// zero ids and lists already present in locked.
func lockTaskLists(ctx context.Context, tx ports.Tx, locked map[uint64]domain.TaskList, ids ...uint64) (map[uint64]domain.TaskList, error) {
	if locked == nil {
		locked = make(map[uint64]domain.TaskList, len(ids))
	}
	pending := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := locked[id]; ok || id == 0 {
			continue
		}
		pending = append(pending, id)
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i] < pending[j] })
	for _, id := range pending {
		if _, ok := locked[id]; ok {
			continue
		}
		taskList, err := tx.GetTaskList(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = taskList
	}
	return locked, nil
}
