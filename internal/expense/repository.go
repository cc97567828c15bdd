package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts an expense and all its splits in one transaction,
// so a partial write can never skew group balances.
func (r *Repository) CreateExpense(ctx context.Context, e *Expense, splits []*Split) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expenseQuery := `
		INSERT INTO expenses (id, group_id, created_by_id, paid_by_id, description, amount, currency, split_type, is_payment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, group_id, created_by_id, paid_by_id, description, amount, currency, split_type, is_payment, created_at
	`

	created := &Expense{}
	err = tx.QueryRowContext(ctx, expenseQuery,
		uuid.NewString(), e.GroupID, e.CreatedByID, e.PaidByID, e.Description,
		e.Amount, e.Currency, e.SplitType, e.IsPayment,
	).Scan(
		&created.ID,
		&created.GroupID,
		&created.CreatedByID,
		&created.PaidByID,
		&created.Description,
		&created.Amount,
		&created.Currency,
		&created.SplitType,
		&created.IsPayment,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splitQuery := `
		INSERT INTO expense_splits (id, expense_id, user_id, owed_share)
		VALUES ($1, $2, $3, $4)
		RETURNING id, expense_id, user_id, owed_share
	`

	createdSplits := make([]*Split, len(splits))
	for i, s := range splits {
		split := &Split{}
		err = tx.QueryRowContext(ctx, splitQuery, uuid.NewString(), created.ID, s.UserID, s.OwedShare).Scan(
			&split.ID,
			&split.ExpenseID,
			&split.UserID,
			&split.OwedShare,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
		createdSplits[i] = split
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense creation: %w", err)
	}

	return &ExpenseWithSplits{
		Expense: created,
		Splits:  createdSplits,
	}, nil
}

// GetExpenseByID retrieves an active (not soft-deleted) expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id string) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.created_by_id, e.paid_by_id, e.description,
		       e.amount, e.currency, e.split_type, e.is_payment, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.paid_by_id = u.id
		WHERE e.id = $1 AND e.deleted_at IS NULL
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.CreatedByID,
		&expense.PaidByID,
		&expense.Description,
		&expense.Amount,
		&expense.Currency,
		&expense.SplitType,
		&expense.IsPayment,
		&expense.CreatedAt,
		&expense.PaidByName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplitsByExpenseID retrieves all splits for an expense
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID string) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.owed_share, u.name
		FROM expense_splits s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		split := &Split{}
		if err := rows.Scan(
			&split.ID,
			&split.ExpenseID,
			&split.UserID,
			&split.OwedShare,
			&split.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return splits, nil
}

// ListExpensesByGroupID retrieves active expenses for a group, newest first
func (r *Repository) ListExpensesByGroupID(ctx context.Context, groupID string, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1 AND deleted_at IS NULL`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.created_by_id, e.paid_by_id, e.description,
		       e.amount, e.currency, e.split_type, e.is_payment, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.paid_by_id = u.id
		WHERE e.group_id = $1 AND e.deleted_at IS NULL
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.CreatedByID,
			&expense.PaidByID,
			&expense.Description,
			&expense.Amount,
			&expense.Currency,
			&expense.SplitType,
			&expense.IsPayment,
			&expense.CreatedAt,
			&expense.PaidByName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, total, nil
}

// SoftDeleteExpense marks an expense as deleted; its splits stay in place
// but stop counting toward balances
func (r *Repository) SoftDeleteExpense(ctx context.Context, id string) error {
	query := `UPDATE expenses SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
