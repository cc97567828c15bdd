package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pinxesplit/api/internal/balance/ledger"
)

// Repository loads expense history into the shape the ledger engine consumes.
// Soft-deleted expenses and groups are filtered out here, so the engine only
// ever sees records that count.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GroupExpenses loads all active expenses of a group with their splits
func (r *Repository) GroupExpenses(ctx context.Context, groupID string) ([]ledger.ExpenseRecord, error) {
	query := `
		SELECT e.id, e.group_id, e.amount, e.currency, e.paid_by_id, e.is_payment,
		       s.user_id, s.owed_share
		FROM expenses e
		JOIN expense_splits s ON s.expense_id = e.id
		WHERE e.group_id = $1 AND e.deleted_at IS NULL
		ORDER BY e.created_at, e.id, s.user_id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenseRecords(rows)
}

// UserExpenses loads all active expenses from every active group the user
// belongs to, with their splits
func (r *Repository) UserExpenses(ctx context.Context, userID string) ([]ledger.ExpenseRecord, error) {
	query := `
		SELECT e.id, e.group_id, e.amount, e.currency, e.paid_by_id, e.is_payment,
		       s.user_id, s.owed_share
		FROM expenses e
		JOIN expense_splits s ON s.expense_id = e.id
		JOIN groups g ON g.id = e.group_id
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1 AND e.deleted_at IS NULL AND g.deleted_at IS NULL
		ORDER BY e.created_at, e.id, s.user_id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user expenses: %w", err)
	}
	defer rows.Close()

	return scanExpenseRecords(rows)
}

// scanExpenseRecords folds the flat expense/split join back into one record
// per expense. Rows arrive ordered by expense, so a change in expense ID
// starts a new record.
func scanExpenseRecords(rows *sql.Rows) ([]ledger.ExpenseRecord, error) {
	var records []ledger.ExpenseRecord
	index := make(map[string]int)

	for rows.Next() {
		var (
			record ledger.ExpenseRecord
			split  ledger.ExpenseSplit
		)
		if err := rows.Scan(
			&record.ID,
			&record.GroupID,
			&record.Amount,
			&record.Currency,
			&record.PaidByID,
			&record.IsPayment,
			&split.UserID,
			&split.OwedShare,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense record: %w", err)
		}

		i, ok := index[record.ID]
		if !ok {
			i = len(records)
			index[record.ID] = i
			records = append(records, record)
		}
		records[i].Splits = append(records[i].Splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense records: %w", err)
	}

	return records, nil
}
