package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/dfalcao/metacompra/internal/database"
)

const itemColumns = "id, kind, name, price_cents, link, image, description, installments, installment_day, purchased, created_at"

// ItemRepo handles goal and bill rows.
type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

// Insert stores a new item and returns its id. A zero ID or CreatedAt is
// assigned by the store.
func (r *ItemRepo) Insert(ctx context.Context, it Item) (string, error) {
	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = database.Now()
	}
	if it.Kind == "" {
		it.Kind = KindGoal
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO items(id, kind, name, price_cents, link, image, description, installments, installment_day, purchased, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		it.ID, it.Kind, it.Name, it.PriceCents, it.Link, it.Image,
		it.Description, it.Installments, it.InstallmentDay, it.Purchased, it.CreatedAt)
	if err != nil {
		return "", storageErr("insert item", err)
	}
	return it.ID, nil
}

// Update replaces every mutable field including the stored image blob.
func (r *ItemRepo) Update(ctx context.Context, it Item) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE items SET kind = ?, name = ?, price_cents = ?, link = ?, image = ?,
	 description = ?, installments = ?, installment_day = ?
	WHERE id = ?`,
		it.Kind, it.Name, it.PriceCents, it.Link, it.Image,
		it.Description, it.Installments, it.InstallmentDay, it.ID)
	if err != nil {
		return storageErr("update item", err)
	}
	return requireRow(res)
}

// UpdateKeepImage is Update without touching the image column, so the blob
// stored at insert time survives edits that did not pick a new image.
func (r *ItemRepo) UpdateKeepImage(ctx context.Context, it Item) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE items SET kind = ?, name = ?, price_cents = ?, link = ?,
	 description = ?, installments = ?, installment_day = ?
	WHERE id = ?`,
		it.Kind, it.Name, it.PriceCents, it.Link,
		it.Description, it.Installments, it.InstallmentDay, it.ID)
	if err != nil {
		return storageErr("update item", err)
	}
	return requireRow(res)
}

// Delete removes an item. Deleting an absent id is a no-op.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	return storageErr("delete item", err)
}

// TogglePurchased flips the purchased flag and returns the new state. The
// read and the write run in one transaction.
func (r *ItemRepo) TogglePurchased(ctx context.Context, id string) (bool, error) {
	var next bool
	err := database.WithTx(r.db, func(tx *sql.Tx) error {
		var current bool
		err := tx.QueryRowContext(ctx, `SELECT purchased FROM items WHERE id = ?`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		next = !current
		_, err = tx.ExecContext(ctx, `UPDATE items SET purchased = ? WHERE id = ?`, next, id)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, storageErr("toggle purchased", err)
	}
	return next, nil
}

// Get fetches one item by id.
func (r *ItemRepo) Get(ctx context.Context, id string) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("get item", err)
	}
	return &it, nil
}

// List returns items of every kind. With includePurchased, unpurchased items
// come first and each group is newest-first; otherwise only unpurchased
// items, newest-first.
func (r *ItemRepo) List(ctx context.Context, includePurchased bool) ([]Item, error) {
	return r.list(ctx, "", includePurchased)
}

// ListByKind is List filtered to one kind.
func (r *ItemRepo) ListByKind(ctx context.Context, kind Kind, includePurchased bool) ([]Item, error) {
	return r.list(ctx, kind, includePurchased)
}

func (r *ItemRepo) list(ctx context.Context, kind Kind, includePurchased bool) ([]Item, error) {
	var where []string
	var args []interface{}

	if kind != "" {
		where = append(where, "kind = ?")
		args = append(args, kind)
	}
	if !includePurchased {
		where = append(where, "purchased = 0")
	}

	query := "SELECT " + itemColumns + " FROM items"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY purchased ASC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list items", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, storageErr("list items", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list items", err)
	}
	return out, nil
}

// MonthlyBillsTotal sums price_cents over unpaid bills. Prices already
// represent the monthly installment amount, so no division by installment
// count happens here.
func (r *ItemRepo) MonthlyBillsTotal(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(price_cents), 0) FROM items WHERE kind = ? AND purchased = 0`,
		KindBill).Scan(&total)
	if err != nil {
		return 0, storageErr("monthly bills total", err)
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Kind, &it.Name, &it.PriceCents, &it.Link, &it.Image,
		&it.Description, &it.Installments, &it.InstallmentDay, &it.Purchased, &it.CreatedAt)
	return it, err
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("rows affected", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
