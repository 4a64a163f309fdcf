package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"storeadmin/internal/domain"
	"storeadmin/internal/errors"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, userid, status, totalprice, checkoutdata, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []string
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	if err := r.attachItems(ctx, orders, ids); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *PostgresOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, userid, status, totalprice, checkoutdata, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}
	if err != nil {
		return nil, err
	}

	orders := []domain.Order{order}
	if err := r.attachItems(ctx, orders, []string{id}); err != nil {
		return nil, err
	}

	return &orders[0], nil
}

func (r *PostgresOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	checkout, err := json.Marshal(order.Checkout)
	if err != nil {
		return fmt.Errorf("encoding checkout data: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, userid, status, totalprice, checkoutdata)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, query, order.ID, order.UserID, string(order.Status), order.TotalPrice, checkout); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	if err := insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}

	return tx.Commit()
}

// Update replaces the order's status, totals, checkout details and cart
// items wholesale, as the order drawer's update button does.
func (r *PostgresOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	checkout, err := json.Marshal(order.Checkout)
	if err != nil {
		return fmt.Errorf("encoding checkout data: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE orders
		SET status = $1, totalprice = $2, checkoutdata = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := tx.ExecContext(ctx, query, string(order.Status), order.TotalPrice, checkout, order.ID)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", order.ID))
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("clearing order items: %w", err)
	}
	if err := insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateStatus writes the one status field. There is deliberately no
// version check: concurrent writers race and the last write wins.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}

	return nil
}

func (r *PostgresOrderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var order domain.Order
	var status string
	var checkout []byte

	err := row.Scan(&order.ID, &order.UserID, &status, &order.TotalPrice, &checkout, &order.CreatedAt, &order.UpdatedAt)
	if err == sql.ErrNoRows {
		return order, err
	}
	if err != nil {
		return order, fmt.Errorf("scanning order: %w", err)
	}

	order.Status = domain.OrderStatus(status)
	if len(checkout) > 0 {
		if err := json.Unmarshal(checkout, &order.Checkout); err != nil {
			return order, fmt.Errorf("decoding checkout data: %w", err)
		}
	}

	return order, nil
}

func (r *PostgresOrderRepository) attachItems(ctx context.Context, orders []domain.Order, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		SELECT id, order_id, product_id, product_name, quantity, selected_options, total_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[string][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		var options []byte
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &options, &item.TotalPrice); err != nil {
			return fmt.Errorf("scanning order item: %w", err)
		}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &item.SelectedOptions); err != nil {
				return fmt.Errorf("decoding selected options: %w", err)
			}
		}
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating order items: %w", err)
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}

	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, orderID string, items []domain.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, selected_options, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, item := range items {
		options, err := json.Marshal(item.SelectedOptions)
		if err != nil {
			return fmt.Errorf("encoding selected options: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, orderID, item.ProductID, item.ProductName, item.Quantity, options, item.TotalPrice); err != nil {
			return fmt.Errorf("inserting order item: %w", err)
		}
	}

	return nil
}
