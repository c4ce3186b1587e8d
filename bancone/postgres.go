package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taldoflemis/veggie-delight/preorder"
	"github.com/taldoflemis/veggie-delight/verdura"
)

const uniqueViolationCode = "23505"

const ordersSchema = `
CREATE TABLE IF NOT EXISTS orders (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	order_type TEXT NOT NULL,
	address TEXT,
	pickup_time TIMESTAMP WITH TIME ZONE NOT NULL,
	dietary_restrictions TEXT[],
	special_instructions TEXT,
	items JSONB NOT NULL,
	total BIGINT NOT NULL,
	order_number TEXT NOT NULL UNIQUE,
	order_date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	estimated_time TIMESTAMP WITH TIME ZONE
)`

// PostgresOrderStore persists orders in Postgres. Uniqueness of the order
// number is enforced by the table constraint; a collision triggers a retry
// with a fresh number.
type PostgresOrderStore struct {
	pool *pgxpool.Pool
	gen  *verdura.OrderNumberGenerator
}

var _ OrderStore = (*PostgresOrderStore)(nil)

func NewPostgresOrderStore(pool *pgxpool.Pool, gen *verdura.OrderNumberGenerator) *PostgresOrderStore {
	return &PostgresOrderStore{pool: pool, gen: gen}
}

// EnsureSchema creates the orders table when missing.
func (s *PostgresOrderStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, ordersSchema); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}

// CreateOrder implements OrderStore.
func (s *PostgresOrderStore) CreateOrder(ctx context.Context, draft preorder.OrderDraft) (*preorder.SubmittedOrder, error) {
	items, err := json.Marshal(draft.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items snapshot: %w", err)
	}

	estimated := draft.EstimatedReadyTime()

	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		orderNumber := s.gen.Next()

		order := preorder.SubmittedOrder{
			OrderNumber:         orderNumber,
			Name:                draft.Contact.Name,
			Email:               draft.Contact.Email,
			Phone:               draft.Contact.Phone,
			OrderType:           draft.Contact.OrderType,
			Address:             draft.Contact.Address,
			PickupTime:          draft.Contact.RequestedTime,
			DietaryRestrictions: draft.Contact.DietaryRestrictions,
			SpecialInstructions: draft.Contact.SpecialInstructions,
			Items:               draft.Items,
			Total:               draft.Total,
			EstimatedTime:       estimated,
		}

		row := s.pool.QueryRow(ctx,
			`INSERT INTO orders
				(name, email, phone, order_type, address, pickup_time,
				 dietary_restrictions, special_instructions, items, total,
				 order_number, estimated_time)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 RETURNING id, order_date`,
			order.Name, order.Email, order.Phone, string(order.OrderType),
			order.Address, order.PickupTime, order.DietaryRestrictions,
			order.SpecialInstructions, items, order.Total,
			order.OrderNumber, order.EstimatedTime,
		)

		err := row.Scan(&order.ID, &order.OrderDate)
		if err == nil {
			return &order, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			slog.WarnContext(ctx, "order number collision, retrying",
				slog.String("order_number", orderNumber),
				slog.Int("attempt", attempt+1),
			)
			continue
		}

		return nil, fmt.Errorf("insert order: %w", err)
	}

	return nil, errOrderNumbersExhausted
}

// GetOrderByNumber implements OrderStore.
func (s *PostgresOrderStore) GetOrderByNumber(ctx context.Context, orderNumber string) (*preorder.SubmittedOrder, bool, error) {
	var (
		order     preorder.SubmittedOrder
		orderType string
		items     []byte
	)

	row := s.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, order_type, address, pickup_time,
		        dietary_restrictions, special_instructions, items, total,
		        order_number, order_date, estimated_time
		 FROM orders WHERE order_number = $1`,
		orderNumber,
	)

	err := row.Scan(
		&order.ID, &order.Name, &order.Email, &order.Phone, &orderType,
		&order.Address, &order.PickupTime, &order.DietaryRestrictions,
		&order.SpecialInstructions, &items, &order.Total,
		&order.OrderNumber, &order.OrderDate, &order.EstimatedTime,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select order by number: %w", err)
	}

	order.OrderType = preorder.OrderType(orderType)
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, false, fmt.Errorf("decode items snapshot: %w", err)
	}

	return &order, true, nil
}
