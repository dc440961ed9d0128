package gateway

import (
	"context"
	"fmt"
	"net/url"

	apperrors "finboard/internal/errors"
	"finboard/internal/models"
)

// Entity is a backend record addressed by id.
type Entity interface {
	models.Category | models.Earning | models.Expense | models.Investment | models.Objective
	Key() models.ID
}

// Resource exposes the list/create/update/delete operations of one backend
// collection.
type Resource[T Entity] struct {
	client   *Client
	name     string
	outbound func(T) T
}

// Categories returns the category resource.
func (c *Client) Categories() Resource[models.Category] {
	return Resource[models.Category]{client: c, name: "categories"}
}

// Earnings returns the earning resource.
func (c *Client) Earnings() Resource[models.Earning] {
	return Resource[models.Earning]{client: c, name: "earnings"}
}

// Expenses returns the expense resource. The hydrated category is stripped
// before anything is sent.
func (c *Client) Expenses() Resource[models.Expense] {
	return Resource[models.Expense]{client: c, name: "expenses", outbound: func(e models.Expense) models.Expense {
		e.Category = nil
		return e
	}}
}

// Investments returns the investment resource.
func (c *Client) Investments() Resource[models.Investment] {
	return Resource[models.Investment]{client: c, name: "investments"}
}

// Objectives returns the objective resource.
func (c *Client) Objectives() Resource[models.Objective] {
	return Resource[models.Objective]{client: c, name: "objectives"}
}

// Name returns the backend collection name.
func (r Resource[T]) Name() string { return r.name }

// ListByUser fetches every record owned by userID.
func (r Resource[T]) ListByUser(ctx context.Context, userID models.ID) ([]T, error) {
	if userID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user id is required")
	}
	path := fmt.Sprintf("/%s/user/%s", r.name, url.PathEscape(userID.String()))
	var items []T
	if err := r.client.read(ctx, path, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}
	for i, item := range items {
		if item.Key() == "" {
			return nil, malformed(path, fmt.Sprintf("item %d has no id", i))
		}
	}
	return items, nil
}

// Create registers item and returns the backend's copy, with id and
// creation date assigned.
func (r Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var zero, out T
	path := "/" + r.name
	if err := r.client.create(ctx, path, r.prepare(item), &out); err != nil {
		return zero, err
	}
	if out.Key() == "" {
		return zero, malformed(path, "missing id")
	}
	return out, nil
}

// Update replaces item and returns the backend's canonical copy.
func (r Resource[T]) Update(ctx context.Context, item T) (T, error) {
	var zero, out T
	if item.Key() == "" {
		return zero, apperrors.WithMessage(apperrors.ErrInvalidInput, "id is required")
	}
	path := "/" + r.name
	if err := r.client.update(ctx, path, r.prepare(item), &out); err != nil {
		return zero, err
	}
	if out.Key() == "" {
		return zero, malformed(path, "missing id")
	}
	return out, nil
}

// Delete removes the record with id.
func (r Resource[T]) Delete(ctx context.Context, id models.ID) error {
	if id == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "id is required")
	}
	return r.client.remove(ctx, fmt.Sprintf("/%s/%s", r.name, url.PathEscape(id.String())))
}

func (r Resource[T]) prepare(item T) T {
	if r.outbound != nil {
		return r.outbound(item)
	}
	return item
}
