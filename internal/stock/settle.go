// Package stock settles quantity changes against the product catalog and
// derives low-stock notifications from it. Settlement never mutates its
// input: it returns a structurally copied catalog so that order snapshots
// and other prior references stay valid.
package stock

import (
	"errors"
	"fmt"

	"mokha/internal/domain"
)

// OpKind discriminates the settlement operations.
type OpKind int

const (
	// OpDecrement subtracts Qty from the stock level (checkout).
	OpDecrement OpKind = iota
	// OpSet overwrites the stock level with Qty (admin bulk edit).
	OpSet
	// OpDelete removes a variant, or the whole product when VariantID is
	// empty (admin bulk delete).
	OpDelete
)

// Op is one settlement operation keyed by product and optional variant.
type Op struct {
	Kind      OpKind
	ProductID int64
	VariantID string
	Qty       int64
}

// Strict-mode failures.
var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrUnknownVariant = errors.New("unknown variant")
	ErrInsufficient   = errors.New("insufficient stock")
)

// Settler applies settlement batches. The zero value is tolerant: unknown
// product or variant ids are silent no-ops and decrements may drive stock
// negative, matching how stale snapshots have always been handled. Strict
// mode instead fails the whole batch on a dangling id or an oversell, and
// leaves the caller's catalog untouched either way.
type Settler struct {
	Strict bool
}

// Apply runs all operations against a copy of the catalog and returns it.
// Whole-product deletions are collected as a set and applied after every
// variant-level removal, so they take precedence over variant deletes for
// the same product in the same batch.
func (s Settler) Apply(catalog []domain.Product, ops []Op) ([]domain.Product, error) {
	next := domain.CloneCatalog(catalog)
	productDeletions := make(map[int64]bool)

	for _, op := range ops {
		if op.Kind == OpDelete && op.VariantID == "" {
			productDeletions[op.ProductID] = true
			continue
		}

		product := findProduct(next, op.ProductID)
		if product == nil {
			if s.Strict {
				return nil, fmt.Errorf("%w: %d", ErrUnknownProduct, op.ProductID)
			}
			continue
		}

		if op.Kind == OpDelete {
			removed := false
			kept := product.Variants[:0]
			for _, v := range product.Variants {
				if v.ID == op.VariantID {
					removed = true
					continue
				}
				kept = append(kept, v)
			}
			product.Variants = kept
			if !removed && s.Strict {
				return nil, fmt.Errorf("%w: %d/%s", ErrUnknownVariant, op.ProductID, op.VariantID)
			}
			continue
		}

		level := &product.Stock
		if op.VariantID != "" {
			variant := product.FindVariant(op.VariantID)
			if variant == nil {
				if s.Strict {
					return nil, fmt.Errorf("%w: %d/%s", ErrUnknownVariant, op.ProductID, op.VariantID)
				}
				continue
			}
			level = &variant.Stock
		}

		switch op.Kind {
		case OpDecrement:
			if s.Strict && *level < op.Qty {
				return nil, fmt.Errorf("%w: product %d", ErrInsufficient, op.ProductID)
			}
			*level -= op.Qty
		case OpSet:
			*level = op.Qty
		}
	}

	if len(productDeletions) == 0 {
		return next, nil
	}
	if s.Strict {
		for id := range productDeletions {
			if findProduct(next, id) == nil {
				return nil, fmt.Errorf("%w: %d", ErrUnknownProduct, id)
			}
		}
	}
	final := next[:0]
	for _, p := range next {
		if !productDeletions[p.ID] {
			final = append(final, p)
		}
	}
	return final, nil
}

func findProduct(catalog []domain.Product, id int64) *domain.Product {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

// DecrementOps converts a cart into the checkout settlement batch.
func DecrementOps(items []domain.CartItem) []Op {
	ops := make([]Op, 0, len(items))
	for _, item := range items {
		op := Op{Kind: OpDecrement, ProductID: item.Product.ID, Qty: item.Quantity}
		if item.Variant != nil {
			op.VariantID = item.Variant.ID
		}
		ops = append(ops, op)
	}
	return ops
}
