package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"promowatch/internal/db"
	"promowatch/internal/model"
)

// PgxRepository writes snapshots over a native pgx pool.
type PgxRepository struct {
	DB *pgxpool.Pool
}

func (r *PgxRepository) Save(ctx context.Context, p model.Product) (int64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, db.Rebind(db.Postgres, insertProduct), productArgs(p)...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product %d: %w", p.ProductID, err)
	}

	if len(p.Promotions) > 0 {
		batch := &pgx.Batch{}
		query := db.Rebind(db.Postgres, insertPromotion)
		for _, promo := range p.Promotions {
			batch.Queue(query, promotionArgs(id, promo)...)
		}
		br := tx.SendBatch(ctx, batch)
		for i := range p.Promotions {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return 0, fmt.Errorf("insert promotion %d of product %d: %w", i, p.ProductID, err)
			}
		}
		if err := br.Close(); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}
