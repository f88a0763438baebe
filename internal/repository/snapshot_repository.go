package repository

import (
	"context"
	"database/sql"
	"fmt"

	"promowatch/internal/db"
	"promowatch/internal/model"
)

// SnapshotStore persists one product snapshot and its promotions.
type SnapshotStore interface {
	Save(ctx context.Context, p model.Product) (int64, error)
}

// Snapshot is a stored product row.
type Snapshot struct {
	ID      int64
	Product model.Product
}

const productColumns = `product_id, title, brand, color, time_recorded_utc, time_recorded_gmt_minus_6,
	last_modified_time, creation_date, max_promo_price, min_promo_price, max_list_price, min_list_price,
	discount_percentage, promo_price, sale_price, list_price, sort_price, last_modified_by_whom,
	rating_average, rating_count`

const promotionColumns = `months, promo_type, promo_desc, min_purchase_amount, min_purchase_unit,
	discount_unit, discount_amount, promo_code, item_price, monthly_price, final_price,
	final_price_distance, different_price`

var (
	insertProduct = `INSERT INTO products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`
	insertPromotion = `INSERT INTO promotions (products_id, ` + promotionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

func productArgs(p model.Product) []any {
	return []any{
		p.ProductID, p.Title, p.Brand, p.Color, p.TimeRecordedUTC, p.TimeRecordedGMTMinus6,
		p.LastModifiedTime, p.CreationDate, p.MaxPromoPrice, p.MinPromoPrice, p.MaxListPrice, p.MinListPrice,
		p.DiscountPercentage, p.PromoPrice, p.SalePrice, p.ListPrice, p.SortPrice, p.LastModifiedByWhom,
		p.RatingAverage, p.RatingCount,
	}
}

func promotionArgs(productsID int64, p model.Promotion) []any {
	return []any{
		productsID, p.Months, p.PromoType, p.PromoDesc, p.MinPurchaseAmount, p.MinPurchaseUnit,
		p.DiscountUnit, p.DiscountAmount, p.PromoCode, p.ItemPrice, p.MonthlyPrice, p.FinalPrice,
		p.FinalPriceDistance, p.DifferentPrice,
	}
}

// SQLRepository stores snapshots through database/sql. It serves SQLite,
// libSQL and Postgres (lib/pq) connections.
type SQLRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func (r *SQLRepository) Save(ctx context.Context, p model.Product) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, db.Rebind(r.Dialect, insertProduct), productArgs(p)...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product %d: %w", p.ProductID, err)
	}

	stmt, err := tx.PrepareContext(ctx, db.Rebind(r.Dialect, insertPromotion))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, promo := range p.Promotions {
		if _, err := stmt.ExecContext(ctx, promotionArgs(id, promo)...); err != nil {
			return 0, fmt.Errorf("insert promotion %d of product %d: %w", i, p.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// History lists the most recent snapshots first. productID 0 means every
// product; limit <= 0 means no limit.
func (r *SQLRepository) History(ctx context.Context, productID uint64, limit int) ([]Snapshot, error) {
	query := `SELECT id, ` + productColumns + ` FROM products`
	var args []any
	if productID != 0 {
		query += ` WHERE product_id = ?`
		args = append(args, productID)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, db.Rebind(r.Dialect, query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Snapshot
	for rows.Next() {
		var s Snapshot
		p := &s.Product
		err := rows.Scan(
			&s.ID, &p.ProductID, &p.Title, &p.Brand, &p.Color, &p.TimeRecordedUTC, &p.TimeRecordedGMTMinus6,
			&p.LastModifiedTime, &p.CreationDate, &p.MaxPromoPrice, &p.MinPromoPrice, &p.MaxListPrice, &p.MinListPrice,
			&p.DiscountPercentage, &p.PromoPrice, &p.SalePrice, &p.ListPrice, &p.SortPrice, &p.LastModifiedByWhom,
			&p.RatingAverage, &p.RatingCount,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range list {
		promos, err := r.Promotions(ctx, list[i].ID)
		if err != nil {
			return nil, err
		}
		list[i].Product.Promotions = promos
	}
	return list, nil
}

// Promotions returns the promotions stored for one snapshot, in insertion order.
func (r *SQLRepository) Promotions(ctx context.Context, snapshotID int64) ([]model.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE products_id = ? ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, db.Rebind(r.Dialect, query), snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Promotion{}
	for rows.Next() {
		var p model.Promotion
		err := rows.Scan(
			&p.Months, &p.PromoType, &p.PromoDesc, &p.MinPurchaseAmount, &p.MinPurchaseUnit,
			&p.DiscountUnit, &p.DiscountAmount, &p.PromoCode, &p.ItemPrice, &p.MonthlyPrice, &p.FinalPrice,
			&p.FinalPriceDistance, &p.DifferentPrice,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
