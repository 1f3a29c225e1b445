// Package sql backs the catalog store with Postgres: the same three tables
// the spreadsheet adapter reads, with an internal sequence column preserving
// source row order.
package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/acryfusion/storefront/internal/model"
	"github.com/acryfusion/storefront/internal/store"
)

// CatalogStore implements store.Store on a Postgres database.
type CatalogStore struct {
	db *sql.DB
}

// NewCatalogStore creates a CatalogStore over an open database handle.
func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

const productColumns = `product_id, product_name, product_title, product_description,
	details, tags, pointers, category, specs_info, specs_image_path,
	how_to_video_link, video_image_path, how_to_schematic_file, schematic_image_path`

// Products returns all product rows in insertion order.
func (s *CatalogStore) Products(ctx context.Context) ([]model.ProductRow, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY seq`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.ProductRow
	for rows.Next() {
		var p model.ProductRow
		err := rows.Scan(
			&p.ProductID, &p.ProductName, &p.ProductTitle, &p.ProductDesc,
			&p.Details, &p.Tags, &p.Pointers, &p.Category,
			&p.SpecsInfo, &p.SpecsImagePath, &p.HowToVideoLink, &p.VideoImagePath,
			&p.HowToSchematic, &p.SchematicImgPath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

// Images returns all image rows in insertion order.
func (s *CatalogStore) Images(ctx context.Context) ([]model.ImageRow, error) {
	query := `SELECT file_id, product_id, image_path, label, description FROM images ORDER BY seq`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []model.ImageRow
	for rows.Next() {
		var img model.ImageRow
		err := rows.Scan(&img.FileID, &img.ProductID, &img.ImagePath, &img.Label, &img.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}
		images = append(images, img)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return images, nil
}

// Options returns all option rows in insertion order. The normalizer depends
// on this order: the first row of a (group_name, name) pair sets the group
// metadata.
func (s *CatalogStore) Options(ctx context.Context) ([]model.OptionRow, error) {
	query := `SELECT product_id, group_name, name, size, price, stock, in_stock, image_path
	          FROM options ORDER BY seq`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	var options []model.OptionRow
	for rows.Next() {
		var opt model.OptionRow
		err := rows.Scan(
			&opt.ProductID, &opt.GroupName, &opt.Name, &opt.Size,
			&opt.Price, &opt.Stock, &opt.InStock, &opt.ImagePath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan option row: %w", err)
		}
		options = append(options, opt)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return options, nil
}

// AppendProduct inserts a new product row.
func (s *CatalogStore) AppendProduct(ctx context.Context, row model.ProductRow) error {
	query := `INSERT INTO products (` + productColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		row.ProductID, row.ProductName, row.ProductTitle, row.ProductDesc,
		row.Details, row.Tags, row.Pointers, row.Category,
		row.SpecsInfo, row.SpecsImagePath, row.HowToVideoLink, row.VideoImagePath,
		row.HowToSchematic, row.SchematicImgPath,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// UpdateProduct overwrites the row matching row.ProductID.
func (s *CatalogStore) UpdateProduct(ctx context.Context, row model.ProductRow) error {
	query := `UPDATE products SET
	            product_name = $2, product_title = $3, product_description = $4,
	            details = $5, tags = $6, pointers = $7, category = $8,
	            specs_info = $9, specs_image_path = $10, how_to_video_link = $11,
	            video_image_path = $12, how_to_schematic_file = $13, schematic_image_path = $14
	          WHERE product_id = $1`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		row.ProductID, row.ProductName, row.ProductTitle, row.ProductDesc,
		row.Details, row.Tags, row.Pointers, row.Category,
		row.SpecsInfo, row.SpecsImagePath, row.HowToVideoLink, row.VideoImagePath,
		row.HowToSchematic, row.SchematicImgPath,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

// DeleteProduct removes the row with the given product id.
func (s *CatalogStore) DeleteProduct(ctx context.Context, productID string) error {
	query := `DELETE FROM products WHERE product_id = $1`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}

// AppendImage inserts a new image row.
func (s *CatalogStore) AppendImage(ctx context.Context, row model.ImageRow) error {
	query := `INSERT INTO images (file_id, product_id, image_path, label, description)
	          VALUES ($1, $2, $3, $4, $5)`

	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, row.FileID, row.ProductID, row.ImagePath, row.Label, row.Description)
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}

	return nil
}
