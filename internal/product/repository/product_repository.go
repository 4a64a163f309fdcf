package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"storeadmin/internal/domain"
	"storeadmin/internal/errors"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, category, is_published, labels, created_at, updated_at
		FROM products
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	var ids []int64
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
		ids = append(ids, int64(product.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	if err := r.attachChildren(ctx, products, ids); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *PostgresProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `
		SELECT id, name, price, category, is_published, labels, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}
	if err != nil {
		return nil, err
	}

	products := []domain.Product{product}
	if err := r.attachChildren(ctx, products, []int64{int64(id)}); err != nil {
		return nil, err
	}

	return &products[0], nil
}

func (r *PostgresProductRepository) Insert(ctx context.Context, product *domain.Product) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (name, price, category, is_published, labels)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int
	err = tx.QueryRowContext(ctx, query,
		product.Name, product.Price, product.Category, product.IsPublished, pq.Array(product.Labels),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting product: %w", err)
	}

	if err := insertChildren(ctx, tx, id, product); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Update replaces the product row and all of its child rows wholesale,
// the way the product editor saves: images, description blocks and
// variants are deleted and reinserted from the submitted document.
func (r *PostgresProductRepository) Update(ctx context.Context, product *domain.Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE products
		SET name = $1, price = $2, category = $3, is_published = $4, labels = $5, updated_at = NOW()
		WHERE id = $6
	`
	result, err := tx.ExecContext(ctx, query,
		product.Name, product.Price, product.Category, product.IsPublished, pq.Array(product.Labels), product.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", product.ID))
	}

	if err := deleteChildren(ctx, tx, product.ID); err != nil {
		return err
	}
	if err := insertChildren(ctx, tx, product.ID, product); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteChildren(ctx, tx, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %d not found", id))
	}

	return tx.Commit()
}

// DetachCategory clears the soft category reference on every product
// that names the given category. Returns how many rows were touched.
func (r *PostgresProductRepository) DetachCategory(ctx context.Context, categoryName string) (int64, error) {
	query := `UPDATE products SET category = '', updated_at = NOW() WHERE category = $1`

	result, err := r.db.ExecContext(ctx, query, categoryName)
	if err != nil {
		return 0, fmt.Errorf("detaching products from category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}

	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var product domain.Product

	err := row.Scan(
		&product.ID, &product.Name, &product.Price, &product.Category,
		&product.IsPublished, pq.Array(&product.Labels), &product.CreatedAt, &product.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return product, err
	}
	if err != nil {
		return product, fmt.Errorf("scanning product: %w", err)
	}

	return product, nil
}

func (r *PostgresProductRepository) attachChildren(ctx context.Context, products []domain.Product, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	images, err := r.fetchImages(ctx, ids)
	if err != nil {
		return err
	}
	descriptions, err := r.fetchDescriptions(ctx, ids)
	if err != nil {
		return err
	}
	variants, err := r.fetchVariants(ctx, ids)
	if err != nil {
		return err
	}

	for i := range products {
		id := products[i].ID
		products[i].Images = images[id]
		products[i].Descriptions = descriptions[id]
		products[i].Variants = variants[id]
	}

	return nil
}

func (r *PostgresProductRepository) fetchImages(ctx context.Context, ids []int64) (map[int][]domain.ProductImage, error) {
	query := `
		SELECT id, product_id, url, position
		FROM productimages
		WHERE product_id = ANY($1)
		ORDER BY product_id, position
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("querying product images: %w", err)
	}
	defer rows.Close()

	byProduct := make(map[int][]domain.ProductImage)
	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Position); err != nil {
			return nil, fmt.Errorf("scanning product image: %w", err)
		}
		byProduct[img.ProductID] = append(byProduct[img.ProductID], img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product images: %w", err)
	}

	return byProduct, nil
}

func (r *PostgresProductRepository) fetchDescriptions(ctx context.Context, ids []int64) (map[int][]domain.DescriptionBlock, error) {
	query := `
		SELECT id, product_id, title, content, position
		FROM productdescriptions
		WHERE product_id = ANY($1)
		ORDER BY product_id, position
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("querying product descriptions: %w", err)
	}
	defer rows.Close()

	byProduct := make(map[int][]domain.DescriptionBlock)
	for rows.Next() {
		var block domain.DescriptionBlock
		if err := rows.Scan(&block.ID, &block.ProductID, &block.Title, &block.Content, &block.Position); err != nil {
			return nil, fmt.Errorf("scanning product description: %w", err)
		}
		byProduct[block.ProductID] = append(byProduct[block.ProductID], block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product descriptions: %w", err)
	}

	return byProduct, nil
}

func (r *PostgresProductRepository) fetchVariants(ctx context.Context, ids []int64) (map[int][]domain.Variant, error) {
	query := `
		SELECT id, product_id, name
		FROM productvariants
		WHERE product_id = ANY($1)
		ORDER BY product_id, id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("querying product variants: %w", err)
	}
	defer rows.Close()

	byProduct := make(map[int][]domain.Variant)
	var variantIDs []int64
	index := make(map[int]*domain.Variant)
	for rows.Next() {
		var v domain.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name); err != nil {
			return nil, fmt.Errorf("scanning product variant: %w", err)
		}
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
		variantIDs = append(variantIDs, int64(v.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product variants: %w", err)
	}

	for productID := range byProduct {
		variants := byProduct[productID]
		for i := range variants {
			index[variants[i].ID] = &variants[i]
		}
	}

	if len(variantIDs) == 0 {
		return byProduct, nil
	}

	optQuery := `
		SELECT id, variant_id, name, price, is_published, out_of_stock, is_default
		FROM productvariantoptions
		WHERE variant_id = ANY($1)
		ORDER BY variant_id, id
	`
	optRows, err := r.db.QueryContext(ctx, optQuery, pq.Array(variantIDs))
	if err != nil {
		return nil, fmt.Errorf("querying variant options: %w", err)
	}
	defer optRows.Close()

	for optRows.Next() {
		var opt domain.VariantOption
		if err := optRows.Scan(&opt.ID, &opt.VariantID, &opt.Name, &opt.Price, &opt.IsPublished, &opt.OutOfStock, &opt.IsDefault); err != nil {
			return nil, fmt.Errorf("scanning variant option: %w", err)
		}
		if v, ok := index[opt.VariantID]; ok {
			v.Options = append(v.Options, opt)
		}
	}
	if err := optRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating variant options: %w", err)
	}

	return byProduct, nil
}

func deleteChildren(ctx context.Context, tx *sql.Tx, productID int) error {
	queries := []string{
		`DELETE FROM productvariantoptions WHERE variant_id IN (SELECT id FROM productvariants WHERE product_id = $1)`,
		`DELETE FROM productvariants WHERE product_id = $1`,
		`DELETE FROM productdescriptions WHERE product_id = $1`,
		`DELETE FROM productimages WHERE product_id = $1`,
	}

	for _, q := range queries {
		if _, err := tx.ExecContext(ctx, q, productID); err != nil {
			return fmt.Errorf("clearing product children: %w", err)
		}
	}

	return nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, productID int, product *domain.Product) error {
	for _, img := range product.Images {
		query := `INSERT INTO productimages (product_id, url, position) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, query, productID, img.URL, img.Position); err != nil {
			return fmt.Errorf("inserting product image: %w", err)
		}
	}

	for _, block := range product.Descriptions {
		query := `INSERT INTO productdescriptions (product_id, title, content, position) VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(ctx, query, productID, block.Title, block.Content, block.Position); err != nil {
			return fmt.Errorf("inserting product description: %w", err)
		}
	}

	for _, variant := range product.Variants {
		var variantID int
		query := `INSERT INTO productvariants (product_id, name) VALUES ($1, $2) RETURNING id`
		if err := tx.QueryRowContext(ctx, query, productID, variant.Name).Scan(&variantID); err != nil {
			return fmt.Errorf("inserting product variant: %w", err)
		}
		for _, opt := range variant.Options {
			optQuery := `
				INSERT INTO productvariantoptions (variant_id, name, price, is_published, out_of_stock, is_default)
				VALUES ($1, $2, $3, $4, $5, $6)
			`
			if _, err := tx.ExecContext(ctx, optQuery, variantID, opt.Name, opt.Price, opt.IsPublished, opt.OutOfStock, opt.IsDefault); err != nil {
				return fmt.Errorf("inserting variant option: %w", err)
			}
		}
	}

	return nil
}
