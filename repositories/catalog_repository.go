package repositories

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/catalog"
	"storefront/models"
)

// CatalogRepository reads the catalog seed. With no pool it serves the
// catalog embedded in the binary.
type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// LoadIndex builds the process-wide catalog index. An empty database is
// filled from the embedded seed first.
func (r *CatalogRepository) LoadIndex(ctx context.Context) (*catalog.Index, error) {
	if r.db == nil {
		return catalog.NewSeedIndex()
	}

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	if count == 0 {
		seed, err := catalog.LoadSeed()
		if err != nil {
			return nil, err
		}
		if err := r.InsertSeed(ctx, seed); err != nil {
			return nil, err
		}
		log.Printf("Catalog table empty, inserted %d products from embedded seed", len(seed.Products))
	}

	categories, err := r.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	products, err := r.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("Catalog loaded from database: %d products, %d categories", len(products), len(categories))
	return catalog.NewIndex(products, categories)
}

func (r *CatalogRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, slug, image, description FROM categories ORDER BY position`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Image, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CatalogRepository) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, price, category, subcategory, color, color_hex, sizes, images,
	          description, material, model_info, complete_the_look, is_new, is_restocked, is_sold_out
	          FROM products ORDER BY position`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Price, &p.Category, &p.Subcategory, &p.Color, &p.ColorHex,
			&p.Sizes, &p.Images, &p.Description, &p.Material, &p.ModelInfo, &p.CompleteTheLook,
			&p.IsNew, &p.IsRestocked, &p.IsSoldOut,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// InsertSeed writes the seed in one transaction, keeping its order in the
// position column.
func (r *CatalogRepository) InsertSeed(ctx context.Context, seed *catalog.Seed) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i, c := range seed.Categories {
		batch.Queue(`INSERT INTO categories (id, name, slug, image, description, position)
			VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name, c.Slug, c.Image, c.Description, i)
	}
	for i, p := range seed.Products {
		batch.Queue(`INSERT INTO products (id, name, price, category, subcategory, color, color_hex, sizes,
			images, description, material, model_info, complete_the_look, is_new, is_restocked, is_sold_out, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.Price, p.Category, p.Subcategory, p.Color, p.ColorHex, p.Sizes,
			p.Images, p.Description, p.Material, p.ModelInfo, p.CompleteTheLook,
			p.IsNew, p.IsRestocked, p.IsSoldOut, i)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert catalog seed: %w", err)
	}
	return tx.Commit(ctx)
}
