package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/acryfusion/storefront/internal/asset"
	"github.com/acryfusion/storefront/internal/cache"
	"github.com/acryfusion/storefront/internal/catalog"
	"github.com/acryfusion/storefront/internal/metrics"
	"github.com/acryfusion/storefront/internal/model"
	"github.com/acryfusion/storefront/internal/sqs"
	"github.com/acryfusion/storefront/internal/store"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyQuery is returned when a search is attempted without a query.
	// An empty query is an error, not "match all".
	ErrEmptyQuery = errors.New("search query is required")

	// ErrMissingImagePath is returned when an upload omits the image path.
	ErrMissingImagePath = errors.New("image path is required")
)

// productIDWidth is the fixed width of zero-padded numeric product ids.
const productIDWidth = 6

// CatalogService is the only write surface into the catalog tables. Reads go
// through the row store and the normalizer; writes also invalidate the cache
// and publish change events.
type CatalogService struct {
	rows      store.Store
	assets    asset.Store
	cache     *cache.ProductCache
	publisher *sqs.Publisher
}

// NewCatalogService creates a CatalogService. The cache and publisher are
// optional; nil disables caching and change events respectively.
func NewCatalogService(rows store.Store, assets asset.Store, productCache *cache.ProductCache, publisher *sqs.Publisher) *CatalogService {
	return &CatalogService{
		rows:      rows,
		assets:    assets,
		cache:     productCache,
		publisher: publisher,
	}
}

// ListProducts returns the full normalized catalog, served from cache when
// possible. Cache failures degrade to a direct fetch.
func (cs *CatalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	if cs.cache != nil {
		products, found, err := cs.cache.Get(ctx)
		if err != nil {
			slog.Error("Failed to read product cache, falling back to store", slog.Any("err", err))
		} else if found {
			metrics.CacheHits.Inc()
			return products, nil
		}
		metrics.CacheMisses.Inc()
	}

	products, images, options, err := cs.fetchRows(ctx)
	if err != nil {
		return nil, err
	}
	normalized := catalog.Normalize(products, images, options, asset.ResolveURL)

	if cs.cache != nil {
		if err := cs.cache.Set(ctx, normalized); err != nil {
			slog.Error("Failed to populate product cache", slog.Any("err", err))
		}
	}
	return normalized, nil
}

// GetProduct returns one normalized product, or store.ErrNotFound.
func (cs *CatalogService) GetProduct(ctx context.Context, id string) (model.Product, error) {
	products, images, options, err := cs.fetchRows(ctx)
	if err != nil {
		return model.Product{}, err
	}

	for _, row := range products {
		if row.ProductID == id {
			return catalog.NormalizeProduct(row, images, options, asset.ResolveURL), nil
		}
	}
	return model.Product{}, store.ErrNotFound
}

// SearchProducts returns normalized products whose name, description or
// category contains the query, case-insensitively.
func (cs *CatalogService) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	query = strings.ToLower(query)

	products, images, options, err := cs.fetchRows(ctx)
	if err != nil {
		return nil, err
	}

	var matched []model.ProductRow
	for _, row := range products {
		if strings.Contains(strings.ToLower(row.ProductName), query) ||
			strings.Contains(strings.ToLower(row.ProductDesc), query) ||
			strings.Contains(strings.ToLower(row.Category), query) {
			matched = append(matched, row)
		}
	}

	return catalog.Normalize(matched, images, options, asset.ResolveURL), nil
}

// CreateProduct assigns the next product id and appends the row. The id on
// the incoming row is ignored.
func (cs *CatalogService) CreateProduct(ctx context.Context, row model.ProductRow) (model.Product, error) {
	products, err := cs.rows.Products(ctx)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to list products for id assignment: %w", err)
	}

	row.ProductID = NextProductID(products)
	if err := cs.rows.AppendProduct(ctx, row); err != nil {
		return model.Product{}, err
	}

	metrics.ProductsCreated.Inc()
	cs.invalidateCache(ctx)
	cs.publish(ctx, sqs.CatalogMessage{
		Action:    sqs.ActionCreated,
		ProductID: row.ProductID,
		Name:      row.ProductName,
	})

	// A new product has no image or option rows yet.
	return catalog.NormalizeProduct(row, nil, nil, asset.ResolveURL), nil
}

// UpdateProduct overwrites the product row with the given id. The image and
// option rows are fetched before the write so that once the update commits,
// nothing can fail the call and misreport a completed write.
func (cs *CatalogService) UpdateProduct(ctx context.Context, id string, row model.ProductRow) (model.Product, error) {
	_, images, options, err := cs.fetchRows(ctx)
	if err != nil {
		return model.Product{}, err
	}

	row.ProductID = id
	if err := cs.rows.UpdateProduct(ctx, row); err != nil {
		return model.Product{}, err
	}

	metrics.ProductsUpdated.Inc()
	cs.invalidateCache(ctx)
	cs.publish(ctx, sqs.CatalogMessage{
		Action:    sqs.ActionUpdated,
		ProductID: id,
		Name:      row.ProductName,
	})

	return catalog.NormalizeProduct(row, images, options, asset.ResolveURL), nil
}

// DeleteProduct removes the product row with the given id.
func (cs *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	// Find the product first to get its name for the change event.
	products, err := cs.rows.Products(ctx)
	if err != nil {
		return err
	}
	var name string
	found := false
	for _, row := range products {
		if row.ProductID == id {
			name = row.ProductName
			found = true
			break
		}
	}
	if !found {
		return store.ErrNotFound
	}

	if err := cs.rows.DeleteProduct(ctx, id); err != nil {
		return err
	}

	metrics.ProductsDeleted.Inc()
	cs.invalidateCache(ctx)
	cs.publish(ctx, sqs.CatalogMessage{
		Action:    sqs.ActionDeleted,
		ProductID: id,
		Name:      name,
	})
	return nil
}

// UploadInput describes one image upload.
type UploadInput struct {
	FileName    string
	ContentType string
	ImagePath   string
	ProductID   string
	Content     io.Reader
}

// UploadResult echoes what was stored and recorded.
type UploadResult struct {
	FileID    string `json:"fileId"`
	Name      string `json:"name"`
	ImagePath string `json:"imagePath"`
	ProductID string `json:"productId"`
}

// UploadImage stores the bytes and records an image row. If recording the
// row fails the stored blob is deleted best-effort and no ImageRow exists —
// the caller must not assume the asset was kept.
func (cs *CatalogService) UploadImage(ctx context.Context, in UploadInput) (UploadResult, error) {
	if in.ImagePath == "" {
		return UploadResult{}, ErrMissingImagePath
	}

	stored, err := cs.assets.Put(ctx, in.FileName, in.ContentType, in.Content)
	if err != nil {
		return UploadResult{}, fmt.Errorf("failed to store asset: %w", err)
	}

	row := model.ImageRow{
		FileID:    stored.FileID,
		ProductID: in.ProductID,
		ImagePath: in.ImagePath,
		Label:     in.FileName,
	}
	if err := cs.rows.AppendImage(ctx, row); err != nil {
		if delErr := cs.assets.Delete(ctx, stored.FileID); delErr != nil {
			slog.Error("Failed to roll back stored asset",
				slog.String("file_id", stored.FileID),
				slog.Any("err", delErr))
		}
		return UploadResult{}, fmt.Errorf("failed to record image row: %w", err)
	}

	metrics.ImagesUploaded.Inc()
	cs.invalidateCache(ctx)
	cs.publish(ctx, sqs.CatalogMessage{
		Action:    sqs.ActionImageUploaded,
		ProductID: in.ProductID,
		Name:      stored.Name,
	})

	return UploadResult{
		FileID:    stored.FileID,
		Name:      stored.Name,
		ImagePath: in.ImagePath,
		ProductID: in.ProductID,
	}, nil
}

// OpenImage streams an asset by file id along with its content type.
func (cs *CatalogService) OpenImage(ctx context.Context, fileID string) (io.ReadCloser, string, error) {
	return cs.assets.Open(ctx, fileID)
}

// fetchRows reads the three tables concurrently and joins before returning.
// Normalization is order-independent across the sources, so this is purely a
// latency optimization.
func (cs *CatalogService) fetchRows(ctx context.Context) ([]model.ProductRow, []model.ImageRow, []model.OptionRow, error) {
	var (
		products []model.ProductRow
		images   []model.ImageRow
		options  []model.OptionRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = cs.rows.Products(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		images, err = cs.rows.Images(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		options, err = cs.rows.Options(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch catalog rows: %w", err)
	}
	return products, images, options, nil
}

func (cs *CatalogService) invalidateCache(ctx context.Context) {
	if cs.cache == nil {
		return
	}
	if err := cs.cache.Invalidate(ctx); err != nil {
		slog.Error("Failed to invalidate product cache", slog.Any("err", err))
	}
}

func (cs *CatalogService) publish(ctx context.Context, msg sqs.CatalogMessage) {
	if cs.publisher == nil {
		return
	}
	if err := cs.publisher.PublishCatalogMessage(ctx, msg); err != nil {
		// Log error but don't fail the request
		slog.Error("Failed to send SQS message",
			slog.Any("err", err),
			slog.String("action", msg.Action),
			slog.String("product_id", msg.ProductID))
	}
}

// NextProductID returns the next fixed-width numeric product id: one past the
// largest numeric id currently in use. Non-numeric ids are ignored.
func NextProductID(products []model.ProductRow) string {
	maxID := 0
	for _, row := range products {
		n, err := strconv.Atoi(row.ProductID)
		if err != nil {
			continue
		}
		if n > maxID {
			maxID = n
		}
	}
	return fmt.Sprintf("%0*d", productIDWidth, maxID+1)
}
