package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated is a Prometheus counter for tracking the total number of products updated.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_updated_total",
		Help: "The total number of products updated",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_deleted_total",
		Help: "The total number of products deleted",
	})

	// ImagesUploaded is a Prometheus counter for tracking the total number of images uploaded.
	ImagesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_images_uploaded_total",
		Help: "The total number of product images uploaded",
	})

	// CacheHits counts product listings served from the Redis cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "The total number of product listings served from cache",
	})

	// CacheMisses counts product listings that fell through to the row store.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "The total number of product listings fetched from the row store",
	})
)
