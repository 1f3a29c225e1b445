// Package catalog turns the three flat catalog tables into the nested product
// records the storefront renders. Normalization is pure: its only effect is
// resolving asset file ids into fetchable URLs through the supplied resolver.
package catalog

import (
	"math"
	"path"
	"strconv"
	"strings"

	"github.com/acryfusion/storefront/internal/model"
)

// URLResolver maps an asset file id to a fetchable URL. An empty file id must
// resolve to an empty string.
type URLResolver func(fileID string) string

// Normalize assembles one normalized Product per product row. Malformed rows
// never abort the batch: an unparsable price becomes NaN, an unparsable or
// negative stock becomes 0, and option or image rows referencing an unknown
// product id are simply never matched.
func Normalize(products []model.ProductRow, images []model.ImageRow, options []model.OptionRow, resolve URLResolver) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, row := range products {
		out = append(out, normalizeProduct(row, images, options, resolve))
	}
	return out
}

// NormalizeProduct assembles a single product from its row and the full image
// and option row sets.
func NormalizeProduct(product model.ProductRow, images []model.ImageRow, options []model.OptionRow, resolve URLResolver) model.Product {
	return normalizeProduct(product, images, options, resolve)
}

func normalizeProduct(product model.ProductRow, images []model.ImageRow, options []model.OptionRow, resolve URLResolver) model.Product {
	return model.Product{
		ID:          product.ProductID,
		Name:        product.ProductName,
		Title:       product.ProductTitle,
		Description: product.ProductDesc,
		Details:     product.Details,
		Tags:        SplitList(product.Tags),
		Pointers:    SplitList(product.Pointers),
		Category:    product.Category,
		HeroImage:   heroImage(product, images, resolve),
		Specs:       specs(product, images, resolve),
		HowTo:       howTo(product, images, resolve),
		Options:     optionGroups(product.ProductID, images, options, resolve),
	}
}

// SplitList splits a comma-separated cell into its ordered elements, trimming
// whitespace around each. Empty elements are kept: a trailing comma yields a
// trailing "" entry. An empty cell yields an empty list.
func SplitList(cell string) []string {
	if cell == "" {
		return []string{}
	}
	parts := strings.Split(cell, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// heroImage finds the image row with no image path for this product. A
// missing hero degrades to an empty URL.
func heroImage(product model.ProductRow, images []model.ImageRow, resolve URLResolver) model.HeroImage {
	hero := model.HeroImage{Alt: product.ProductName}
	for _, img := range images {
		if img.ProductID == product.ProductID && img.ImagePath == "" {
			hero.URL = resolve(img.FileID)
			break
		}
	}
	return hero
}

func specs(product model.ProductRow, images []model.ImageRow, resolve URLResolver) model.Specs {
	s := model.Specs{
		Info:   SplitList(product.SpecsInfo),
		Images: []model.SpecsImage{},
	}
	if product.SpecsImagePath == "" {
		return s
	}
	for _, img := range images {
		if img.ProductID == product.ProductID && img.ImagePath == product.SpecsImagePath {
			s.Images = append(s.Images, model.SpecsImage{
				URL:   resolve(img.FileID),
				Alt:   img.Label,
				Label: img.Label,
			})
		}
	}
	return s
}

func howTo(product model.ProductRow, images []model.ImageRow, resolve URLResolver) model.HowTo {
	h := model.HowTo{
		Video: model.HowToVideo{
			Link: product.HowToVideoLink,
			URL:  resolve(findImageByPath(images, product.ProductID, product.VideoImagePath)),
		},
		Schematic: model.HowToSchematic{
			Link: product.HowToSchematic,
			URL:  resolve(findImageByPath(images, product.ProductID, product.SchematicImgPath)),
		},
	}
	if h.Schematic.Link != "" {
		h.Schematic.Name = path.Base(h.Schematic.Link)
	}
	return h
}

// findImageByPath returns the file id of the first image row matching the
// given path. An empty path matches nothing: the hero image is keyed by an
// empty path, and the video/schematic lookups must not leak it.
func findImageByPath(images []model.ImageRow, productID, imagePath string) string {
	if imagePath == "" {
		return ""
	}
	for _, img := range images {
		if img.ProductID == productID && img.ImagePath == imagePath {
			return img.FileID
		}
	}
	return ""
}

// optionGroups folds option rows in source order into groups keyed by
// (GroupName, Name). The first row of a group sets its metadata (stock flag
// and images); every row contributes one size entry.
func optionGroups(productID string, images []model.ImageRow, options []model.OptionRow, resolve URLResolver) []model.Option {
	groups := []model.Option{}
	index := map[[2]string]int{}

	for _, opt := range options {
		if opt.ProductID != productID {
			continue
		}
		size := model.Size{
			Name:  opt.Size,
			Price: parsePrice(opt.Price),
			Stock: parseStock(opt.Stock),
		}
		key := [2]string{opt.GroupName, opt.Name}
		if i, ok := index[key]; ok {
			groups[i].Sizes = append(groups[i].Sizes, size)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, model.Option{
			GroupName: opt.GroupName,
			Name:      opt.Name,
			Sizes:     []model.Size{size},
			InStock:   opt.InStock == "true",
			Images:    optionImages(images, productID, opt.ImagePath, resolve),
		})
	}
	return groups
}

func optionImages(images []model.ImageRow, productID, imagePath string, resolve URLResolver) []model.OptionImage {
	out := []model.OptionImage{}
	if imagePath == "" {
		return out
	}
	for _, img := range images {
		if img.ProductID == productID && img.ImagePath == imagePath {
			out = append(out, model.OptionImage{
				FileID: img.FileID,
				URL:    resolve(img.FileID),
				Alt:    img.Label,
				Label:  img.Label,
			})
		}
	}
	return out
}

// parsePrice parses a decimal price cell. Garbage yields NaN, a visible error
// state, never a silent 0.
func parsePrice(cell string) float64 {
	price, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return math.NaN()
	}
	return price
}

// parseStock parses a stock cell, clamping garbage and negatives to 0.
func parseStock(cell string) int {
	stock, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil || stock < 0 {
		return 0
	}
	return stock
}
