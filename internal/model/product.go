package model

import (
	"encoding/json"
	"math"
)

// Product is the normalized catalog record the storefront renders, assembled
// from one ProductRow plus its matching image and option rows.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Details     string      `json:"details"`
	Tags        []string    `json:"tags"`
	Pointers    []string    `json:"pointers"`
	Category    string      `json:"category"`
	HeroImage   HeroImage   `json:"heroImage"`
	Specs       Specs       `json:"specs"`
	HowTo       HowTo       `json:"howTo"`
	Options     []Option    `json:"options"`
}

// HeroImage is the product's lead image. URL is empty when no hero image row
// exists, never an error.
type HeroImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Specs holds the spec-sheet bullet points and their images.
type Specs struct {
	Info   []string     `json:"info"`
	Images []SpecsImage `json:"images"`
}

// SpecsImage is one spec-sheet image entry.
type SpecsImage struct {
	URL   string `json:"url"`
	Alt   string `json:"alt"`
	Label string `json:"label"`
}

// HowTo holds the how-to video and schematic references.
type HowTo struct {
	Video     HowToVideo     `json:"video"`
	Schematic HowToSchematic `json:"schematic"`
}

// HowToVideo references an external video plus its preview image.
type HowToVideo struct {
	Link string `json:"link"`
	URL  string `json:"url"`
}

// HowToSchematic references a downloadable schematic. Name is the display
// filename derived from the link's path component.
type HowToSchematic struct {
	Link string `json:"link"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Option is one option group of a product, identified by (GroupName, Name).
type Option struct {
	GroupName string        `json:"groupName"`
	Name      string        `json:"name"`
	Sizes     []Size        `json:"sizes"`
	InStock   bool          `json:"inStock"`
	Images    []OptionImage `json:"images"`
}

// OptionImage is one image bound to an option group.
type OptionImage struct {
	FileID string `json:"file_id"`
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Label  string `json:"label"`
}

// Size is one purchasable size of an option. A price that failed to parse is
// NaN, which marshals to null so the client sees an error state instead of a
// silent zero.
type Size struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// MarshalJSON renders a NaN price as null. encoding/json refuses NaN
// outright, and coercing to 0 would hide the bad row.
func (s Size) MarshalJSON() ([]byte, error) {
	type alias struct {
		Name  string   `json:"name"`
		Price *float64 `json:"price"`
		Stock int      `json:"stock"`
	}
	a := alias{Name: s.Name, Stock: s.Stock}
	if !math.IsNaN(s.Price) {
		price := s.Price
		a.Price = &price
	}
	return json.Marshal(a)
}

// UnmarshalJSON accepts null prices back as NaN.
func (s *Size) UnmarshalJSON(data []byte) error {
	type alias struct {
		Name  string   `json:"name"`
		Price *float64 `json:"price"`
		Stock int      `json:"stock"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	s.Name = a.Name
	s.Stock = a.Stock
	if a.Price != nil {
		s.Price = *a.Price
	} else {
		s.Price = math.NaN()
	}
	return nil
}
