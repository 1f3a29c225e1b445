package model

// The three catalog tables are positional: each row is a fixed-order slice of
// string cells, and the column order below is the contract between writer and
// reader. Numeric fields stay strings here; parsing happens in the normalizer.

const (
	// ProductColumns is the number of cells in a products row (range A:N).
	ProductColumns = 14
	// ImageColumns is the number of cells in an images row (range A:E).
	ImageColumns = 5
	// OptionColumns is the number of cells in an options row (range A:H).
	OptionColumns = 8
)

// ProductRow is one row of the products table.
type ProductRow struct {
	ProductID         string
	ProductName       string
	ProductTitle      string
	ProductDesc       string
	Details           string
	Tags              string
	Pointers          string
	Category          string
	SpecsInfo         string
	SpecsImagePath    string
	HowToVideoLink    string
	VideoImagePath    string
	HowToSchematic    string
	SchematicImgPath  string
}

// Cells returns the row in table column order.
func (r ProductRow) Cells() []string {
	return []string{
		r.ProductID, r.ProductName, r.ProductTitle, r.ProductDesc,
		r.Details, r.Tags, r.Pointers, r.Category,
		r.SpecsInfo, r.SpecsImagePath, r.HowToVideoLink, r.VideoImagePath,
		r.HowToSchematic, r.SchematicImgPath,
	}
}

// ProductRowFromCells builds a ProductRow from raw cells. Short rows are
// padded with empty strings, the way a sparse spreadsheet row comes back.
func ProductRowFromCells(cells []string) ProductRow {
	c := padCells(cells, ProductColumns)
	return ProductRow{
		ProductID:        c[0],
		ProductName:      c[1],
		ProductTitle:     c[2],
		ProductDesc:      c[3],
		Details:          c[4],
		Tags:             c[5],
		Pointers:         c[6],
		Category:         c[7],
		SpecsInfo:        c[8],
		SpecsImagePath:   c[9],
		HowToVideoLink:   c[10],
		VideoImagePath:   c[11],
		HowToSchematic:   c[12],
		SchematicImgPath: c[13],
	}
}

// ImageRow is one row of the images table. An empty ImagePath marks the
// product's hero image.
type ImageRow struct {
	FileID      string
	ProductID   string
	ImagePath   string
	Label       string
	Description string
}

// Cells returns the row in table column order.
func (r ImageRow) Cells() []string {
	return []string{r.FileID, r.ProductID, r.ImagePath, r.Label, r.Description}
}

// ImageRowFromCells builds an ImageRow from raw cells.
func ImageRowFromCells(cells []string) ImageRow {
	c := padCells(cells, ImageColumns)
	return ImageRow{
		FileID:      c[0],
		ProductID:   c[1],
		ImagePath:   c[2],
		Label:       c[3],
		Description: c[4],
	}
}

// OptionRow is one row of the options table. Rows sharing (GroupName, Name)
// within a product describe sizes of the same option.
type OptionRow struct {
	ProductID string
	GroupName string
	Name      string
	Size      string
	Price     string
	Stock     string
	InStock   string
	ImagePath string
}

// Cells returns the row in table column order.
func (r OptionRow) Cells() []string {
	return []string{
		r.ProductID, r.GroupName, r.Name, r.Size,
		r.Price, r.Stock, r.InStock, r.ImagePath,
	}
}

// OptionRowFromCells builds an OptionRow from raw cells.
func OptionRowFromCells(cells []string) OptionRow {
	c := padCells(cells, OptionColumns)
	return OptionRow{
		ProductID: c[0],
		GroupName: c[1],
		Name:      c[2],
		Size:      c[3],
		Price:     c[4],
		Stock:     c[5],
		InStock:   c[6],
		ImagePath: c[7],
	}
}

func padCells(cells []string, n int) []string {
	if len(cells) >= n {
		return cells[:n]
	}
	padded := make([]string, n)
	copy(padded, cells)
	return padded
}
