// Package catalog converts the product catalog to and from its tabular
// exchange format: RFC-4180 style CSV with quoted fields that may embed
// commas, line breaks and doubled quotes.
package catalog

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mokha/internal/domain"
)

// Import failures that abort the whole file. Row-level problems are never
// fatal; they only bump the skipped counter.
var (
	ErrEmptyFile  = errors.New("catalog file has no data rows")
	ErrBadHeader  = errors.New("catalog file is missing required columns")
	ErrNoNewRows  = errors.New("no new products in catalog file")
	exportHeaders = []string{
		"ProductID", "ProductName", "Category", "BasePrice",
		"VariantID", "VariantName", "PriceModifier", "FinalPrice",
		"Stock", "LowStockThreshold",
	}
)

// DefaultImportStock is the stock level assigned to imported products.
const DefaultImportStock = 99

// ImportResult reports what a parse pass produced.
type ImportResult struct {
	Added   []domain.Product
	Skipped int
}

// columns locates the four required fields in a header row. Two dialects
// are accepted: the vendor feed (Name, cents, Department, Upc — price in
// minor units) and this codec's own export layout (ProductName, BasePrice,
// Category, ProductID — price in major units), so an exported file can be
// re-imported. Header names are case-sensitive.
type columns struct {
	name, price, category, id int
	priceMinorUnits           bool
}

func resolveColumns(header []string) (columns, bool) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	pick := func(names ...string) (int, bool) {
		for _, n := range names {
			if i, ok := idx[n]; ok {
				return i, true
			}
		}
		return 0, false
	}

	var c columns
	var ok bool
	if c.name, ok = pick("Name", "ProductName"); !ok {
		return c, false
	}
	if i, minor := idx["cents"]; minor {
		c.price, c.priceMinorUnits = i, true
	} else if c.price, ok = pick("BasePrice"); !ok {
		return c, false
	}
	if c.category, ok = pick("Department", "Category"); !ok {
		return c, false
	}
	if c.id, ok = pick("Upc", "ProductID"); !ok {
		return c, false
	}
	return c, true
}

// NormalizeCategoryKey turns display text into a catalog category key:
// lowercased, whitespace runs joined with underscores.
func NormalizeCategoryKey(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(text))), "_")
}

// Import parses a catalog feed. Rows with an invalid or duplicate external
// id, a non-positive or unparseable price, or a missing name or category
// are skipped and counted, never fatal. existingID guards against ids
// already present in the store; duplicates within the file are skipped the
// same way.
func Import(r io.Reader, existingID func(int64) bool, log *zap.Logger) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return ImportResult{}, err
	}
	if len(rows) < 2 {
		return ImportResult{}, ErrEmptyFile
	}

	cols, ok := resolveColumns(rows[0])
	if !ok {
		return ImportResult{}, ErrBadHeader
	}
	headerLen := len(rows[0])

	result := ImportResult{Added: make([]domain.Product, 0, len(rows)-1)}
	seen := make(map[int64]bool)

	for _, row := range rows[1:] {
		if len(row) < headerLen {
			result.Skipped++
			continue
		}

		id, idErr := parseExternalID(row[cols.id])
		name := strings.TrimSpace(row[cols.name])
		key := NormalizeCategoryKey(row[cols.category])
		price, priceOK := parsePrice(row[cols.price], cols.priceMinorUnits)

		if idErr != nil || name == "" || key == "" || !priceOK || seen[id] || (existingID != nil && existingID(id)) {
			result.Skipped++
			if log != nil {
				log.Warn("skipping catalog row", zap.Strings("row", row))
			}
			continue
		}
		seen[id] = true

		result.Added = append(result.Added, domain.Product{
			ID:        id,
			Name:      domain.LocalizedString{EN: name, AR: name},
			Category:  key,
			BasePrice: price,
			Stock:     DefaultImportStock,
			Variants:  []domain.Variant{},
			ImageURL:  "https://picsum.photos/seed/" + strconv.FormatInt(id, 10) + "/400",
		})
	}
	return result, nil
}

// parseExternalID tolerates Excel-style ="0123" wrappers around the id.
func parseExternalID(field string) (int64, error) {
	cleaned := strings.NewReplacer(`="`, "", `=`, "", `"`, "").Replace(field)
	return strconv.ParseInt(strings.TrimSpace(cleaned), 10, 64)
}

func parsePrice(field string, minorUnits bool) (decimal.Decimal, bool) {
	field = strings.TrimSpace(field)
	if minorUnits {
		cents, err := strconv.ParseInt(field, 10, 64)
		if err != nil || cents <= 0 {
			return decimal.Zero, false
		}
		return decimal.New(cents, -2), true
	}
	price, err := decimal.NewFromString(field)
	if err != nil || price.Sign() <= 0 {
		return decimal.Zero, false
	}
	return price, true
}

// Export flattens the catalog to the fixed ten-column layout: one row per
// simple product, one row per variant otherwise. Category keys resolve to
// their English display name when known, falling back to the raw key.
func Export(w io.Writer, products []domain.Product, categories []domain.Category) error {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.Key] = c.Name.EN
	}
	categoryName := func(key string) string {
		if n, ok := names[key]; ok {
			return n
		}
		return key
	}
	threshold := func(t *int64) string {
		if t == nil {
			return ""
		}
		return strconv.FormatInt(*t, 10)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, p := range products {
		if !p.HasVariants() {
			row := []string{
				strconv.FormatInt(p.ID, 10), p.Name.EN, categoryName(p.Category), p.BasePrice.String(),
				"", "", "", p.BasePrice.String(),
				strconv.FormatInt(p.Stock, 10), threshold(p.LowStockThreshold),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
			continue
		}
		for _, v := range p.Variants {
			row := []string{
				strconv.FormatInt(p.ID, 10), p.Name.EN, categoryName(p.Category), p.BasePrice.String(),
				v.ID, v.Name.EN, v.PriceModifier.String(), p.BasePrice.Add(v.PriceModifier).String(),
				strconv.FormatInt(v.Stock, 10), threshold(v.LowStockThreshold),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportFilename stamps the download name with the export time.
func ExportFilename(now time.Time) string {
	stamp := strings.ReplaceAll(now.UTC().Format(time.RFC3339), ":", "-")
	return "products_export_" + stamp + ".csv"
}
