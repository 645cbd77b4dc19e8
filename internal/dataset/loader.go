package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/inventopredict/backend-go/internal/domain"
)

// Sheet name suffixes the loader recognizes. The source workbooks prefix
// sheet names with the dataset name (e.g. "blinkit_inventory"), so matching
// is done on normalized suffixes.
const (
	sheetInventory  = "inventory"
	sheetOrders     = "orders"
	sheetOrderItems = "orderitems"
	sheetProducts   = "products"
	sheetCustomers  = "customers"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"1/2/06 15:04",
	time.RFC3339,
}

// Loader parses workbook bundles into typed tables.
type Loader struct {
	festivalCSVPath string
}

// NewLoader creates a Loader. festivalCSVPath may be empty, in which case
// festival scores default to zero everywhere.
func NewLoader(festivalCSVPath string) *Loader {
	return &Loader{festivalCSVPath: festivalCSVPath}
}

// Load parses the workbook at path plus the optional festival calendar into
// a Bundle. Missing required sheets yield a DataError.
func (l *Loader) Load(path string) (*Bundle, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, domain.NewDataError("cannot open workbook %s: %v", path, err)
	}
	defer f.Close()

	bundle, err := l.LoadWorkbook(f)
	if err != nil {
		return nil, err
	}

	if l.festivalCSVPath != "" {
		festivals, err := LoadFestivalCSV(l.festivalCSVPath)
		if err == nil {
			bundle.Festivals = festivals
		}
	}

	return bundle, nil
}

// LoadWorkbook parses an already-open workbook into a Bundle. The festival
// calendar is not read here; callers may attach it separately.
func (l *Loader) LoadWorkbook(f *excelize.File) (*Bundle, error) {
	sheets := indexSheets(f.GetSheetList())

	required := []string{sheetInventory, sheetOrders, sheetOrderItems, sheetProducts}
	for _, name := range required {
		if _, ok := sheets[name]; !ok {
			return nil, domain.NewDataError("required sheet %q missing from workbook", name)
		}
	}

	bundle := &Bundle{}
	var err error

	if bundle.Inventory, err = parseInventory(f, sheets[sheetInventory]); err != nil {
		return nil, err
	}
	if bundle.Orders, err = parseOrders(f, sheets[sheetOrders]); err != nil {
		return nil, err
	}
	if bundle.OrderItems, err = parseOrderItems(f, sheets[sheetOrderItems]); err != nil {
		return nil, err
	}
	if bundle.Products, err = parseProducts(f, sheets[sheetProducts]); err != nil {
		return nil, err
	}

	// Customers are optional.
	if sheet, ok := sheets[sheetCustomers]; ok {
		if bundle.Customers, err = parseCustomers(f, sheet); err != nil {
			return nil, err
		}
	}

	return bundle, nil
}

// indexSheets maps normalized logical names to actual sheet names, matching
// on normalized suffix so prefixed names like "blinkit_order_items" resolve.
func indexSheets(names []string) map[string]string {
	index := make(map[string]string, len(names))
	logical := []string{sheetOrderItems, sheetInventory, sheetOrders, sheetProducts, sheetCustomers}
	for _, actual := range names {
		normalized := normalizeName(actual)
		for _, want := range logical {
			if _, taken := index[want]; taken {
				continue
			}
			if strings.HasSuffix(normalized, want) {
				index[want] = actual
				break
			}
		}
	}
	return index
}

var nameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeName(name string) string {
	return nameSanitizer.Replace(strings.TrimSpace(strings.ToLower(name)))
}

// header lookup shared by all sheet parsers
func colIndex(header []string, names ...string) int {
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		targets[normalizeName(name)] = struct{}{}
	}
	for i, h := range header {
		if _, ok := targets[normalizeName(h)]; ok {
			return i
		}
	}
	return -1
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseFloatCell(record []string, idx int) float64 {
	v := cell(record, idx)
	if v == "" {
		return 0
	}
	v = strings.ReplaceAll(v, ",", "")
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

func parseIntCell(record []string, idx int) int64 {
	v := cell(record, idx)
	if v == "" {
		return 0
	}
	v = strings.ReplaceAll(v, ",", "")
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	// Excel sometimes renders integers as floats ("12.0").
	f, _ := strconv.ParseFloat(v, 64)
	return int64(f)
}

// ParseDate parses a cell value against the tolerant layout list. Returns
// the zero time when no layout matches.
func ParseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	// Excel serial date numbers survive as plain floats.
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sheetRows(f *excelize.File, sheet string) ([][]string, []string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, domain.NewDataError("cannot read sheet %q: %v", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, domain.NewDataError("sheet %q is empty", sheet)
	}
	return rows[1:], rows[0], nil
}

func parseInventory(f *excelize.File, sheet string) ([]InventoryRow, error) {
	records, header, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	idxProduct := colIndex(header, "product_id")
	idxDate := colIndex(header, "date")
	idxReceived := colIndex(header, "stock_received")
	idxDamaged := colIndex(header, "damaged_stock")
	if idxProduct < 0 || idxReceived < 0 || idxDamaged < 0 {
		return nil, domain.NewDataError("sheet %q missing inventory columns", sheet)
	}

	rows := make([]InventoryRow, 0, len(records))
	for _, record := range records {
		if cell(record, idxProduct) == "" {
			continue
		}
		rows = append(rows, InventoryRow{
			ProductID:     parseIntCell(record, idxProduct),
			Date:          ParseDate(cell(record, idxDate)),
			StockReceived: parseFloatCell(record, idxReceived),
			DamagedStock:  parseFloatCell(record, idxDamaged),
		})
	}
	return rows, nil
}

func parseOrders(f *excelize.File, sheet string) ([]OrderRow, error) {
	records, header, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	idxOrder := colIndex(header, "order_id")
	idxDate := colIndex(header, "order_date")
	idxCustomer := colIndex(header, "customer_id")
	if idxOrder < 0 || idxDate < 0 {
		return nil, domain.NewDataError("sheet %q missing order columns", sheet)
	}

	rows := make([]OrderRow, 0, len(records))
	for _, record := range records {
		if cell(record, idxOrder) == "" {
			continue
		}
		rows = append(rows, OrderRow{
			OrderID:    parseIntCell(record, idxOrder),
			OrderDate:  ParseDate(cell(record, idxDate)),
			CustomerID: parseIntCell(record, idxCustomer),
		})
	}
	return rows, nil
}

func parseOrderItems(f *excelize.File, sheet string) ([]OrderItemRow, error) {
	records, header, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	idxOrder := colIndex(header, "order_id")
	idxProduct := colIndex(header, "product_id")
	idxQty := colIndex(header, "quantity", "qty")
	if idxOrder < 0 || idxProduct < 0 || idxQty < 0 {
		return nil, domain.NewDataError("sheet %q missing order item columns", sheet)
	}

	rows := make([]OrderItemRow, 0, len(records))
	for _, record := range records {
		if cell(record, idxOrder) == "" && cell(record, idxProduct) == "" {
			continue
		}
		rows = append(rows, OrderItemRow{
			OrderID:   parseIntCell(record, idxOrder),
			ProductID: parseIntCell(record, idxProduct),
			Quantity:  parseFloatCell(record, idxQty),
		})
	}
	return rows, nil
}

func parseProducts(f *excelize.File, sheet string) ([]ProductRow, error) {
	records, header, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	idxProduct := colIndex(header, "product_id")
	idxName := colIndex(header, "product_name", "name")
	idxCategory := colIndex(header, "category")
	if idxProduct < 0 {
		return nil, domain.NewDataError("sheet %q missing product_id column", sheet)
	}

	rows := make([]ProductRow, 0, len(records))
	for _, record := range records {
		if cell(record, idxProduct) == "" {
			continue
		}
		rows = append(rows, ProductRow{
			ProductID:   parseIntCell(record, idxProduct),
			ProductName: cell(record, idxName),
			Category:    cell(record, idxCategory),
		})
	}
	return rows, nil
}

func parseCustomers(f *excelize.File, sheet string) ([]CustomerRow, error) {
	records, header, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	idxCustomer := colIndex(header, "customer_id")
	idxArea := colIndex(header, "area", "region")
	if idxCustomer < 0 {
		return nil, domain.NewDataError("sheet %q missing customer_id column", sheet)
	}

	rows := make([]CustomerRow, 0, len(records))
	for _, record := range records {
		if cell(record, idxCustomer) == "" {
			continue
		}
		rows = append(rows, CustomerRow{
			CustomerID: parseIntCell(record, idxCustomer),
			Area:       cell(record, idxArea),
		})
	}
	return rows, nil
}
