// internal/workers/documents/extract-document/service.go
package extractdocument

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"procurement-workers/internal/models"
)

var (
	vendorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)vendor[:\s]+([^\n]+)`),
		regexp.MustCompile(`(?i)supplier[:\s]+([^\n]+)`),
		regexp.MustCompile(`(?i)company[:\s]+([^\n]+)`),
		regexp.MustCompile(`(?m)^([A-Z][A-Za-z\s]+(?:Inc|Corp|LLC|Ltd|Limited|Co|Corporation|Solutions|Technologies|Enterprises)\.?)`),
	}

	invoiceNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)invoice\s*(?:number|no|#)[:\s]+([^\n\s]+)`),
		regexp.MustCompile(`(?i)inv[:\s]+([^\n\s]+)`),
	}

	poNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)p\.?o\.?\s*ref:\s*([A-Za-z0-9\-]+)`),
		regexp.MustCompile(`(?i)(?:purchase order|po|p\.o\.)\s*(?:number|no|#|:)\s*:?\s*([A-Za-z0-9\-]+)`),
	}

	taxIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:tax|gst|vat)\s*(?:id|number|no)?[:\s]+([^\n\s]+)`),
		regexp.MustCompile(`(?i)gstin[:\s]+([^\n\s]+)`),
	}

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:invoice\s*)?date[:\s]+([^\n]+)`),
		regexp.MustCompile(`(?i)dated?[:\s]+([^\n]+)`),
	}

	totalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)grand\s+total[:\s]+[^\d]*?([\d,\.]+)`),
		regexp.MustCompile(`(?i)total[:\s]+[^\d]*?([\d,\.]+)`),
		regexp.MustCompile(`(?i)amount[:\s]+[^\d]*?([\d,\.]+)`),
	}

	turnoverPattern = regexp.MustCompile(`(?i)(\d{4})[:\s]+[^\d]*?([\d,\.]+)`)

	isoDateRe   = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	slashDateRe = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`)
	dashDateRe  = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`)
	wordDateRe  = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})`)

	amountCleanRe = regexp.MustCompile(`[^\d.,\-]`)
)

// DetectDocumentType classifies a document by keywords in its text. The
// check order matters: pre-qualification forms mention turnover, invoices
// mention PO references, so the more specific classes come first.
func DetectDocumentType(text string) models.DocumentType {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, "pre-qualification", "prequalification", "pq form", "turnover"):
		return models.DocTypePQForm
	case containsAny(lower, "impairment", "asset impairment"):
		return models.DocTypeImpairmentForm
	case strings.Contains(lower, "invoice"):
		return models.DocTypeInvoice
	case containsAny(lower, "purchase order", "p.o.", "po number"):
		return models.DocTypePurchaseOrder
	case containsAny(lower, "delivery note", "delivery report", "goods received"):
		return models.DocTypeDeliveryNote
	case containsAny(lower, "vendor", "supplier", "onboarding"):
		return models.DocTypeVendorOnboarding
	default:
		return models.DocTypeUnknown
	}
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Extract pulls the structured fields out of a document's text and tables.
func Extract(input *Input, cfg *Config) *Output {
	docType := models.DocumentType(input.TypeHint)
	if input.TypeHint == "" {
		docType = DetectDocumentType(input.Text)
	}

	output := &Output{
		DocumentID:    input.DocumentID,
		DocumentType:  docType,
		VendorName:    extractField(input.Text, vendorPatterns),
		TaxID:         extractField(input.Text, taxIDPatterns),
		InvoiceNumber: extractField(input.Text, invoiceNumberPatterns),
		PONumber:      extractField(input.Text, poNumberPatterns),
		InvoiceDate:   NormalizeDate(extractField(input.Text, datePatterns)),
		Currency:      detectCurrency(input.Text),
		LineItems:     extractLineItems(input.Tables),
	}

	if total, ok := NormalizeAmount(extractField(input.Text, totalPatterns)); ok {
		output.TotalAmount = total
	}

	if docType == models.DocTypePQForm {
		output.TurnoverByYear = extractTurnover(input.Text, cfg.MaxTurnoverYears)
		output.TurnoverCheck = checkTurnover(output.TurnoverByYear, cfg.MinTotalTurnover)
	}

	return output
}

// checkTurnover pre-screens a pre-qualification form by summing the declared
// turnover years against the minimum threshold. A form with no declarations
// gets no verdict.
func checkTurnover(entries []models.TurnoverEntry, minTotal float64) *models.TurnoverCheck {
	if len(entries) == 0 {
		return nil
	}

	var total float64
	for _, entry := range entries {
		total += entry.Amount
	}

	check := &models.TurnoverCheck{TotalTurnover: total}
	if total >= minTotal {
		check.Eligible = true
		check.Reason = "Meets minimum turnover requirement"
	} else {
		check.Reason = "Below minimum turnover threshold"
	}
	return check
}

func extractField(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// NormalizeDate converts the supported date spellings to YYYY-MM-DD.
// Unrecognized input yields an empty string.
func NormalizeDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}

	if m := isoDateRe.FindString(dateStr); m != "" {
		return m
	}
	if m := slashDateRe.FindStringSubmatch(dateStr); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	if m := dashDateRe.FindStringSubmatch(dateStr); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	if m := wordDateRe.FindStringSubmatch(dateStr); m != nil {
		if len(m[2]) < 3 {
			return ""
		}
		name := strings.ToUpper(m[2][:1]) + strings.ToLower(m[2][1:3])
		month, err := time.Parse("Jan", name)
		if err != nil {
			return ""
		}
		day, _ := strconv.Atoi(m[1])
		return m[3] + "-" + pad2(int(month.Month())) + "-" + pad2(day)
	}
	return ""
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// NormalizeAmount strips currency symbols and thousands separators.
func NormalizeAmount(amountStr string) (float64, bool) {
	if amountStr == "" {
		return 0, false
	}
	cleaned := amountCleanRe.ReplaceAllString(amountStr, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func detectCurrency(text string) string {
	switch {
	case strings.Contains(text, "$"):
		return "USD"
	case strings.Contains(text, "₹"):
		return "INR"
	case strings.Contains(text, "€"):
		return "EUR"
	default:
		return ""
	}
}

// extractTurnover reads "YYYY: amount" declarations, newest first in
// document order, capped at the configured number of years.
func extractTurnover(text string, maxYears int) []models.TurnoverEntry {
	var entries []models.TurnoverEntry
	for _, m := range turnoverPattern.FindAllStringSubmatch(text, -1) {
		year, err := strconv.Atoi(m[1])
		if err != nil || year < 1990 || year > 2100 {
			continue
		}
		amount, ok := NormalizeAmount(m[2])
		if !ok {
			continue
		}
		entries = append(entries, models.TurnoverEntry{Year: year, Amount: amount})
		if len(entries) == maxYears {
			break
		}
	}
	return entries
}

// extractLineItems reads row-major tables, skipping the header row.
// Rows need a description plus at least two numeric columns.
func extractLineItems(tables [][][]string) []models.LineItem {
	var items []models.LineItem
	for _, table := range tables {
		if len(table) < 2 {
			continue
		}
		for _, row := range table[1:] {
			if len(row) < 3 {
				continue
			}
			item := models.LineItem{Description: strings.TrimSpace(row[0])}
			if qty, ok := NormalizeAmount(row[1]); ok {
				item.Quantity = qty
			}
			if price, ok := NormalizeAmount(row[2]); ok {
				item.UnitPrice = price
			}
			if len(row) > 3 {
				if amount, ok := NormalizeAmount(row[3]); ok {
					item.Amount = amount
				}
			}
			items = append(items, item)
		}
	}
	return items
}
