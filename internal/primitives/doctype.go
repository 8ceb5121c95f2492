package primitives

import "strings"

// docTypeKeywords pairs a document type with its keywords. The type is a
// plain string mirroring model.DocumentType, so primitives does not import
// the model package; assemble.go maps the string value onto
// model.DocumentType.
type docTypeKeywords struct {
	docType  string
	keywords []string
}

// docTypeTable is insertion-order significant: classify_document_type
// ties are broken by earliest entry in this table.
var docTypeTable = []docTypeKeywords{
	{"invoice", []string{"invoice", "bill to", "remit to", "invoice number", "invoice date", "invoice no"}},
	{"receipt", []string{"receipt", "cash tendered", "change due", "thank you for shopping", "cashier", "change"}},
	{"purchase_order", []string{"purchase order", "po number", "po#", "p.o.#", "vendor", "ship to"}},
	{"work_order", []string{"work order", "technician", "labor", "service performed", "service order"}},
	{"bill", []string{"utility", "account number", "billing period", "amount due", "statement of account"}},
	{"statement", []string{"statement", "account summary", "previous balance", "statement period"}},
	{"quote", []string{"quote", "quotation", "estimate", "valid until", "proposal"}},
	{"cmms", []string{"asset id", "preventive maintenance", "work request", "maintenance schedule", "meter reading"}},
	{"supplier_document", []string{"supplier", "vendor statement", "remittance advice"}},
	{"contract", []string{"agreement", "contract", "terms and conditions", "witnesseth", "effective date", "party of the first part"}},
}

// ClassifyDocumentType applies keyword scoring over the lowercased text.
// Each document type has a curated keyword set; ties are broken by the
// type's position in docTypeTable. Returns "generic" iff every score is
// zero.
func ClassifyDocumentType(text string) string {
	lower := strings.ToLower(text)

	best := "generic"
	bestScore := 0
	for _, entry := range docTypeTable {
		score := 0
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = entry.docType
		}
	}
	return best
}

// KeywordsFor returns the curated keyword list for a document type, used
// by the confidence engine's keyword sub-score. A type with no curated
// list (only "generic") returns nil.
func KeywordsFor(docType string) []string {
	for _, entry := range docTypeTable {
		if entry.docType == docType {
			return entry.keywords
		}
	}
	return nil
}
