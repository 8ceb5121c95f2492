// Package docextract turns free-form OCR text from a business document
// into a strongly-typed, canonical Record describing the supplier, buyer,
// transaction metadata, line items and totals.
//
// Parse is total on well-formed UTF-8: there is no input for which it
// raises, and it never blocks on I/O or spawns background work. Two calls
// over identical input and options produce identical records except for
// Metadata.ExtractionTimestamp.
package docextract

import (
	"time"

	"github.com/docextract/docextract/internal/assemble"
	"github.com/docextract/docextract/internal/confidence"
	"github.com/docextract/docextract/internal/model"
)

// DocumentType re-exports model.DocumentType for callers that only import
// the root package.
type DocumentType = model.DocumentType

// Record re-exports model.Record.
type Record = model.Record

// Options carries caller-supplied hints. Both fields are optional: when
// empty they are derived from the text.
type Options struct {
	DocumentType string
	Language     string
}

// Confidence is the five-factor composite score returned by Score.
type Confidence struct {
	Overall float64
	OCR     float64
	Fields  float64
	Numeric float64
	DocType float64
	Keyword float64
}

// Parse extracts a canonical Record from rawText. opts.DocumentType and
// opts.Language, when non-empty, override the classifier/detector.
func Parse(rawText string, opts Options) (Record, error) {
	record := assemble.Assemble(rawText, opts.DocumentType, opts.Language, time.Now())
	return record, nil
}

// Score computes the five-factor confidence score for record against
// rawText. ocrConfidence is the OCR provider's own estimate in [0,1] (pass
// 0 when unknown); claimedType is the document type the caller originally
// asked for, which may differ from record.Metadata.DocumentType.
func Score(record Record, rawText string, ocrConfidence float64, claimedType DocumentType) Confidence {
	s := confidence.Compute(record, rawText, ocrConfidence, claimedType)
	return Confidence{
		Overall: s.Overall,
		OCR:     s.OCR,
		Fields:  s.Fields,
		Numeric: s.Numeric,
		DocType: s.DocType,
		Keyword: s.Keyword,
	}
}
