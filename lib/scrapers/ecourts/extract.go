package ecourts

import (
	"strings"

	"ecourts-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// All knowledge of the portal's markup lives in this file and in
// causelist.go. If the portal changes its markup, these selectors and
// label anchors are the only things that need to move.

type PageShape int

const (
	ShapeUnknown PageShape = iota
	ShapeCaseDetails
	ShapeCauseList
	// the portal answered, but reported no matching record; a valid
	// empty outcome, not an error
	ShapeNotFound
)

func (s PageShape) String() string {
	switch s {
	case ShapeCaseDetails:
		return "case_details"
	case ShapeCauseList:
		return "cause_list"
	case ShapeNotFound:
		return "not_found"
	}
	return "unknown"
}

var notFoundMarkers = []string{
	"record not found",
	"no records found",
	"no case found",
	"this case code does not exists",
}

func DetectPageShape(doc *goquery.Document) PageShape {
	if doc.Find("table.case_details_table").Length() > 0 {
		return ShapeCaseDetails
	}
	if doc.Find("table.cause_list_table").Length() > 0 {
		return ShapeCauseList
	}

	notice := strings.ToLower(doc.Find("div.alert, div.error_message, span.error_message").Text())
	for _, marker := range notFoundMarkers {
		if strings.Contains(notice, marker) {
			return ShapeNotFound
		}
	}
	return ShapeUnknown
}

// Field names one extractable value and the normalized label anchors
// that identify it inside the portal's label/value detail tables.
type Field struct {
	Name   string
	Labels []string
}

// CaseFields covers the case details and case status tables. The
// portal has shuffled label wording between releases, hence the
// multiple anchors per field.
var CaseFields = []Field{
	{Name: "cnr", Labels: []string{"cnrnumber"}},
	{Name: "case_type", Labels: []string{"casetype"}},
	{Name: "case_number", Labels: []string{"casenumber", "registrationnumber"}},
	{Name: "year", Labels: []string{"filingyear", "caseyear"}},
	{Name: "case_title", Labels: []string{"casetitle", "partyname", "petitionerandrespondent"}},
	{Name: "court_name", Labels: []string{"courtname", "courtnumberandjudge"}},
	{Name: "status", Labels: []string{"casestatus", "stageofcase"}},
	{Name: "filing_date", Labels: []string{"filingdate", "dateoffiling"}},
	{Name: "next_hearing", Labels: []string{"nexthearingdate", "nextdate", "hearingdate"}},
	{Name: "serial_number", Labels: []string{"serialnumber", "srno"}},
}

// ExtractFields walks the label/value rows of the detail tables and
// returns the raw text for every requested field found on the page.
// Missing fields are simply absent from the result; when a label
// matches more than one row the first wins.
func ExtractFields(doc *goquery.Document, fields []Field) RawFields {
	raw := RawFields{}
	doc.Find("table.case_details_table tr, table.case_status_table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		label := cells.Eq(0).Text()
		value := textutil.CleanCell(cells.Eq(1).Text())
		if value == "" {
			return
		}
		for _, f := range fields {
			if _, ok := raw[f.Name]; ok {
				continue
			}
			if textutil.MatchLabel(label, f.Labels) {
				raw[f.Name] = value
				break
			}
		}
	})
	return raw
}

// Extract is the checked form of ExtractFields: it refuses pages that
// do not look like a case details page at all. Absent fields are still
// a valid outcome.
func Extract(doc *goquery.Document, fields []Field) (RawFields, error) {
	shape := DetectPageShape(doc)
	if shape != ShapeCaseDetails && shape != ShapeNotFound {
		return nil, &ExtractionError{Reason: "expected a case details page, got " + shape.String()}
	}
	return ExtractFields(doc, fields), nil
}
