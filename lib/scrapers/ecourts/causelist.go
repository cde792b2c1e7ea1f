package ecourts

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"ecourts-backend/lib/htmlutil"
	"ecourts-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// column anchors for the cause list table header
var causeColumns = map[string][]string{
	"serial":      {"srno", "serialnumber", "sno"},
	"case_number": {"casenumber", "caseno"},
	"case_title":  {"casetitle", "partyname", "title"},
	"petitioner":  {"petitioner"},
	"respondent":  {"respondent"},
	"advocate":    {"advocate", "counsel"},
	"court_room":  {"courtroom", "room"},
	"time":        {"time"},
}

func mapCauseHeader(header *goquery.Selection) map[string]int {
	columns := map[string]int{}
	header.Find("th").Each(func(i int, th *goquery.Selection) {
		for name, anchors := range causeColumns {
			if _, ok := columns[name]; ok {
				continue
			}
			if textutil.MatchLabel(th.Text(), anchors) {
				columns[name] = i
				break
			}
		}
	})
	return columns
}

func cellText(cells *goquery.Selection, idx int) string {
	return textutil.CleanCell(cells.Eq(idx).Text())
}

func extractCauseRow(row *goquery.Selection, columns map[string]int) (CauseListEntry, error) {
	cells := row.Find("td")

	maxIdx := 0
	for _, idx := range columns {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	if cells.Length() <= maxIdx {
		return CauseListEntry{}, fmt.Errorf("row has %d cells, header maps %d columns", cells.Length(), maxIdx+1)
	}

	entry := CauseListEntry{}
	if idx, ok := columns["case_number"]; ok {
		entry.CaseNumber = cellText(cells, idx)
	}
	if entry.CaseNumber == "" {
		return CauseListEntry{}, fmt.Errorf("row is missing a case number")
	}
	if idx, ok := columns["case_title"]; ok {
		entry.CaseTitle = cellText(cells, idx)
	}
	if idx, ok := columns["petitioner"]; ok {
		entry.Petitioner = cellText(cells, idx)
	}
	if idx, ok := columns["respondent"]; ok {
		entry.Respondent = cellText(cells, idx)
	}
	if idx, ok := columns["advocate"]; ok {
		entry.Advocate = cellText(cells, idx)
	}
	if idx, ok := columns["court_room"]; ok {
		entry.CourtRoom = cellText(cells, idx)
	}
	if idx, ok := columns["time"]; ok {
		entry.Time = cellText(cells, idx)
	}
	return entry, nil
}

// assembleInto parses one cause list page into list, appending after
// any entries already present so that cross-page order and positional
// serial numbers stay continuous. The serial source is decided once,
// from the first page; a list never mixes explicit and positional
// serial numbers.
func assembleInto(list *CauseList, doc *goquery.Document, firstPage bool) error {
	table := doc.Find("table.cause_list_table").First()
	if table.Length() == 0 {
		return &ExtractionError{Reason: "no cause list table on page"}
	}

	rows := table.Find("tr")
	if rows.Length() == 0 {
		return &ExtractionError{Reason: "cause list table has no rows"}
	}

	columns := mapCauseHeader(rows.First())
	if _, ok := columns["case_number"]; !ok {
		return &ExtractionError{Reason: "cause list header has no case number column"}
	}
	_, hasSerial := columns["serial"]
	if firstPage {
		// positional assignment is a documented fallback for listings
		// without a serial column, never the primary source
		if hasSerial {
			list.SerialSource = SerialExplicit
		} else {
			list.SerialSource = SerialPositional
		}
	}

	explicit := list.SerialSource == SerialExplicit
	if !firstPage && explicit != hasSerial {
		slog.Warn(
			"cause list page contradicts the first page's serial column",
			"court_code", list.CourtCode,
			"has_serial", hasSerial,
			"serial_source", list.SerialSource.String(),
		)
	}
	if explicit && !hasSerial {
		// rows without a serial source cannot join an explicit-serial
		// list
		return nil
	}

	rows.Slice(1, rows.Length()).Each(func(i int, row *goquery.Selection) {
		entry, err := extractCauseRow(row, columns)
		if err != nil {
			slog.Warn(
				"skipping malformed cause list row",
				"court_code", list.CourtCode,
				"row", i+1,
				"err", err,
			)
			return
		}

		if explicit {
			serial, err := strconv.Atoi(cellText(row.Find("td"), columns["serial"]))
			if err != nil || serial <= 0 {
				slog.Warn(
					"skipping cause list row with malformed serial number",
					"court_code", list.CourtCode,
					"row", i+1,
				)
				return
			}
			entry.SerialNumber = serial
		} else {
			entry.SerialNumber = len(list.Entries) + 1
		}
		list.Entries = append(list.Entries, entry)
	})
	return nil
}

// AssembleCauseList parses a single, already-fetched cause list page.
func AssembleCauseList(doc *goquery.Document, courtCode string, date time.Time) (*CauseList, error) {
	shape := DetectPageShape(doc)
	if shape != ShapeCauseList {
		return nil, &ExtractionError{Reason: "expected a cause list page, got " + shape.String()}
	}
	list := &CauseList{CourtCode: courtCode, Date: date}
	if err := assembleInto(list, doc, true); err != nil {
		return nil, err
	}
	return list, nil
}

func nextPageHref(doc *goquery.Document) string {
	anchors := htmlutil.GetAnchors(doc.Find("div.pagination a[rel=next], div.pagination a.next"), nil)
	if len(anchors) == 0 {
		return ""
	}
	return anchors[0].Href
}

// hard stop on pagination in case the portal ever serves a cycle
const maxCauseListPages = 50

// FetchCauseList retrieves and assembles the complete docket of one
// court for one day, following pagination links across pages. An empty
// docket ("no records") is a valid result, not an error.
func (c *Client) FetchCauseList(ctx context.Context, courtCode string, date time.Time) (*CauseList, error) {
	ctx, span := tracer.Start(ctx, "client:FetchCauseList")
	defer span.End()

	list := &CauseList{CourtCode: courtCode, Date: date}
	page := pathCauseList
	query := map[string]string{
		"court_code":      courtCode,
		"cause_list_date": date.Format("02-01-2006"),
	}

	for i := 0; i < maxCauseListPages; i++ {
		doc, pageUrl, err := c.getDocument(ctx, page, query)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch cause list page")
			slog.ErrorContext(
				ctx, "cause list fetch failed",
				"court_code", courtCode, "date", date.Format("02-01-2006"),
				"page", i+1, "err", err,
			)
			return nil, err
		}

		shape := DetectPageShape(doc)
		if shape == ShapeNotFound {
			// empty docket on the first page, or the portal's way of
			// ending pagination
			break
		}
		if shape != ShapeCauseList {
			err := &ExtractionError{Url: pageUrl, Reason: "expected a cause list page, got " + shape.String()}
			span.SetStatus(codes.Error, err.Reason)
			slog.ErrorContext(ctx, "unexpected page while assembling cause list", "url", pageUrl, "err", err)
			return nil, err
		}

		if err := assembleInto(list, doc, i == 0); err != nil {
			if ee, ok := err.(*ExtractionError); ok && ee.Url == "" {
				ee.Url = pageUrl
			}
			span.SetStatus(codes.Error, "failed to assemble cause list page")
			return nil, err
		}

		next := nextPageHref(doc)
		if next == "" {
			break
		}
		if !strings.HasPrefix(next, "http") {
			next = joinUrl(c.BaseUrl, next)
		}
		page = next
		query = nil
	}

	slog.InfoContext(
		ctx, "assembled cause list",
		"court_code", courtCode,
		"entries", len(list.Entries),
		"serial_source", list.SerialSource.String(),
	)
	return list, nil
}
