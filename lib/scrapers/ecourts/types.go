package ecourts

import "time"

// CaseRecord is the canonical, normalized view of a single case as
// reported by the portal. Records are constructed once by Normalize
// and never mutated afterward.
type CaseRecord struct {
	Cnr        string `json:"cnr,omitempty"`
	CaseType   string `json:"case_type,omitempty"`
	CaseNumber string `json:"case_number,omitempty"`
	Year       string `json:"year,omitempty"`

	CaseTitle string `json:"case_title,omitempty"`
	CourtName string `json:"court_name,omitempty"`
	Status    string `json:"status,omitempty"`

	// zero when the portal did not report them
	FilingDate  time.Time `json:"filing_date"`
	HearingDate time.Time `json:"next_hearing"`

	// 0 when absent from the listing
	SerialNumber int `json:"serial_number"`

	ListedToday    bool `json:"is_listed_today"`
	ListedTomorrow bool `json:"is_listed_tomorrow"`

	// RawSnippet holds the unparsed source fragment behind a field
	// that failed normalization, kept for diagnostics only.
	RawSnippet string `json:"raw_snippet,omitempty"`
}

type CauseListEntry struct {
	SerialNumber int    `json:"serial_number"`
	CaseNumber   string `json:"case_number"`
	CaseTitle    string `json:"case_title"`
	Petitioner   string `json:"petitioner"`
	Respondent   string `json:"respondent"`
	Advocate     string `json:"advocate"`
	CourtRoom    string `json:"court_room"`
	// the portal does not guarantee a parseable time format,
	// so this stays verbatim
	Time string `json:"time"`
}

type SerialSource int

const (
	// serial numbers came from an explicit column on the page
	SerialExplicit SerialSource = iota
	// serial numbers were assigned from row position because the
	// listing carried no serial column
	SerialPositional
)

func (s SerialSource) String() string {
	if s == SerialPositional {
		return "positional"
	}
	return "explicit"
}

// CauseList is the docket of one court for one day. Entry order is the
// order of appearance on the source page, which is the serving order
// of the docket and must be preserved.
type CauseList struct {
	CourtCode    string           `json:"court_code"`
	Date         time.Time        `json:"date"`
	Entries      []CauseListEntry `json:"entries"`
	SerialSource SerialSource     `json:"-"`
}

// RawFields maps a field name to the raw text extracted for it. A
// missing key means the field was absent from the page, which is a
// valid outcome and distinct from an extraction failure.
type RawFields map[string]string

func (r RawFields) Get(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}

type Court struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}
