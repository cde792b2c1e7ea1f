package casedata

import (
	"strings"
	"time"

	"ecourts-backend/lib/scrapers/ecourts"
	"ecourts-backend/lib/timezone"
)

// The demo catalog mirrors a handful of real-looking cases so the CLI
// and web form can be exercised without hammering the portal. Hearing
// dates are laid out relative to "now" so the listed-today/tomorrow
// flags stay truthful whenever the demo runs.

type demoSeed struct {
	cnr         string
	caseNumber  string
	caseTitle   string
	courtName   string
	caseType    string
	status      string
	serial      int
	filingDate  time.Time
	hearingDays int // days from today
}

var demoSeeds = []demoSeed{
	{
		cnr:        "DLCT01-123456-2023",
		caseNumber: "12345/2023",
		caseTitle:  "John Doe vs. Jane Smith",
		courtName:  "Delhi High Court",
		caseType:   "Civil",
		status:     "Pending",
		serial:     1,
		filingDate: time.Date(2023, 1, 15, 0, 0, 0, 0, timezone.Location),
	},
	{
		cnr:         "MHMC02-654321-2022",
		caseNumber:  "65432/2022",
		caseTitle:   "ABC Pvt Ltd vs. XYZ Traders",
		courtName:   "Mumbai City Civil Court",
		caseType:    "Commercial",
		status:      "Pending",
		serial:      7,
		filingDate:  time.Date(2022, 6, 10, 0, 0, 0, 0, timezone.Location),
		hearingDays: 1,
	},
	{
		cnr:        "KLER03-111222-2021",
		caseNumber: "11122/2021",
		caseTitle:  "State vs. Raman Nair",
		courtName:  "Ernakulam District Court",
		caseType:   "Criminal",
		status:     "Listed",
		serial:     15,
		filingDate: time.Date(2021, 9, 5, 0, 0, 0, 0, timezone.Location),
	},
	{
		cnr:         "TNCH04-777888-2020",
		caseNumber:  "77788/2020",
		caseTitle:   "Mohan vs. Housing Board",
		courtName:   "Chennai City Civil Court",
		caseType:    "Civil",
		status:      "Adjourned",
		serial:      23,
		filingDate:  time.Date(2020, 11, 20, 0, 0, 0, 0, timezone.Location),
		hearingDays: 1,
	},
	{
		cnr:         "RJJP05-333444-2019",
		caseNumber:  "33344/2019",
		caseTitle:   "Pooja Sharma vs. RTO Jaipur",
		courtName:   "Jaipur District Court",
		caseType:    "Motor Accident Claims",
		status:      "For Hearing",
		serial:      3,
		filingDate:  time.Date(2019, 3, 18, 0, 0, 0, 0, timezone.Location),
		hearingDays: 4,
	},
}

func (s demoSeed) record(now time.Time) *ecourts.CaseRecord {
	hearing := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, timezone.Location).
		AddDate(0, 0, s.hearingDays)
	year := ""
	if i := strings.LastIndex(s.caseNumber, "/"); i >= 0 {
		year = s.caseNumber[i+1:]
	}
	return &ecourts.CaseRecord{
		Cnr:            s.cnr,
		CaseType:       s.caseType,
		CaseNumber:     s.caseNumber,
		Year:           year,
		CaseTitle:      s.caseTitle,
		CourtName:      s.courtName,
		Status:         s.status,
		FilingDate:     s.filingDate,
		HearingDate:    hearing,
		SerialNumber:   s.serial,
		ListedToday:    s.hearingDays == 0,
		ListedTomorrow: s.hearingDays == 1,
	}
}

func demoSearchByCnr(cnr string, now time.Time) *ecourts.CaseRecord {
	for _, seed := range demoSeeds {
		if seed.cnr == cnr {
			return seed.record(now)
		}
	}
	return nil
}

func demoSearchByCase(caseType, caseNumber, year string, now time.Time) *ecourts.CaseRecord {
	for _, seed := range demoSeeds {
		rec := seed.record(now)
		if rec.CaseType == caseType && rec.CaseNumber == caseNumber && rec.Year == year {
			return rec
		}
	}
	return nil
}

func demoCauseList(courtCode string, date time.Time) *ecourts.CauseList {
	return &ecourts.CauseList{
		CourtCode:    courtCode,
		Date:         date,
		SerialSource: ecourts.SerialExplicit,
		Entries: []ecourts.CauseListEntry{
			{SerialNumber: 1, CaseNumber: "12345/2023", CaseTitle: "John Doe vs. Jane Smith", Petitioner: "John Doe", Respondent: "Jane Smith", Advocate: "Advocate ABC", CourtRoom: "Room 1", Time: "10:00 AM"},
			{SerialNumber: 2, CaseNumber: "67890/2023", CaseTitle: "ABC Pvt Ltd vs. XYZ Traders", Petitioner: "Alice Johnson", Respondent: "Bob Wilson", Advocate: "Advocate XYZ", CourtRoom: "Room 2", Time: "11:00 AM"},
			{SerialNumber: 3, CaseNumber: "22222/2022", CaseTitle: "Ravi Kumar vs. State", Petitioner: "Ravi Kumar", Respondent: "State", Advocate: "Adv. Mehta", CourtRoom: "Room 3", Time: "11:30 AM"},
			{SerialNumber: 4, CaseNumber: "33333/2021", CaseTitle: "Sita Devi vs. Nagar Nigam", Petitioner: "Sita Devi", Respondent: "Nagar Nigam", Advocate: "Adv. Rao", CourtRoom: "Room 4", Time: "12:00 PM"},
			{SerialNumber: 5, CaseNumber: "44444/2020", CaseTitle: "Om Prakash vs. Insurance Co.", Petitioner: "Om Prakash", Respondent: "National Insurance", Advocate: "Adv. Khan", CourtRoom: "Room 5", Time: "12:30 PM"},
		},
	}
}
