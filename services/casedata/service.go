package casedata

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"time"

	"ecourts-backend/lib/fileout"
	"ecourts-backend/lib/scrapers/ecourts"
	"ecourts-backend/lib/timezone"
)

// Service is the pipeline entrypoint shared by the CLI and the web
// layer. Each call is independent and synchronous; the scraper's rate
// limiter is the only serialization point. "Not found" is reported as
// a nil record with a nil error, never as an error.
type Service struct {
	scraper *ecourts.Client
	queries *QueryLog
	demo    bool

	now func() time.Time
}

// queries may be nil, in which case searches are not persisted.
// demo serves the offline catalog instead of touching the portal.
func NewService(scraper *ecourts.Client, queries *QueryLog, demo bool) Service {
	return Service{
		scraper: scraper,
		queries: queries,
		demo:    demo,
		now:     timezone.Now,
	}
}

func (s Service) record(ctx context.Context, rec QueryRecord, found bool, err error) {
	if s.queries == nil {
		return
	}
	rec.Found = found
	if err != nil {
		rec.Error = err.Error()
	}
	rec.CreatedAt = s.now()
	if logErr := s.queries.Record(ctx, rec); logErr != nil {
		slog.WarnContext(ctx, "failed to record query", "kind", rec.Kind, "err", logErr)
	}
}

func (s Service) SearchByCnr(ctx context.Context, cnr string) (*ecourts.CaseRecord, error) {
	var rec *ecourts.CaseRecord
	var err error
	if s.demo {
		rec = demoSearchByCnr(cnr, s.now())
	} else {
		rec, err = s.scraper.SearchByCnr(ctx, cnr)
	}
	s.record(ctx, QueryRecord{Kind: "cnr", Cnr: cnr}, rec != nil, err)
	return rec, err
}

func (s Service) SearchByCase(ctx context.Context, caseType, caseNumber, year string) (*ecourts.CaseRecord, error) {
	var rec *ecourts.CaseRecord
	var err error
	if s.demo {
		rec = demoSearchByCase(caseType, caseNumber, year, s.now())
	} else {
		rec, err = s.scraper.SearchByCase(ctx, caseType, caseNumber, year)
	}
	s.record(ctx, QueryRecord{
		Kind:       "case",
		CaseType:   caseType,
		CaseNumber: caseNumber,
		Year:       year,
	}, rec != nil, err)
	return rec, err
}

func (s Service) CauseList(ctx context.Context, courtCode string, date time.Time) (*ecourts.CauseList, error) {
	var list *ecourts.CauseList
	var err error
	if s.demo {
		list = demoCauseList(courtCode, date)
	} else {
		list, err = s.scraper.FetchCauseList(ctx, courtCode, date)
	}
	found := list != nil && len(list.Entries) > 0
	s.record(ctx, QueryRecord{
		Kind:      "causelist",
		CourtCode: courtCode,
		ListDate:  date.Format("02-01-2006"),
	}, found, err)
	return list, err
}

func (s Service) Courts() []ecourts.Court {
	return ecourts.Courts()
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SafeCaseFilename flattens a case identifier (which may contain
// slashes, e.g. "12345/2023") into something usable as a filename.
func SafeCaseFilename(caseId string) string {
	return fmt.Sprintf("case_%s.pdf", unsafeFilename.ReplaceAllString(caseId, "_"))
}

// DownloadCasePdf locates the order/judgment PDF for a case and
// stores it under outputDir. Returns the written path, or a
// *ecourts.DownloadError when the case offers no PDF or the portal
// serves something that is not one.
func (s Service) DownloadCasePdf(ctx context.Context, rec *ecourts.CaseRecord, outputDir string) (string, error) {
	caseId := rec.Cnr
	if caseId == "" {
		caseId = rec.CaseNumber
	}
	dest := filepath.Join(outputDir, SafeCaseFilename(caseId))

	if s.demo {
		// a stub with valid magic bytes, enough to exercise the
		// download path offline
		err := fileout.WriteText(dest, "%PDF-1.4\n% demo placeholder\n%%EOF\n")
		if err != nil {
			return "", err
		}
		slog.InfoContext(ctx, "wrote demo pdf", "dest", dest)
		return dest, nil
	}

	// pdf links are only discoverable through the CNR details page
	if rec.Cnr == "" {
		return "", &ecourts.DownloadError{
			Err: fmt.Errorf("case %s has no cnr, cannot locate its pdf", caseId),
		}
	}

	link, err := s.scraper.CasePdfLink(ctx, rec.Cnr)
	if err != nil {
		return "", err
	}
	if link == "" {
		return "", &ecourts.DownloadError{
			Link: "",
			Err:  fmt.Errorf("case %s has no downloadable pdf", caseId),
		}
	}
	return s.scraper.DownloadPdf(ctx, link, dest)
}
