package server

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"ecourts-backend/lib/fileout"
	"ecourts-backend/lib/scrapers/ecourts"
	"ecourts-backend/lib/timezone"
	"ecourts-backend/services/casedata"

	"github.com/gofiber/fiber/v2"
)

type Options struct {
	// OutputDir is where cause list exports land and where
	// /download/:filename serves from.
	OutputDir string
}

// errKind maps the pipeline's error taxonomy onto a stable string the
// API reports, so clients can tell a portal outage from a markup
// change without parsing messages.
func errKind(err error) string {
	var fetchErr *ecourts.FetchError
	if errors.As(err, &fetchErr) {
		return "fetch"
	}
	var extractionErr *ecourts.ExtractionError
	if errors.As(err, &extractionErr) {
		return "extraction"
	}
	var normErr *ecourts.NormalizationError
	if errors.As(err, &normErr) {
		return "normalization"
	}
	var downloadErr *ecourts.DownloadError
	if errors.As(err, &downloadErr) {
		return "download"
	}
	return "internal"
}

func pipelineError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  errKind(err),
	})
}

type searchRequest struct {
	SearchType string `json:"search_type"`
	Cnr        string `json:"cnr"`
	CaseType   string `json:"case_type"`
	CaseNumber string `json:"case_number"`
	Year       string `json:"year"`
}

func searchHandler(svc casedata.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		var rec *ecourts.CaseRecord
		var err error
		switch req.SearchType {
		case "cnr":
			if req.Cnr == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "CNR is required"})
			}
			rec, err = svc.SearchByCnr(c.Context(), req.Cnr)
		case "details":
			if req.CaseType == "" || req.CaseNumber == "" || req.Year == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All case details are required"})
			}
			rec, err = svc.SearchByCase(c.Context(), req.CaseType, req.CaseNumber, req.Year)
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid search type"})
		}

		if err != nil {
			return pipelineError(c, err)
		}
		if rec == nil {
			return c.JSON(fiber.Map{"success": false, "message": "Case not found"})
		}
		return c.JSON(fiber.Map{"success": true, "data": rec})
	}
}

type causeListRequest struct {
	CourtCode string `json:"court_code"`
	Date      string `json:"date"`
}

func causeListHandler(svc casedata.Service, opts Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := causeListRequest{CourtCode: "01"}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		date := timezone.Now()
		if req.Date != "" {
			parsed, err := ecourts.ParseDate(req.Date)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			date = parsed
		}

		list, err := svc.CauseList(c.Context(), req.CourtCode, date)
		if err != nil {
			return pipelineError(c, err)
		}
		if len(list.Entries) == 0 {
			return c.JSON(fiber.Map{"success": false, "message": "No cause list found"})
		}

		filename := fmt.Sprintf("cause_list_%s.csv", time.Now().Format("20060102_150405"))
		err = casedata.WriteCauseList(list, fileout.FormatCsv, filepath.Join(opts.OutputDir, filename))
		if err != nil {
			slog.Error("failed to export cause list", "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{
			"success":  true,
			"data":     list.Entries,
			"filename": filename,
		})
	}
}

func courtsHandler(svc casedata.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "data": svc.Courts()})
	}
}

func downloadHandler(opts Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Base strips any traversal components; files are only ever
		// served out of the output directory
		name := filepath.Base(c.Params("filename"))
		return c.Download(filepath.Join(opts.OutputDir, name))
	}
}

func RegisterRoutes(app *fiber.App, svc casedata.Service, opts Options) {
	app.Post("/search", searchHandler(svc))
	app.Post("/causelist", causeListHandler(svc, opts))
	app.Get("/courts", courtsHandler(svc))
	app.Get("/download/:filename", downloadHandler(opts))
}
