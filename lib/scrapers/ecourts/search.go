package ecourts

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
)

// SearchByCnr looks up a single case by its CNR. A nil record with a
// nil error means the portal reported no such case, which is a valid
// outcome distinct from every error kind.
func (c *Client) SearchByCnr(ctx context.Context, cnr string) (*CaseRecord, error) {
	ctx, span := tracer.Start(ctx, "client:SearchByCnr")
	defer span.End()

	doc, pageUrl, err := c.getDocument(ctx, pathCnrSearch, map[string]string{
		"cino": cnr,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch cnr search page")
		slog.ErrorContext(ctx, "cnr search fetch failed", "cnr", cnr, "err", err)
		return nil, err
	}

	switch shape := DetectPageShape(doc); shape {
	case ShapeNotFound:
		slog.InfoContext(ctx, "no case found", "cnr", cnr, "url", pageUrl)
		return nil, nil
	case ShapeCaseDetails:
	default:
		err := &ExtractionError{Url: pageUrl, Reason: "expected a case details page, got " + shape.String()}
		span.SetStatus(codes.Error, err.Reason)
		slog.ErrorContext(ctx, "cnr search returned an unrecognized page", "cnr", cnr, "url", pageUrl)
		return nil, err
	}

	raw := ExtractFields(doc, CaseFields)
	rec, err := Normalize(raw, c.now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to normalize record")
		slog.ErrorContext(ctx, "cnr search normalization failed", "cnr", cnr, "url", pageUrl, "err", err)
		return nil, err
	}
	return rec, nil
}

// SearchByCase looks up a single case by its type/number/year triple,
// the portal's alternate key. Same not-found semantics as SearchByCnr.
func (c *Client) SearchByCase(ctx context.Context, caseType, caseNumber, year string) (*CaseRecord, error) {
	ctx, span := tracer.Start(ctx, "client:SearchByCase")
	defer span.End()

	doc, pageUrl, err := c.getDocument(ctx, pathCaseSearch, map[string]string{
		"case_type": caseType,
		"case_no":   caseNumber,
		"rgyear":    year,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch case search page")
		slog.ErrorContext(
			ctx, "case search fetch failed",
			"case_type", caseType, "case_number", caseNumber, "year", year, "err", err,
		)
		return nil, err
	}

	switch shape := DetectPageShape(doc); shape {
	case ShapeNotFound:
		slog.InfoContext(
			ctx, "no case found",
			"case_type", caseType, "case_number", caseNumber, "year", year, "url", pageUrl,
		)
		return nil, nil
	case ShapeCaseDetails:
	default:
		err := &ExtractionError{Url: pageUrl, Reason: "expected a case details page, got " + shape.String()}
		span.SetStatus(codes.Error, err.Reason)
		return nil, err
	}

	raw := ExtractFields(doc, CaseFields)
	// the portal's detail page sometimes omits the search triple from
	// its tables; fall back to what the caller searched with
	if _, ok := raw["case_type"]; !ok {
		raw["case_type"] = caseType
	}
	if _, ok := raw["case_number"]; !ok {
		raw["case_number"] = caseNumber
	}
	if _, ok := raw["year"]; !ok {
		raw["year"] = year
	}

	rec, err := Normalize(raw, c.now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to normalize record")
		slog.ErrorContext(
			ctx, "case search normalization failed",
			"case_type", caseType, "case_number", caseNumber, "year", year, "url", pageUrl, "err", err,
		)
		return nil, err
	}
	return rec, nil
}
