package ecourts

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"ecourts-backend/lib/fileout"
	"ecourts-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

var pdfMagic = []byte("%PDF-")

// FindPdfLink returns the first order/judgment PDF link discovered on
// a case details page, resolved against the portal base URL, or ""
// when the page offers none.
func (c *Client) FindPdfLink(doc *goquery.Document) string {
	anchors := htmlutil.GetAnchors(doc.Find("a.order_pdf, a[href$='.pdf']"), c.BaseUrl)
	if len(anchors) == 0 {
		return ""
	}
	return anchors[0].Href
}

// CasePdfLink re-fetches the case details page for a CNR and returns
// its PDF link, or "" when the case offers none.
func (c *Client) CasePdfLink(ctx context.Context, cnr string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:CasePdfLink")
	defer span.End()

	doc, pageUrl, err := c.getDocument(ctx, pathCnrSearch, map[string]string{
		"cino": cnr,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch case details page")
		return "", err
	}
	if shape := DetectPageShape(doc); shape != ShapeCaseDetails {
		err := &ExtractionError{Url: pageUrl, Reason: "expected a case details page, got " + shape.String()}
		span.SetStatus(codes.Error, err.Reason)
		return "", err
	}
	return c.FindPdfLink(doc), nil
}

// DownloadPdf fetches a discovered PDF link and writes it to dest.
// Reuses the client's retry/backoff and rate limit policy. The
// response must actually be a PDF (content-type or magic bytes);
// anything else is a *DownloadError.
func (c *Client) DownloadPdf(ctx context.Context, link string, dest string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:DownloadPdf")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		derr := &DownloadError{Link: link, Err: err}
		span.RecordError(derr)
		span.SetStatus(codes.Error, "failed to fetch pdf")
		slog.ErrorContext(ctx, "pdf fetch failed", "link", link, "err", err)
		return "", derr
	}
	if res.StatusCode() != 200 {
		derr := &DownloadError{Link: link, Err: &FetchError{
			Url:      link,
			Status:   res.StatusCode(),
			Attempts: c.retryCount + 1,
		}}
		span.SetStatus(codes.Error, "pdf fetch returned bad status")
		slog.ErrorContext(ctx, "pdf fetch returned bad status", "link", link, "status", res.StatusCode())
		return "", derr
	}

	body := res.Body()
	contentType := res.Header().Get("Content-Type")
	if !strings.Contains(contentType, "application/pdf") && !bytes.HasPrefix(body, pdfMagic) {
		derr := &DownloadError{Link: link, ContentType: contentType}
		span.SetStatus(codes.Error, "response is not a pdf")
		slog.ErrorContext(ctx, "pdf download got non-pdf response", "link", link, "content_type", contentType)
		return "", derr
	}

	err = fileout.Atomic(dest, func(w io.Writer) error {
		_, err := w.Write(body)
		return err
	})
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "downloaded pdf", "link", link, "dest", dest, "bytes", len(body))
	return dest, nil
}
