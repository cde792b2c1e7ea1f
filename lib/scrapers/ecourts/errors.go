package ecourts

import "fmt"

// FetchError is returned after the client has exhausted its retries
// against the portal. It wraps the last transport or status error.
type FetchError struct {
	Url      string
	Status   int
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.Url, e.Attempts, e.Err)
	}
	return fmt.Sprintf("fetch %s failed after %d attempts: status %d", e.Url, e.Attempts, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError means the page did not match any recognized shape,
// e.g. an interstitial or error page where results were expected. A
// "record not found" page is NOT an ExtractionError.
type ExtractionError struct {
	Url    string
	Reason string
}

func (e *ExtractionError) Error() string {
	if e.Url == "" {
		return fmt.Sprintf("unrecognized page: %s", e.Reason)
	}
	return fmt.Sprintf("unrecognized page at %s: %s", e.Url, e.Reason)
}

// NormalizationError means the extracted fields could not be made into
// a valid CaseRecord, e.g. no identifying field at all.
type NormalizationError struct {
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("cannot normalize record: %s", e.Reason)
}

// DownloadError covers PDF retrieval failures, both fetch failures and
// responses that turn out not to be a PDF.
type DownloadError struct {
	Link        string
	ContentType string
	Err         error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download %s: %v", e.Link, e.Err)
	}
	return fmt.Sprintf("download %s: content-type %q is not a PDF", e.Link, e.ContentType)
}

func (e *DownloadError) Unwrap() error { return e.Err }
