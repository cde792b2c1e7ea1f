package ecourts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"ecourts-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func serveFixture(t *testing.T, w http.ResponseWriter, name string) {
	contents, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	w.Header().Set("Content-Type", "text/html")
	w.Write(contents)
}

func newTestClient(t *testing.T, baseUrl string, retries int) *Client {
	client, err := NewClient(ClientOptions{
		BaseUrl:            baseUrl,
		Timeout:            5 * time.Second,
		RetryCount:         retries,
		RetryWaitTime:      10 * time.Millisecond,
		MinRequestInterval: time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func TestRetryExhaustionReturnsFetchError(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 2)

	start := time.Now()
	_, _, err := client.getDocument(context.Background(), pathCnrSearch, nil)
	elapsed := time.Since(start)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, http.StatusServiceUnavailable, fetchErr.Status)
	require.Equal(t, 3, fetchErr.Attempts)

	require.EqualValues(t, 3, hits.Load(), "one initial attempt plus two retries")
	// two backoff waits with a 10ms base; jitter makes the exact value
	// unpredictable but the floor is half the base per wait
	require.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
}

func TestRetryGivesUpOnTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client := newTestClient(t, server.URL, 1)

	_, _, err := client.getDocument(context.Background(), pathCnrSearch, nil)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, 2, fetchErr.Attempts)
	require.Error(t, errors.Unwrap(fetchErr))
}

func TestRateLimiterSpacesRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveFixture(t, w, "not_found.html")
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{
		BaseUrl:            server.URL,
		RetryCount:         1,
		MinRequestInterval: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, _, err := client.getDocument(context.Background(), pathCnrSearch, nil)
		require.NoError(t, err)
	}
	// first request is free (burst of 1), the next two must wait
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestSearchByCnrHappyPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "DLCT01-123456-2023", r.URL.Query().Get("cino"))
		serveFixture(t, w, "case_details.html")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)
	client.now = func() time.Time {
		return time.Date(2025, 10, 20, 11, 0, 0, 0, timezone.Location)
	}

	rec, err := client.SearchByCnr(context.Background(), "DLCT01-123456-2023")
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.Equal(t, "DLCT01-123456-2023", rec.Cnr)
	require.Equal(t, "Civil", rec.CaseType)
	require.Equal(t, "12345/2023", rec.CaseNumber)
	require.Equal(t, "Delhi High Court", rec.CourtName)
	require.Equal(t, 1, rec.SerialNumber)
	require.True(t, rec.ListedToday)
	require.False(t, rec.ListedTomorrow)
}

func TestSearchByCnrNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveFixture(t, w, "not_found.html")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)

	rec, err := client.SearchByCnr(context.Background(), "ZZZZ99-999999-1999")
	require.NoError(t, err, "not found is a valid outcome, not an error")
	require.Nil(t, rec)
}

func TestSearchByCnrUnrecognizedPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveFixture(t, w, "interstitial.html")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)

	_, err := client.SearchByCnr(context.Background(), "DLCT01-123456-2023")
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
}

func TestSearchByCaseFallsBackToSearchTriple(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveFixture(t, w, "case_details_minimal.html")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)

	rec, err := client.SearchByCase(context.Background(), "Commercial", "65432/2022", "2022")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, "MHMC02-654321-2022", rec.Cnr)
	require.Equal(t, "Commercial", rec.CaseType)
	require.Equal(t, "65432/2022", rec.CaseNumber)
	require.Equal(t, "2022", rec.Year)
}

func TestFetchCauseListPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			serveFixture(t, w, "cause_list_page2.html")
			return
		}
		require.Equal(t, "01", r.URL.Query().Get("court_code"))
		require.Equal(t, "20-10-2025", r.URL.Query().Get("cause_list_date"))
		serveFixture(t, w, "cause_list_page1.html")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)

	list, err := client.FetchCauseList(context.Background(), "01", causeListDate())
	require.NoError(t, err)
	require.Equal(t, SerialExplicit, list.SerialSource)
	require.Len(t, list.Entries, 4)

	// cross-page order preserved
	caseNumbers := make([]string, len(list.Entries))
	for i, e := range list.Entries {
		caseNumbers[i] = e.CaseNumber
	}
	require.Equal(t, []string{"12345/2023", "67890/2023", "22222/2022", "33333/2021"}, caseNumbers)
	require.Equal(t, 4, list.Entries[3].SerialNumber)
}

func TestFetchCauseListEmptyDocket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveFixture(t, w, "not_found.html")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 1)

	list, err := client.FetchCauseList(context.Background(), "01", causeListDate())
	require.NoError(t, err, "an empty docket is a valid outcome")
	require.Empty(t, list.Entries)
}
