package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

const testDocument = `<?xml version="1.0" encoding="UTF-8"?>
<transcription>
  <entry id="e1">
    <text>Item Martin Öder von Aitenpach geben waitz</text>
    <date when="1544-05-28"/>
    <measure quantity="18" unit="#fl"/>
  </entry>
  <entry id="e2">
    <text>Empfangen von dem Hofmeister zu Vilshofen</text>
    <date when="1544-05-28"/>
    <measure quantity="16" unit="#fl"/>
  </entry>
  <entry id="e3">
    <date when="1544-06-01"/>
  </entry>
</transcription>`

func testServer(t *testing.T) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "books.xml")
	assert.NoError(t, os.WriteFile(path, []byte(testDocument), 0o644))

	server := New(8080, path)
	assert.NoError(t, server.reload(context.Background()))
	return server
}

func get(t *testing.T, server *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	server.router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(into))
}

func TestAPITransactions(t *testing.T) {
	server := testServer(t)

	t.Run("All", func(t *testing.T) {
		rec := get(t, server, "/api/transactions")
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp TransactionsResponse
		decode(t, rec, &resp)
		assert.Equal(t, 2, resp.Total, "the textless record contributes nothing")
	})

	t.Run("Search", func(t *testing.T) {
		rec := get(t, server, "/api/transactions?search=aitenpach")
		var resp TransactionsResponse
		decode(t, rec, &resp)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "e1", resp.Transactions[0].SourceID)
	})

	t.Run("InvalidSortKey", func(t *testing.T) {
		rec := get(t, server, "/api/transactions?sort=bogus")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ByID", func(t *testing.T) {
		rec := get(t, server, "/api/transactions/0")
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp TransactionResponse
		decode(t, rec, &resp)
		assert.Equal(t, "e1", resp.SourceID)
		assert.Equal(t, "1544-05-28", *resp.Date)
	})

	t.Run("ByIDNotFound", func(t *testing.T) {
		rec := get(t, server, "/api/transactions/99")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAPIAggregates(t *testing.T) {
	server := testServer(t)

	t.Run("Time", func(t *testing.T) {
		rec := get(t, server, "/api/aggregates/time?unit=month")
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Buckets []struct {
				Key   string `json:"key"`
				Count int    `json:"count"`
			} `json:"buckets"`
		}
		decode(t, rec, &resp)
		assert.Equal(t, 1, len(resp.Buckets))
		assert.Equal(t, "1544-05", resp.Buckets[0].Key)
		assert.Equal(t, 2, resp.Buckets[0].Count)
	})

	t.Run("TimeInvalidUnit", func(t *testing.T) {
		rec := get(t, server, "/api/aggregates/time?unit=century")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Currency", func(t *testing.T) {
		rec := get(t, server, "/api/aggregates/currency?metric=count")
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Currencies []struct {
				Code  string `json:"code"`
				Value string `json:"value"`
			} `json:"currencies"`
		}
		decode(t, rec, &resp)
		assert.Equal(t, 1, len(resp.Currencies))
		assert.Equal(t, "fl", resp.Currencies[0].Code)
	})

	t.Run("Histogram", func(t *testing.T) {
		rec := get(t, server, "/api/aggregates/histogram?buckets=5")
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Labels []string `json:"labels"`
			Counts []int    `json:"counts"`
		}
		decode(t, rec, &resp)
		assert.Equal(t, 5, len(resp.Counts))
	})

	t.Run("Seasonal", func(t *testing.T) {
		rec := get(t, server, "/api/aggregates/seasonal?axis=weekday")
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Labels []string `json:"labels"`
		}
		decode(t, rec, &resp)
		assert.Equal(t, 7, len(resp.Labels))
	})
}

func TestAPIRelated(t *testing.T) {
	server := testServer(t)

	rec := get(t, server, "/api/related?id=0")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Target  int `json:"target"`
		Related []struct {
			Score       int                 `json:"score"`
			Transaction TransactionResponse `json:"transaction"`
		} `json:"related"`
	}
	decode(t, rec, &resp)

	// e2 is same-day (+5) with a shared currency (+1) and a base-value
	// ratio of 16/18 (+2).
	assert.Equal(t, 1, len(resp.Related))
	assert.Equal(t, "e2", resp.Related[0].Transaction.SourceID)
	assert.Equal(t, 8, resp.Related[0].Score)

	recMissing := get(t, server, "/api/related?id=42")
	assert.Equal(t, http.StatusNotFound, recMissing.Code)
}

func TestAPIExport(t *testing.T) {
	server := testServer(t)

	t.Run("CSV", func(t *testing.T) {
		rec := get(t, server, "/api/export.csv")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.Contains(rec.Header().Get("Content-Disposition"), "transactions.csv"))
		assert.True(t, strings.Contains(rec.Body.String(), "1544-05-28"))
	})

	t.Run("JSON", func(t *testing.T) {
		rec := get(t, server, "/api/export.json")
		assert.Equal(t, http.StatusOK, rec.Code)

		var payload struct {
			Metadata struct {
				RecordCount int `json:"recordCount"`
			} `json:"metadata"`
		}
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
		assert.Equal(t, 2, payload.Metadata.RecordCount)
	})
}

func TestAPIReport(t *testing.T) {
	server := testServer(t)

	rec := get(t, server, "/api/report")
	assert.Equal(t, http.StatusOK, rec.Code)

	var report LoadReport
	decode(t, rec, &report)
	assert.Equal(t, 3, report.Records)
	assert.Equal(t, 2, report.Transactions)
	assert.Equal(t, 1, report.Skipped)
}

func TestReloadSwapsCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.xml")
	assert.NoError(t, os.WriteFile(path, []byte(testDocument), 0o644))

	server := New(8080, path)
	assert.NoError(t, server.reload(context.Background()))
	assert.Equal(t, 2, server.store.Len())

	smaller := `<transcription><entry id="x"><text>geben wein</text></entry></transcription>`
	assert.NoError(t, os.WriteFile(path, []byte(smaller), 0o644))
	assert.NoError(t, server.reload(context.Background()))

	assert.Equal(t, 1, server.store.Len())
	assert.Equal(t, "x", server.store.All()[0].SourceID)
}
