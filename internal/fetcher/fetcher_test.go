package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"applyhome/internal/endpoint"
	"applyhome/internal/logger"
)

var apt = endpoint.Category{Label: "아파트", ResourcePath: "getAPTLttotPblancDetail"}

func items(n, offset int) []map[string]any {
	out := make([]map[string]any, n)
	for i := range out {
		out[i] = map[string]any{
			"HOUSE_MANAGE_NO": offset + i,
			"HOUSE_NM":        fmt.Sprintf("단지 %d", offset+i),
		}
	}

	return out
}

func writePage(w http.ResponseWriter, data []map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"currentCount": len(data),
		"data":         data,
	})
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, "test-key", 5*time.Second, logger.Discard(), opts...)
}

func pageOf(r *http.Request) int {
	p, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return p
}

func TestFetchCategory_StopsOnShortPage(t *testing.T) {
	var calls int

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++

		switch pageOf(r) {
		case 1:
			writePage(w, items(100, 0))
		case 2:
			writePage(w, items(37, 100))
		default:
			t.Errorf("unexpected page %d", pageOf(r))
		}
	})

	records, outcome := c.FetchCategory(context.Background(), apt, 50)

	assert.Len(t, records, 137)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, outcome.Pages)
	assert.Equal(t, 137, outcome.Records)
	assert.Equal(t, PageEnd, outcome.Status)
	assert.NoError(t, outcome.Err)
}

func TestFetchCategory_RespectsMaxPages(t *testing.T) {
	var calls int

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writePage(w, items(100, (pageOf(r)-1)*100))
	})

	records, outcome := c.FetchCategory(context.Background(), apt, 2)

	assert.Len(t, records, 200)
	assert.Equal(t, 2, calls)
	assert.Equal(t, PageEnd, outcome.Status)
}

func TestFetchCategory_SendsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		assert.Equal(t, "/getAPTLttotPblancDetail", r.URL.Path)
		assert.Equal(t, "abc+def==", q.Get("serviceKey"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "100", q.Get("perPage"))
		assert.Equal(t, "json", q.Get("returnType"))

		writePage(w, items(1, 0))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "abc%2Bdef%3D%3D", 5*time.Second, nil)

	records, outcome := c.FetchCategory(context.Background(), apt, 1)
	assert.Len(t, records, 1)
	assert.Equal(t, PageEnd, outcome.Status)
}

func TestFetchCategory_NotFoundIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	records, outcome := c.FetchCategory(context.Background(), apt, 50)

	assert.Empty(t, records)
	assert.Equal(t, PageUnavailable, outcome.Status)
	assert.NoError(t, outcome.Err)
}

func TestFetchCategory_ServerErrorKeepsEarlierPages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if pageOf(r) == 1 {
			writePage(w, items(100, 0))
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	records, outcome := c.FetchCategory(context.Background(), apt, 50)

	assert.Len(t, records, 100)
	assert.Equal(t, PageFailed, outcome.Status)
	assert.ErrorIs(t, outcome.Err, ErrUnexpectedStatus)
	assert.Equal(t, 2, outcome.Pages)
}

func TestFetchCategory_NonJSONIsFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	})

	records, outcome := c.FetchCategory(context.Background(), apt, 50)

	assert.Empty(t, records)
	assert.Equal(t, PageFailed, outcome.Status)
	assert.ErrorIs(t, outcome.Err, ErrDecode)
}

func TestFetchCategory_EmptyDataEnds(t *testing.T) {
	for name, body := range map[string]string{
		"empty array":  `{"currentCount":0,"data":[]}`,
		"missing data": `{"currentCount":0}`,
		"empty body":   ``,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			records, outcome := c.FetchCategory(context.Background(), apt, 50)

			assert.Empty(t, records)
			assert.Equal(t, PageEnd, outcome.Status)
			assert.Equal(t, 1, outcome.Pages)
			assert.NoError(t, outcome.Err)
		})
	}
}

func TestFetchCategory_TransportErrorIsNotRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, "test-key", time.Second, logger.Discard())

	records, outcome := c.FetchCategory(context.Background(), apt, 50)

	assert.Empty(t, records)
	assert.Equal(t, PageFailed, outcome.Status)
	assert.Error(t, outcome.Err)
	assert.Equal(t, 1, outcome.Pages)
}

func TestFetchCategory_PageFunc(t *testing.T) {
	type seen struct {
		label       string
		page, count int
	}

	var got []seen

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if pageOf(r) == 1 {
			writePage(w, items(100, 0))
			return
		}

		writePage(w, items(5, 100))
	}, WithPageFunc(func(label string, page, count int) {
		got = append(got, seen{label, page, count})
	}))

	_, _ = c.FetchCategory(context.Background(), apt, 0)

	require.Len(t, got, 2)
	assert.Equal(t, seen{"아파트", 1, 100}, got[0])
	assert.Equal(t, seen{"아파트", 2, 5}, got[1])
}

func TestPageStatusString(t *testing.T) {
	assert.Equal(t, "continue", PageContinue.String())
	assert.Equal(t, "end", PageEnd.String())
	assert.Equal(t, "unavailable", PageUnavailable.String())
	assert.Equal(t, "failed", PageFailed.String())
}
