package twython

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// searchServer serves canned pages for consecutive search/tweets calls and
// records the since_id each request carried.
func searchServer(t *testing.T, pages []string) (*httptest.Server, *[]string, *int) {
	t.Helper()
	var sinceIDs []string
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1.1/search/tweets.json" {
			http.NotFound(w, r)
			return
		}
		sinceIDs = append(sinceIDs, r.URL.Query().Get("since_id"))
		page := `{"statuses":[]}`
		if calls < len(pages) {
			page = pages[calls]
		}
		calls++
		w.Write([]byte(page))
	}))
	return ts, &sinceIDs, &calls
}

func TestSearchGenPaginates(t *testing.T) {
	ts, sinceIDs, calls := searchServer(t, []string{
		`{"statuses":[{"id_str":"5","text":"newest"},{"id_str":"3","text":"older"}]}`,
	})
	defer ts.Close()

	client := testClient(t, ts)

	var texts []string
	for tweet, err := range client.SearchGen(context.Background(), "golang", nil) {
		if err != nil {
			t.Fatal(err)
		}
		texts = append(texts, tweet["text"].(string))
	}

	if len(texts) != 2 || texts[0] != "newest" || texts[1] != "older" {
		t.Fatalf("tweets = %v", texts)
	}
	if *calls != 2 {
		t.Fatalf("expected 2 page fetches, got %d", *calls)
	}
	// First page has no bound; the next uses newest id + 1.
	if (*sinceIDs)[0] != "" || (*sinceIDs)[1] != "6" {
		t.Fatalf("since_ids = %v", *sinceIDs)
	}
}

func TestSearchGenEmptyFirstPage(t *testing.T) {
	ts, _, calls := searchServer(t, nil)
	defer ts.Close()

	client := testClient(t, ts)
	for _, err := range client.SearchGen(context.Background(), "golang", nil) {
		t.Fatalf("unexpected yield, err=%v", err)
	}
	if *calls != 1 {
		t.Fatalf("expected 1 call, got %d", *calls)
	}
}

func TestSearchGenRespectsPinnedSinceID(t *testing.T) {
	ts, sinceIDs, _ := searchServer(t, []string{
		`{"statuses":[{"id_str":"5"}]}`,
	})
	defer ts.Close()

	client := testClient(t, ts)
	for _, err := range client.SearchGen(context.Background(), "golang", Params{"since_id": 100}) {
		if err != nil {
			t.Fatal(err)
		}
	}
	if (*sinceIDs)[0] != "100" || (*sinceIDs)[1] != "100" {
		t.Fatalf("since_ids = %v", *sinceIDs)
	}
}

func TestSearchGenLazy(t *testing.T) {
	ts, _, calls := searchServer(t, []string{
		`{"statuses":[{"id_str":"5"},{"id_str":"3"}]}`,
		`{"statuses":[{"id_str":"9"}]}`,
	})
	defer ts.Close()

	client := testClient(t, ts)
	for range client.SearchGen(context.Background(), "golang", nil) {
		break // consumer stops after the first tweet
	}
	if *calls != 1 {
		t.Fatalf("expected no further fetches after break, got %d calls", *calls)
	}
}

func TestSearchGenBadTweetID(t *testing.T) {
	ts, _, _ := searchServer(t, []string{
		`{"statuses":[{"id_str":"not-a-number"}]}`,
	})
	defer ts.Close()

	client := testClient(t, ts)

	var yielded int
	var lastErr error
	for tweet, err := range client.SearchGen(context.Background(), "golang", nil) {
		if err != nil {
			lastErr = err
			continue
		}
		if tweet != nil {
			yielded++
		}
	}

	if yielded != 1 {
		t.Fatalf("expected the tweet itself to be yielded, got %d", yielded)
	}
	var apiErr *APIError
	if !errors.As(lastErr, &apiErr) {
		t.Fatalf("expected *APIError, got %v", lastErr)
	}
}

func TestSearchGenPropagatesCallErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"errors":[{"message":"Invalid or expired token."}]}`))
	}))
	defer ts.Close()

	client := testClient(t, ts)

	var lastErr error
	for _, err := range client.SearchGen(context.Background(), "golang", nil) {
		lastErr = err
	}
	var authErr *AuthError
	if !errors.As(lastErr, &authErr) {
		t.Fatalf("expected *AuthError, got %v", lastErr)
	}
}
