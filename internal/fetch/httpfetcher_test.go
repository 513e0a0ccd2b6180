package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hamed0406/dashfetch/internal/domain"
)

func userReq() domain.ResourceRequest {
	return domain.ResourceRequest{
		Name:  domain.ResourceUser,
		Path:  "/users/7",
		Shape: domain.ShapeRecord,
	}
}

func postsReq() domain.ResourceRequest {
	return domain.ResourceRequest{
		Name:  domain.ResourcePosts,
		Path:  "/posts",
		Query: map[string]string{"userId": "7", "_limit": "5"},
		Shape: domain.ShapeList,
	}
}

func TestHTTPFetcher_RecordOK(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.URL.Path != "/users/7" {
			t.Errorf("path = %q, want /users/7", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want application/json", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"name":"Kurtis Weissnat","email":"Telly.Hoeger@billy.biz"}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 2*time.Second)
	res, err := f.Fetch(context.Background(), userReq())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server saw %d calls, want 1", got)
	}
	if res.Name != domain.ResourceUser {
		t.Errorf("Name = %q, want %q", res.Name, domain.ResourceUser)
	}
	u, err := res.User()
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if u.ID != 7 || u.Name != "Kurtis Weissnat" {
		t.Errorf("decoded user = %+v", u)
	}
	if res.ElapsedMS <= 0 {
		t.Errorf("ElapsedMS = %v, want > 0", res.ElapsedMS)
	}
	if res.RetrievedAt.IsZero() {
		t.Error("RetrievedAt is zero")
	}
}

func TestHTTPFetcher_ListOKAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts" {
			t.Errorf("path = %q, want /posts", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("userId") != "7" || q.Get("_limit") != "5" {
			t.Errorf("query = %q, want userId=7 and _limit=5", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"userId":7,"id":1,"title":"first","body":"b"},{"userId":7,"id":2,"title":"second","body":"b"}]`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL+"/", 2*time.Second) // trailing slash must not double up
	res, err := f.Fetch(context.Background(), postsReq())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	posts, err := res.Posts()
	if err != nil {
		t.Fatalf("Posts: %v", err)
	}
	if len(posts) != 2 || posts[0].Title != "first" {
		t.Errorf("decoded posts = %+v", posts)
	}
}

func TestHTTPFetcher_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream sad", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 2*time.Second)
	_, err := f.Fetch(context.Background(), userReq())
	if err == nil {
		t.Fatal("expected error for 503")
	}
	ff, ok := domain.AsFetchFailure(err)
	if !ok {
		t.Fatalf("error %v is not a FetchFailure", err)
	}
	if !domain.IsBadResponse(err) {
		t.Errorf("kind = %v, want bad_response", ff.Kind)
	}
	if ff.Status != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", ff.Status)
	}
	if ff.Resource != domain.ResourceUser {
		t.Errorf("Resource = %q, want %q", ff.Resource, domain.ResourceUser)
	}
}

func TestHTTPFetcher_TransportDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	f := NewHTTPFetcher(srv.URL, 500*time.Millisecond)
	_, err := f.Fetch(context.Background(), userReq())
	if err == nil {
		t.Fatal("expected error against closed server")
	}
	if !domain.IsTransport(err) {
		t.Errorf("error %v, want transport kind", err)
	}
}

func TestHTTPFetcher_TransportTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 50*time.Millisecond)
	_, err := f.Fetch(context.Background(), userReq())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !domain.IsTransport(err) {
		t.Errorf("error %v, want transport kind", err)
	}
}

func TestHTTPFetcher_DecodeFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
		req  domain.ResourceRequest
	}{
		{"malformed json", `{"id": 7,`, userReq()},
		{"object where list expected", `{"id":1}`, postsReq()},
		{"list where object expected", `[1,2,3]`, userReq()},
		{"empty body", ``, userReq()},
		{"null body", `null`, postsReq()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			f := NewHTTPFetcher(srv.URL, 2*time.Second)
			_, err := f.Fetch(context.Background(), tc.req)
			if err == nil {
				t.Fatal("expected decode error")
			}
			ff, ok := domain.AsFetchFailure(err)
			if !ok {
				t.Fatalf("error %v is not a FetchFailure", err)
			}
			if !domain.IsDecode(err) {
				t.Errorf("kind = %v, want decode", ff.Kind)
			}
			if ff.Resource != tc.req.Name {
				t.Errorf("Resource = %q, want %q", ff.Resource, tc.req.Name)
			}
		})
	}
}

func TestHTTPFetcher_PayloadPreservedVerbatim(t *testing.T) {
	raw := `[{"userId":7,"id":1,"title":"delectus aut autem","completed":false}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(raw))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 2*time.Second)
	res, err := f.Fetch(context.Background(), domain.ResourceRequest{
		Name:  domain.ResourceTodos,
		Path:  "/todos",
		Shape: domain.ShapeList,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(res.Payload) != raw {
		t.Errorf("payload altered:\n got %s\nwant %s", res.Payload, raw)
	}
	var todos []domain.Todo
	if err := json.Unmarshal(res.Payload, &todos); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(todos) != 1 || todos[0].Title != "delectus aut autem" {
		t.Errorf("decoded todos = %+v", todos)
	}
}
