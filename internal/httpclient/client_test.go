package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchText_SendsIdentityHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	client := NewClient(5*time.Second, "test-agent/1.0", 0)
	if _, err := client.FetchText(context.Background(), server.URL, nil); err != nil {
		t.Fatalf("FetchText: %v", err)
	}

	if ua := got.Get("User-Agent"); ua != "test-agent/1.0" {
		t.Errorf("expected configured user agent, got %q", ua)
	}
	if accept := got.Get("Accept"); !strings.Contains(accept, "text/html") {
		t.Errorf("expected browser accept header, got %q", accept)
	}
	if cc := got.Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("expected no-cache, got %q", cc)
	}
}

func TestFetchText_OverridesCannotBlankIdentity(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	client := NewClient(5*time.Second, "test-agent/1.0", 0)
	overrides := map[string]string{
		"User-Agent": "", // must not blank the identity
		"Referer":    "https://shop.example/",
	}
	if _, err := client.FetchText(context.Background(), server.URL, overrides); err != nil {
		t.Fatalf("FetchText: %v", err)
	}

	if ua := got.Get("User-Agent"); ua != "test-agent/1.0" {
		t.Errorf("expected identity user agent to survive, got %q", ua)
	}
	if ref := got.Get("Referer"); ref != "https://shop.example/" {
		t.Errorf("expected referer override, got %q", ref)
	}
}

func TestFetchText_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(5*time.Second, "", 0)
	_, err := client.FetchText(context.Background(), server.URL, nil)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fetchErr.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", fetchErr.Status)
	}
	if fetchErr.URL != server.URL {
		t.Errorf("expected URL %s, got %s", server.URL, fetchErr.URL)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected 404 in message, got %q", err.Error())
	}
}

func TestFetchText_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "landed")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(5*time.Second, "", 0)
	result, err := client.FetchText(context.Background(), server.URL, nil)
	if err != nil {
		t.Fatalf("FetchText: %v", err)
	}

	if result.Body != "landed" {
		t.Errorf("expected redirected body, got %q", result.Body)
	}
	if result.FinalURL != server.URL+"/final" {
		t.Errorf("expected final URL after redirect, got %s", result.FinalURL)
	}
}

func TestFetchText_NetworkError(t *testing.T) {
	client := NewClient(500*time.Millisecond, "", 0)

	// Closed port; connection should be refused
	_, err := client.FetchText(context.Background(), "http://127.0.0.1:1/", nil)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %T: %v", err, err)
	}
	if fetchErr.Status != 0 {
		t.Errorf("expected no HTTP status for network error, got %d", fetchErr.Status)
	}
}
