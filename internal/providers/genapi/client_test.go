package genapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestSubmitPostsToModelPath(t *testing.T) {
	var gotPath, gotAuth, gotBody string
	client, err := NewClient(Options{
		APIKey:  "secret",
		BaseURL: "https://gen.example.com/api/v1/",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			return jsonResponse(http.StatusOK, `{"request_id":"abc","status":"starting"}`), nil
		})},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	sub, err := client.Submit(context.Background(), "gpt-4o-mini", map[string]any{"prompt": "hi"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gotPath != "/api/v1/networks/gpt-4o-mini" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if !strings.Contains(gotBody, `"prompt":"hi"`) {
		t.Fatalf("unexpected body: %s", gotBody)
	}
	if sub.RequestID != "abc" || sub.Status != "starting" {
		t.Fatalf("unexpected submission: %+v", sub)
	}
}

func TestSubmitNumericRequestID(t *testing.T) {
	client, _ := NewClient(Options{
		APIKey: "k",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"request_id":123456789}`), nil
		})},
	})
	sub, err := client.Submit(context.Background(), "m", struct{}{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.RequestID != "123456789" {
		t.Fatalf("unexpected request id: %q", sub.RequestID)
	}
}

func TestSubmitMissingRequestIDIsNotAnError(t *testing.T) {
	client, _ := NewClient(Options{
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"status":"queued"}`), nil
		})},
	})
	sub, err := client.Submit(context.Background(), "m", struct{}{})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.RequestID != "" {
		t.Fatalf("expected empty request id, got %q", sub.RequestID)
	}
}

func TestSubmitRequiresModel(t *testing.T) {
	client, _ := NewClient(Options{})
	if _, err := client.Submit(context.Background(), "  ", nil); !errors.Is(err, ErrEmptyModel) {
		t.Fatalf("expected ErrEmptyModel, got %v", err)
	}
}

func TestSubmitSurfacesProviderMessage(t *testing.T) {
	client, _ := NewClient(Options{
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized, `{"detail":"invalid token"}`), nil
		})},
	})
	_, err := client.Submit(context.Background(), "m", struct{}{})
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid token") || !strings.Contains(err.Error(), "401") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatusReadsRequestPath(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/request/get/42" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status":"success","result":["one"]}`))
	}))
	defer ts.Close()

	client, _ := NewClient(Options{APIKey: "k", BaseURL: ts.URL})
	raw, err := client.Status(context.Background(), "42")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if raw["status"] != "success" {
		t.Fatalf("unexpected payload: %v", raw)
	}
}

func TestStatusRejectsNonObject(t *testing.T) {
	client, _ := NewClient(Options{
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `["not","an","object"]`), nil
		})},
	})
	if _, err := client.Status(context.Background(), "1"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDownloadOmitsBearerToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("download leaked auth header: %q", got)
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG"))
	}))
	defer ts.Close()

	client, _ := NewClient(Options{APIKey: "secret"})
	data, contentType, err := client.Download(context.Background(), ts.URL+"/logo.png")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(data) != "\x89PNG" || contentType != "image/png" {
		t.Fatalf("unexpected download: %q %q", data, contentType)
	}
}

func TestDownloadRejectsRelativeURL(t *testing.T) {
	client, _ := NewClient(Options{})
	if _, _, err := client.Download(context.Background(), "/generated/logo.png"); err == nil {
		t.Fatalf("expected error for relative url")
	}
}
