//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

const apiBaseURL = "http://127.0.0.1:8080"

func httpPostJSON(t *testing.T, u string, body any, wantCode int) []byte {
	t.Helper()
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, u, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return doReq(t, req, wantCode)
}

func httpPostForm(t *testing.T, u string, form url.Values, wantCode int) []byte {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, u, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doReq(t, req, wantCode)
}

func httpAuth(t *testing.T, method, u, token string, body any, wantCode int) []byte {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, u, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return doReq(t, req, wantCode)
}

func doReq(t *testing.T, req *http.Request, wantCode int) []byte {
	t.Helper()
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http %s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantCode {
		t.Fatalf("http %s %s: got %d want %d body=%s", req.Method, req.URL, resp.StatusCode, wantCode, string(data))
	}
	return data
}

func signUpAndLogin(t *testing.T, username, email, pass string) string {
	t.Helper()
	httpPostJSON(t, apiBaseURL+"/register", map[string]string{
		"username": username,
		"password": pass,
		"email":    email,
	}, 200)

	tokResp := httpPostForm(t, apiBaseURL+"/token", url.Values{
		"username": {username},
		"password": {pass},
	}, 200)

	var tok struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		Username     string `json:"username"`
	}
	if err := json.Unmarshal(tokResp, &tok); err != nil {
		t.Fatalf("unmarshal token: %v body=%s", err, string(tokResp))
	}
	if tok.TokenType != "bearer" || tok.AccessToken == "" {
		t.Fatalf("unexpected token response: %s", string(tokResp))
	}
	return tok.AccessToken
}

func TestAuthFlow_Basic(t *testing.T) {
	user := fmt.Sprintf("it-user-%d", time.Now().UnixNano())
	pass := "supersecret"
	email := user + "@example.com"

	token := signUpAndLogin(t, user, email, pass)
	t.Logf("[login] got token len=%d", len(token))

	// duplicate registration
	resp, _ := json.Marshal(map[string]string{"username": user, "password": pass, "email": email})
	req, _ := http.NewRequest(http.MethodPost, apiBaseURL+"/register", bytes.NewReader(resp))
	req.Header.Set("Content-Type", "application/json")
	doReq(t, req, 409)

	// bad password
	httpPostForm(t, apiBaseURL+"/token", url.Values{
		"username": {user},
		"password": {"wrong"},
	}, 401)
}

func TestBlogCRUD_OwnerGating(t *testing.T) {
	owner := signUpAndLogin(t, fmt.Sprintf("it-owner-%d", time.Now().UnixNano()), fmt.Sprintf("o%d@example.com", time.Now().UnixNano()), "supersecret")
	other := signUpAndLogin(t, fmt.Sprintf("it-other-%d", time.Now().UnixNano()), fmt.Sprintf("x%d@example.com", time.Now().UnixNano()), "supersecret")

	created := httpAuth(t, http.MethodPost, apiBaseURL+"/blog", owner, map[string]any{
		"title":        "integration post",
		"content":      "written by the integration suite",
		"is_published": true,
	}, 201)

	var b struct {
		BlogID int64 `json:"blog_id"`
	}
	if err := json.Unmarshal(created, &b); err != nil {
		t.Fatalf("unmarshal blog: %v body=%s", err, string(created))
	}

	blogURL := fmt.Sprintf("%s/blog/%d", apiBaseURL, b.BlogID)

	httpAuth(t, http.MethodGet, blogURL, owner, nil, 200)
	httpAuth(t, http.MethodGet, blogURL, other, nil, 403)
	httpAuth(t, http.MethodGet, blogURL, "", nil, 401)

	httpAuth(t, http.MethodPut, blogURL, other, map[string]any{
		"title": "hijack", "content": "nope", "is_published": true,
	}, 403)

	httpAuth(t, http.MethodDelete, blogURL, other, nil, 403)
	httpAuth(t, http.MethodDelete, blogURL, owner, nil, 200)
	httpAuth(t, http.MethodGet, blogURL, owner, nil, 404)
}

func TestPublicFeedAndSearch(t *testing.T) {
	owner := signUpAndLogin(t, fmt.Sprintf("it-feed-%d", time.Now().UnixNano()), fmt.Sprintf("f%d@example.com", time.Now().UnixNano()), "supersecret")

	marker := fmt.Sprintf("marker%d", time.Now().UnixNano())
	httpAuth(t, http.MethodPost, apiBaseURL+"/blog", owner, map[string]any{
		"title":        "feed post " + marker,
		"content":      "public content",
		"is_published": true,
	}, 201)
	httpAuth(t, http.MethodPost, apiBaseURL+"/blog", owner, map[string]any{
		"title":        "draft " + marker,
		"content":      "hidden content",
		"is_published": false,
	}, 201)

	found := doReq(t, mustGet(t, apiBaseURL+"/search/blogs?q="+marker), 200)
	var results []map[string]any
	if err := json.Unmarshal(found, &results); err != nil {
		t.Fatalf("unmarshal search: %v body=%s", err, string(found))
	}
	if len(results) != 1 {
		t.Fatalf("search: want 1 published hit, got %d body=%s", len(results), string(found))
	}
}

func mustGet(t *testing.T, u string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		t.Fatal(err)
	}
	return req
}
