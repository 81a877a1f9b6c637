// Package client is a typed Go client for the CourseHub admin API. It
// also carries the UI-agnostic state containers an admin panel builds
// on: list stores with derived filtering, modal form sessions and the
// tabbed shell with persisted preferences.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// APIError is any non-2xx response. Message carries the server's own
// wording when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

// Client issues fire-once requests against one CourseHub backend. Every
// call attaches the bearer token; a 401 purges it and notifies
// OnUnauthorized so the caller can drop to the login screen.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	// OnUnauthorized fires once per 401 response, after the stored
	// token has been cleared.
	OnUnauthorized func()

	token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    http.DefaultClient,
	}
}

// SetToken stores the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the currently stored bearer token, empty after a 401.
func (c *Client) Token() string { return c.token }

func (c *Client) do(method, path string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.token = ""
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		return &APIError{Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) getJSON(path string, query url.Values, out interface{}) error {
	return c.do(http.MethodGet, path, query, nil, "", out)
}

func (c *Client) sendJSON(method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}
	return c.do(method, path, nil, body, "application/json", out)
}

// sendMultipart posts form fields plus optional named files, the shape
// course create/update uses for thumbnails.
func (c *Client) sendMultipart(method, path string, fields map[string]string, files map[string]NamedReader, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return err
		}
	}
	for key, file := range files {
		part, err := w.CreateFormFile(key, file.Name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.do(method, path, nil, &buf, w.FormDataContentType(), out)
}

// NamedReader pairs an upload stream with its filename.
type NamedReader struct {
	Name   string
	Reader io.Reader
}

// serverMessage digs the human-readable message out of an error
// envelope, if the body holds one.
func serverMessage(body io.Reader) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Error
}
