// Package client is a Go client for the book-collection REST API plus a
// small page cache that mirrors the UI's reload-after-mutation behavior.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/AP-Porag/book-management-app/internal/book"
	"github.com/AP-Porag/book-management-app/internal/user"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
}

func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(10), 5),
	}
}

// SetToken sets the bearer token sent on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is a non-2xx response decoded from the server's
// {"message": ...} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Session is the register/login response.
type Session struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

// BookDraft is the create-book payload.
type BookDraft struct {
	Title            string `json:"title"`
	Author           string `json:"author,omitempty"`
	Genre            string `json:"genre,omitempty"`
	Description      string `json:"description,omitempty"`
	Thumbnail        string `json:"thumbnail,omitempty"`
	Rating           string `json:"rating,omitempty"`
	Year             string `json:"year,omitempty"`
	ShortDescription string `json:"shortDescription,omitempty"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, &s)
	if err != nil {
		return Session{}, err
	}
	c.token = s.Token
	return s, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email": email, "password": password,
	}, &s)
	if err != nil {
		return Session{}, err
	}
	c.token = s.Token
	return s, nil
}

func (c *Client) Profile(ctx context.Context) (user.User, error) {
	var u user.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &u); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (c *Client) CreateBook(ctx context.Context, draft BookDraft) (book.Book, error) {
	var b book.Book
	if err := c.do(ctx, http.MethodPost, "/books", draft, &b); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

func (c *Client) GetBook(ctx context.Context, id string) (book.Book, error) {
	var b book.Book
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil, &b); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

// UpdateBook sends a partial update: only the keys present in fields are
// changed on the server.
func (c *Client) UpdateBook(ctx context.Context, id string, fields map[string]any) (book.Book, error) {
	var b book.Book
	if err := c.do(ctx, http.MethodPut, "/books/"+url.PathEscape(id), fields, &b); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListBooks(ctx context.Context, page, limit int) (book.Page, error) {
	path := "/books?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	var p book.Page
	if err := c.do(ctx, http.MethodGet, path, nil, &p); err != nil {
		return book.Page{}, err
	}
	return p, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&msg); decodeErr == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(target)
}
