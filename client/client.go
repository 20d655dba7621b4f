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
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/totegamma/foodgram"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "foodgram-client"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("foodgram api: status %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

type Client struct {
	client    *http.Client
	cache     *cache.Cache
	userAgent string
	baseURL   string

	mu    sync.RWMutex
	token string
}

// New returns a client for the API served at baseURL, e.g.
// "https://foodgram.example.com".
func New(baseURL string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:    &httpClient,
		cache:     cache.New(10*time.Minute, 15*time.Minute),
		userAgent: defaultUserAgent,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
	httpClient.Transport = c
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// Token returns the auth token in use, empty when logged out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, nil
}

// HttpRequest performs a JSON request and decodes the response into
// response when it is non-nil.
func (c *Client) HttpRequest(ctx context.Context, method, path string, body, response any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if response == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, req foodgram.UserCreateRequest) (foodgram.UserCreated, error) {
	var user foodgram.UserCreated
	err := c.HttpRequest(ctx, http.MethodPost, "/api/users/", req, &user)
	return user, err
}

// Login obtains a token and uses it for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var token foodgram.TokenResponse
	err := c.HttpRequest(ctx, http.MethodPost, "/api/auth/token/login/", foodgram.LoginRequest{
		Email:    email,
		Password: password,
	}, &token)
	if err != nil {
		return err
	}
	c.SetToken(token.AuthToken)
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.HttpRequest(ctx, http.MethodPost, "/api/auth/token/logout/", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) Tags(ctx context.Context) ([]foodgram.Tag, error) {
	cacheKey := "tags"
	if x, found := c.cache.Get(cacheKey); found {
		return x.([]foodgram.Tag), nil
	}

	var tags []foodgram.Tag
	if err := c.HttpRequest(ctx, http.MethodGet, "/api/tags/", nil, &tags); err != nil {
		return nil, err
	}
	c.cache.Set(cacheKey, tags, cache.DefaultExpiration)
	return tags, nil
}

// Ingredients searches ingredients by name prefix; an empty prefix lists all.
func (c *Client) Ingredients(ctx context.Context, prefix string) ([]foodgram.Ingredient, error) {
	cacheKey := "ingredients:" + prefix
	if x, found := c.cache.Get(cacheKey); found {
		return x.([]foodgram.Ingredient), nil
	}

	path := "/api/ingredients/"
	if prefix != "" {
		path += "?" + url.Values{"name": {prefix}}.Encode()
	}

	var ingredients []foodgram.Ingredient
	if err := c.HttpRequest(ctx, http.MethodGet, path, nil, &ingredients); err != nil {
		return nil, err
	}
	c.cache.Set(cacheKey, ingredients, cache.DefaultExpiration)
	return ingredients, nil
}

func (c *Client) Recipe(ctx context.Context, id int64) (foodgram.Recipe, error) {
	var recipe foodgram.Recipe
	err := c.HttpRequest(ctx, http.MethodGet, "/api/recipes/"+strconv.FormatInt(id, 10)+"/", nil, &recipe)
	return recipe, err
}

type RecipeQuery struct {
	Page             int
	Limit            int
	Author           int64
	Tags             []string
	IsFavorited      bool
	IsInShoppingCart bool
}

func (q RecipeQuery) encode() string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Author > 0 {
		v.Set("author", strconv.FormatInt(q.Author, 10))
	}
	for _, tag := range q.Tags {
		v.Add("tags", tag)
	}
	if q.IsFavorited {
		v.Set("is_favorited", "1")
	}
	if q.IsInShoppingCart {
		v.Set("is_in_shopping_cart", "1")
	}
	return v.Encode()
}

func (c *Client) Recipes(ctx context.Context, q RecipeQuery) (foodgram.Page[foodgram.Recipe], error) {
	path := "/api/recipes/"
	if query := q.encode(); query != "" {
		path += "?" + query
	}

	var page foodgram.Page[foodgram.Recipe]
	err := c.HttpRequest(ctx, http.MethodGet, path, nil, &page)
	return page, err
}

func (c *Client) CreateRecipe(ctx context.Context, req foodgram.RecipeWriteRequest) (foodgram.Recipe, error) {
	var recipe foodgram.Recipe
	err := c.HttpRequest(ctx, http.MethodPost, "/api/recipes/", req, &recipe)
	return recipe, err
}

func (c *Client) AddToCart(ctx context.Context, recipeID int64) (foodgram.RecipeShort, error) {
	var short foodgram.RecipeShort
	err := c.HttpRequest(ctx, http.MethodPost, "/api/recipes/"+strconv.FormatInt(recipeID, 10)+"/shopping_cart/", nil, &short)
	return short, err
}

// DownloadShoppingList returns the rendered shopping list document.
func (c *Client) DownloadShoppingList(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/recipes/download_shopping_cart/", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(raw), nil
}
