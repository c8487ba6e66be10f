package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/recipemanager/internal/client/models"
)

// RESTClient talks JSON over HTTP to the recipe manager API. Every request
// passes through the pipeline; every failing response is dispatched to the
// pipeline's handlers exactly once before the error is returned.
//
// No retries and no client-side timeout: a failure is terminal for that
// attempt and the transport's defaults bound the wait.
type RESTClient struct {
	baseURL  string
	http     *http.Client
	pipeline *Pipeline
}

func NewRESTClient(baseURL string, pipeline *Pipeline) *RESTClient {
	return &RESTClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		pipeline: pipeline,
	}
}

// errorBody is the optional JSON error payload returned by the server.
type errorBody struct {
	Message string `json:"message"`
}

func (c *RESTClient) do(ctx context.Context, method, path string, body any, out any) error {

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.pipeline.apply(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		if data, readErr := io.ReadAll(resp.Body); readErr == nil {
			_ = json.Unmarshal(data, &eb)
		}
		c.pipeline.handleFailure(resp)
		return &APIError{Status: resp.StatusCode, Message: eb.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *RESTClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *RESTClient) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *RESTClient) ListMyRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes/my-recipes", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *RESTClient) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/recipes/%d", id), nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *RESTClient) CreateRecipe(ctx context.Context, recipe models.Recipe) (*models.Recipe, error) {
	var created models.Recipe
	if err := c.do(ctx, http.MethodPost, "/recipes", recipe, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *RESTClient) UpdateRecipe(ctx context.Context, id int64, recipe models.Recipe) (*models.Recipe, error) {
	var updated models.Recipe
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/recipes/%d", id), recipe, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *RESTClient) DeleteRecipe(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/recipes/%d", id), nil, nil)
}

func (c *RESTClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
