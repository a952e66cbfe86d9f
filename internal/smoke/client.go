// Package smoke rejoue le parcours de base de l'API contre un serveur lancé.
package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http  *resty.Client
	token string
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10*time.Second).
			SetHeader("Accept", "application/json"),
	}
}

// Result garde le code et le corps brut de chaque étape
type Result struct {
	Step   string
	Status int
	Body   json.RawMessage
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type postResponse struct {
	ID uint `json:"id"`
}

// Run enregistre l'utilisateur (ou se connecte s'il existe déjà), crée un post
// puis lit la liste et les statistiques.
func (c *Client) Run(ctx context.Context, username, email, password string) ([]Result, error) {
	var results []Result

	var tok tokenResponse
	res, err := c.do(ctx, "register", http.MethodPost, "/auth/register/",
		credentials{Username: username, Email: email, Password: password}, &tok)
	if err != nil {
		return results, err
	}
	results = append(results, res)

	if res.Status != http.StatusCreated {
		res, err = c.do(ctx, "login", http.MethodPost, "/auth/login/",
			credentials{Username: username, Password: password}, &tok)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if res.Status != http.StatusOK {
			return results, fmt.Errorf("login failed with status %d", res.Status)
		}
	}
	c.token = tok.Token

	var created postResponse
	res, err = c.do(ctx, "create_post", http.MethodPost, "/posts/", map[string]string{
		"caption":           "My first AI-generated post!",
		"hashtags":          "#AI #SocialMedia #Marketing",
		"platform":          "instagram",
		"status":            "draft",
		"image_prompt_text": "A beautiful sunset over the ocean",
	}, &created)
	if err != nil {
		return results, err
	}
	results = append(results, res)
	if res.Status != http.StatusCreated {
		return results, fmt.Errorf("create post failed with status %d", res.Status)
	}

	for _, step := range []struct{ name, path string }{
		{"list_posts", "/posts/"},
		{"dashboard_stats", "/dashboard/stats/"},
	} {
		res, err = c.do(ctx, step.name, http.MethodGet, step.path, nil, nil)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if res.Status != http.StatusOK {
			return results, fmt.Errorf("%s failed with status %d", step.name, res.Status)
		}
	}
	return results, nil
}

func (c *Client) do(ctx context.Context, step, method, path string, body, dest interface{}) (Result, error) {
	req := c.http.R().SetContext(ctx)
	if c.token != "" {
		req.SetHeader("Authorization", "Token "+c.token)
	}
	if body != nil {
		req.SetBody(body)
	}
	if dest != nil {
		req.SetResult(dest)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return Result{Step: step}, fmt.Errorf("%s: %w", step, err)
	}
	return Result{Step: step, Status: resp.StatusCode(), Body: resp.Body()}, nil
}
