// Package reddit is the network retrieval collaborator: scoped search over
// the Reddit API plus full thread text assembly, behind a request-rate budget.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/t3rryhuang/Sentiment-Insight/config"
	"github.com/t3rryhuang/Sentiment-Insight/models"
)

const (
	tokenURL = "https://www.reddit.com/api/v1/access_token"
	apiBase  = "https://oauth.reddit.com"

	// requestsPerMinute is the API budget; the limiter blocks instead of
	// letting a burst trip Reddit's rate limiting.
	requestsPerMinute = 100
)

// Post is one submission returned by a scoped search.
type Post struct {
	ID        string
	Title     string
	SelfText  string
	Permalink string
	CreatedAt time.Time
}

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	clientID   string
	secret     string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClientFromEnv builds a client from REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET
// and REDDIT_USER_AGENT. Missing variables are a configuration error and the
// run should not start.
func NewClientFromEnv() (*Client, error) {
	env, err := config.RequireEnv("REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET", "REDDIT_USER_AGENT")
	if err != nil {
		return nil, err
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/requestsPerMinute), 1),
		userAgent:  env["REDDIT_USER_AGENT"],
		clientID:   env["REDDIT_CLIENT_ID"],
		secret:     env["REDDIT_CLIENT_SECRET"],
	}, nil
}

// token returns a valid app-only OAuth token, refreshing when expired.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("reddit token error %d: %s", resp.StatusCode, string(body))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn-60) * time.Second)
	return c.accessToken, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	tok, err := c.token(ctx)
	if err != nil {
		return err
	}

	u := apiBase + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("reddit error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// listing mirrors the Reddit listing envelope.
type listing struct {
	Data struct {
		Children []struct {
			Data postData `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type postData struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	SelfText   string  `json:"selftext"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

// SearchPosts runs the entity-kind-scoped search and keeps only posts created
// inside [start, end): subreddit kinds list that community's newest posts,
// industry kinds search "<name> industry" site-wide, anything else searches
// the name site-wide.
func (c *Client) SearchPosts(ctx context.Context, entityType, entityName string, start, end time.Time, limit int) ([]Post, error) {
	var path string
	query := url.Values{
		"sort":  {"new"},
		"limit": {fmt.Sprintf("%d", limit)},
	}

	switch strings.ToLower(entityType) {
	case strings.ToLower(models.EntityTypeSubreddit):
		sub := strings.TrimPrefix(entityName, "r/")
		path = "/r/" + url.PathEscape(sub) + "/new"
	case strings.ToLower(models.EntityTypeIndustry):
		path = "/search"
		query.Set("q", entityName+" industry")
	default:
		path = "/search"
		query.Set("q", entityName)
	}

	var result listing
	if err := c.get(ctx, path, query, &result); err != nil {
		return nil, err
	}

	var posts []Post
	for _, child := range result.Data.Children {
		created := time.Unix(int64(child.Data.CreatedUTC), 0).UTC()
		if created.Before(start) || !created.Before(end) {
			continue
		}
		posts = append(posts, Post{
			ID:        child.Data.ID,
			Title:     child.Data.Title,
			SelfText:  child.Data.SelfText,
			Permalink: child.Data.Permalink,
			CreatedAt: created,
		})
	}
	return posts, nil
}

// commentNode is one node of the comment tree. Replies decode leniently:
// Reddit sends "" instead of an object for leaf comments.
type commentNode struct {
	Data struct {
		Body    string          `json:"body"`
		Replies json.RawMessage `json:"replies"`
	} `json:"data"`
}

type commentListing struct {
	Data struct {
		Children []commentNode `json:"children"`
	} `json:"data"`
}

// ThreadText assembles title + selftext + every comment body of a post, the
// unit the extraction pipeline works on.
func (c *Client) ThreadText(ctx context.Context, p Post) (string, error) {
	var payload []commentListing
	if err := c.get(ctx, strings.TrimSuffix(p.Permalink, "/")+".json", nil, &payload); err != nil {
		return "", err
	}

	parts := []string{p.Title, p.SelfText}
	if len(payload) > 1 {
		parts = append(parts, collectBodies(payload[1].Data.Children)...)
	}
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

func collectBodies(nodes []commentNode) []string {
	var out []string
	for _, n := range nodes {
		if n.Data.Body != "" {
			out = append(out, n.Data.Body)
		}
		if len(n.Data.Replies) > 0 && n.Data.Replies[0] == '{' {
			var nested commentListing
			if err := json.Unmarshal(n.Data.Replies, &nested); err == nil {
				out = append(out, collectBodies(nested.Data.Children)...)
			}
		}
	}
	return out
}
