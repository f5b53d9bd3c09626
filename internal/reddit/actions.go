package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Submission fetches a submission by its base36 id.
func (c *Client) Submission(ctx context.Context, id string) (*Submission, error) {
	params := url.Values{}
	params.Set("id", "t3_"+id)

	var resp listing
	if err := c.doRequest(ctx, http.MethodGet, "/api/info", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch submission %s: %w", id, err)
	}

	if len(resp.Data.Children) == 0 {
		return nil, ErrSubmissionNotFound
	}

	submission := resp.Data.Children[0].Data
	return &submission, nil
}

// SubmitLink creates a link post in the subreddit and returns the new
// submission's id and fullname.
func (c *Client) SubmitLink(ctx context.Context, subreddit, title, link string) (*Submission, error) {
	return c.submit(ctx, url.Values{
		"sr":       {subreddit},
		"kind":     {"link"},
		"title":    {title},
		"url":      {link},
		"resubmit": {"true"},
	})
}

// SubmitText creates a self-text post in the subreddit and returns the
// new submission's id and fullname.
func (c *Client) SubmitText(ctx context.Context, subreddit, title, text string) (*Submission, error) {
	return c.submit(ctx, url.Values{
		"sr":    {subreddit},
		"kind":  {"self"},
		"title": {title},
		"text":  {text},
	})
}

func (c *Client) submit(ctx context.Context, params url.Values) (*Submission, error) {
	params.Set("api_type", "json")

	var resp jsonResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/submit", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to submit post: %w", err)
	}
	if err := checkJSONErrors(&resp); err != nil {
		return nil, fmt.Errorf("submit rejected: %w", err)
	}

	return &Submission{
		ID:       resp.JSON.Data.ID,
		FullName: resp.JSON.Data.Name,
		URL:      resp.JSON.Data.URL,
	}, nil
}

// Comment posts a reply on the thing identified by parentFullName
// (t3_ for submissions) and returns the created comment.
func (c *Client) Comment(ctx context.Context, parentFullName, text string) (*Comment, error) {
	params := url.Values{
		"api_type": {"json"},
		"thing_id": {parentFullName},
		"text":     {text},
	}

	var resp jsonResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/comment", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to post comment: %w", err)
	}
	if err := checkJSONErrors(&resp); err != nil {
		return nil, fmt.Errorf("comment rejected: %w", err)
	}
	if len(resp.JSON.Data.Things) == 0 {
		return nil, fmt.Errorf("comment response contained no comment")
	}

	comment := resp.JSON.Data.Things[0].Data
	return &comment, nil
}

// DistinguishSticky marks the comment as a distinguished moderator
// comment and pins it to the top of the thread.
func (c *Client) DistinguishSticky(ctx context.Context, commentFullName string) error {
	params := url.Values{
		"api_type": {"json"},
		"id":       {commentFullName},
		"how":      {"yes"},
		"sticky":   {"true"},
	}

	var resp jsonResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/distinguish", params, &resp); err != nil {
		return fmt.Errorf("failed to distinguish comment: %w", err)
	}
	if err := checkJSONErrors(&resp); err != nil {
		return fmt.Errorf("distinguish rejected: %w", err)
	}

	return nil
}

// Remove performs a moderator removal of the thing.
func (c *Client) Remove(ctx context.Context, fullName string) error {
	params := url.Values{
		"id":   {fullName},
		"spam": {"false"},
	}

	if err := c.doRequest(ctx, http.MethodPost, "/api/remove", params, nil); err != nil {
		return fmt.Errorf("failed to remove %s: %w", fullName, err)
	}
	return nil
}

// Lock prevents further comments on the thing.
func (c *Client) Lock(ctx context.Context, fullName string) error {
	params := url.Values{
		"id": {fullName},
	}

	if err := c.doRequest(ctx, http.MethodPost, "/api/lock", params, nil); err != nil {
		return fmt.Errorf("failed to lock %s: %w", fullName, err)
	}
	return nil
}

// NewestSubmissions fetches up to limit newest submissions in the
// subreddit, newest first.
func (c *Client) NewestSubmissions(ctx context.Context, subreddit string, limit int) ([]Submission, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))

	var resp listing
	if err := c.doRequest(ctx, http.MethodGet, "/r/"+subreddit+"/new", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to list new submissions in r/%s: %w", subreddit, err)
	}

	submissions := make([]Submission, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		submissions = append(submissions, child.Data)
	}
	return submissions, nil
}
