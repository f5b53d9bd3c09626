package reddit

// Submission is a subreddit post, link or self-text, identified by its
// base36 id. FullName is the API "thing" id (t3_ prefix).
type Submission struct {
	ID        string  `json:"id"`
	FullName  string  `json:"name"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Subreddit string  `json:"subreddit"`
	Permalink string  `json:"permalink"`
	URL       string  `json:"url"`
	SelfText  string  `json:"selftext"`
	Locked    bool    `json:"locked"`
	Created   float64 `json:"created_utc"`
}

// Shortlink returns the redd.it short URL for the submission.
func (s *Submission) Shortlink() string {
	return "https://redd.it/" + s.ID
}

// PermalinkURL returns the full www.reddit.com permalink.
func (s *Submission) PermalinkURL() string {
	return "https://www.reddit.com" + s.Permalink
}

// Comment is a comment the bot posted on a submission.
type Comment struct {
	ID        string `json:"id"`
	FullName  string `json:"name"`
	Permalink string `json:"permalink"`
}

// PermalinkURL returns the full www.reddit.com permalink.
func (c *Comment) PermalinkURL() string {
	return "https://www.reddit.com" + c.Permalink
}

// listing mirrors reddit's Listing envelope.
type listing struct {
	Data struct {
		Children []struct {
			Data Submission `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// jsonResponse mirrors the api_type=json envelope returned by the
// submit, comment, and distinguish endpoints.
type jsonResponse struct {
	JSON struct {
		Errors [][]string `json:"errors"`
		Data   struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			URL    string `json:"url"`
			Things []struct {
				Kind string  `json:"kind"`
				Data Comment `json:"data"`
			} `json:"things"`
		} `json:"data"`
	} `json:"json"`
}
