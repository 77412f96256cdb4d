package handlers

// CreateLinkRequest is the request body for creating a short link.
type CreateLinkRequest struct {
	Body struct {
		LongURL  string `doc:"The URL to shorten"                example:"https://example.com/very/long/path" json:"longUrl,omitempty"`
		CustomID string `doc:"Optional caller-chosen identifier" example:"my-link"                            json:"customId,omitempty"`
	}
}

// CreateLinkResponse is the response for a successfully created short link.
type CreateLinkResponse struct {
	Body struct {
		ShortURL string `doc:"The full short URL" example:"http://localhost:8080/Ab3xYz"           json:"shortUrl"`
		LongURL  string `doc:"The original URL"   example:"https://example.com/very/long/path"     json:"longUrl"`
	}
}

// RedirectRequest is the request for resolving a short link.
type RedirectRequest struct {
	ShortID string `doc:"The short identifier" example:"Ab3xYz" path:"shortId"`
}

// RedirectResponse redirects the client to the stored long URL.
type RedirectResponse struct {
	Status   int
	Location string `doc:"The stored long URL" header:"Location"`
}
