package entity

// MaxSearchResults caps the grounding candidates handed to the resource prompt.
const MaxSearchResults = 5

type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// GoogleSearchResponse is the subset of the Custom Search JSON API response the connector reads.
type GoogleSearchResponse struct {
	Items []SearchResult `json:"items"`
}
