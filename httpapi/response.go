package httpapi

//Topic is a catalog entry summary
type Topic struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

//ReadTopicsResponse contains the local generator's topics
type ReadTopicsResponse struct {
	Topics []*Topic `json:"topics"`
}
