package httpapi

import (
	"net/http"

	"github.com/korylprince/chat-transport/generator"
)

//GET /topics/
func handleReadTopics(c *generator.Catalog) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		guides := c.Guides()
		topics := make([]*Topic, 0, len(guides))
		for _, g := range guides {
			topics = append(topics, &Topic{ID: g.ID, Title: g.Title, Summary: g.Summary})
		}
		return &handlerResponse{Code: http.StatusOK, Body: &ReadTopicsResponse{Topics: topics}}
	}
}
