package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/korylprince/chat-transport/api"
	"github.com/korylprince/chat-transport/chatbot"
)

//POST /chat
func handleChat(t *chatbot.Transport) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		var req *ChatRequest
		d := json.NewDecoder(r.Body)

		err := d.Decode(&req)
		if err != nil || req == nil {
			return handleError(http.StatusBadRequest, fmt.Errorf("Could not decode JSON: %v", err))
		}

		msgs := api.NormalizeMessages(req.Messages)
		if err = api.ValidateMessages(msgs); err != nil {
			return handleUserError(err)
		}

		res, err := t.Chat(r.Context(), msgs, chatbot.Options{QualityMode: req.QualityMode})
		if errors.Is(err, chatbot.ErrCancelled) {
			return handleError(http.StatusRequestTimeout, err)
		} else if err != nil {
			return handleError(http.StatusInternalServerError, err)
		}

		return &handlerResponse{Code: http.StatusOK, Body: res}
	}
}
