package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/korylprince/chat-transport/telemetry"
)

//SummaryReader reads a summary of the newest limit samples from a telemetry store
type SummaryReader interface {
	Summary(ctx context.Context, limit int) (*telemetry.Summary, error)
}

//GET /telemetry/
func handleReadTelemetry(rec *telemetry.MemoryRecorder, store SummaryReader, limit int) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		if store != nil {
			sum, err := store.Summary(r.Context(), limit)
			if err != nil {
				return handleError(http.StatusInternalServerError, fmt.Errorf("Could not read telemetry summary: %w", err))
			}
			return &handlerResponse{Code: http.StatusOK, Body: sum}
		}
		if rec == nil {
			return &handlerResponse{Code: http.StatusOK, Body: &telemetry.Summary{}}
		}
		return &handlerResponse{Code: http.StatusOK, Body: rec.Summary()}
	}
}
