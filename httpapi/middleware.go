package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"text/template"
	"time"
)

type handlerResponse struct {
	Code int
	Body interface{}
	Err  error
}

type returnHandler func(http.ResponseWriter, *http.Request) *handlerResponse

const logTemplate = "{{.Date}} {{.Method}} {{.Path}}{{if .Query}}?{{.Query}}{{end}} {{.Code}} ({{.Status}}) {{.Duration}}{{if .Err}}, Error: {{.Err}}{{end}}\n"

var logTmpl = template.Must(template.New("log").Parse(logTemplate))

type logData struct {
	Date     string
	Status   string
	Code     int
	Method   string
	Path     string
	Query    string
	Duration time.Duration
	Err      error
}

func logMiddleware(next returnHandler, writer io.Writer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := next(w, r)

		err := logTmpl.Execute(writer, &logData{
			Date:     start.Format("2006-01-02:15:04:05 -0700"),
			Status:   http.StatusText(resp.Code),
			Code:     resp.Code,
			Method:   r.Method,
			Path:     r.URL.Path,
			Query:    r.URL.RawQuery,
			Duration: time.Since(start).Round(time.Millisecond),
			Err:      resp.Err,
		})

		if err != nil {
			panic(err)
		}
	})
}

func checkContentType(r *http.Request) *handlerResponse {
	if r.Method == http.MethodGet {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return handleError(http.StatusBadRequest, errors.New("Could not parse Content-Type"))
	}
	if mediaType != "application/json" {
		return handleError(http.StatusBadRequest, errors.New("Content-Type not application/json"))
	}
	return nil
}

func jsonMiddleware(next returnHandler) returnHandler {
	return func(w http.ResponseWriter, r *http.Request) *handlerResponse {
		resp := checkContentType(r)
		if resp == nil {
			resp = next(w, r)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Code)
		if err := json.NewEncoder(w).Encode(resp.Body); err != nil {
			return handleError(http.StatusInternalServerError, fmt.Errorf("Could encode json: %v", err))
		}
		return resp
	}
}
