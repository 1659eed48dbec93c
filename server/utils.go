package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/google/uuid"
)

// Problem API response.
type problemResponse struct {
	Status  string `json:"status"`
	Problem string `json:"problem"`
}

// Generic API respond.
func respond(writer http.ResponseWriter, status int, data interface{}) {
	d, err := json.Marshal(data)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(d) // nolint: gosec, errcheck
}

// Plain HTTP_200 API response.
func respondOk(writer http.ResponseWriter) {
	respond(writer, http.StatusOK, map[string]string{"status": "OK"})
}

// Error API response.
func respondError(writer http.ResponseWriter, status int, problem string) {
	respond(writer, status, &problemResponse{Status: "ERROR", Problem: problem})
}

// Maps known errors to HTTP statuses.
func respondOkError(writer http.ResponseWriter, err error) {
	switch err.(type) {
	case nil:
		respondOk(writer)
	case *ErrUnknownInterface, *ErrUnknownModule:
		respondError(writer, http.StatusNotFound, err.Error())
	case *ErrBadRequest:
		respondError(writer, http.StatusBadRequest, err.Error())
	default:
		respondError(writer, http.StatusInternalServerError, err.Error())
	}
}

// Request ID middleware for the API.
// Incoming ID is preserved.
func (s *HostServer) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if "" == id {
			id = uuid.New().String()
		}

		w.Header().Set(headerRequestID, id)
		ctx := context.WithValue(r.Context(), ctxtRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logger middleware for the API.
func (s *HostServer) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Logger.Debug("REST invocation", common.LogSystemToken, logSystem,
			common.LogURLToken, r.RequestURI, common.LogRequestToken, getContextRequestID(r))
		next.ServeHTTP(w, r)
	})
}

// Gets current request ID out of context.
func getContextRequestID(request *http.Request) string {
	id, ok := request.Context().Value(ctxtRequestID).(string)
	if !ok {
		return ""
	}

	return id
}

// Adapts logger to the recovery handler.
type recoveryLogger struct {
	logger common.ILoggerProvider
}

// Println logs recovered panic.
func (l *recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("Recovered from API panic", fmt.Errorf("%s", fmt.Sprint(v...)),
		common.LogSystemToken, logSystem)
}
