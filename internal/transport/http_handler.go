package transport

import (
	"errors"
	"io"
	"net/http"

	"github.com/goodnatureofminers/blocktree/internal/blocktree/wire"
	"go.uber.org/zap"
)

// RequestsPath is where HTTPHandler accepts ledger requests.
const RequestsPath = "/v1/requests"

const maxBodyBytes = 1 << 20

// HTTPHandler serves ledger requests posted as JSON.
type HTTPHandler struct {
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewHTTPHandler returns an HTTPHandler backed by dispatcher.
func NewHTTPHandler(dispatcher *Dispatcher, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{dispatcher: dispatcher, logger: logger}
}

// Routes returns a mux with the request endpoint registered.
func (h *HTTPHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(RequestsPath, h)
	return mux
}

// ServeHTTP implements http.Handler.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.write(w, http.StatusMethodNotAllowed, wire.Response{Error: "method not allowed"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.write(w, http.StatusRequestEntityTooLarge, wire.Response{Error: err.Error()})
			return
		}
		h.write(w, http.StatusBadRequest, wire.Response{Error: err.Error()})
		return
	}
	req, err := wire.DecodeRequest(body)
	if err != nil {
		h.logger.Warn("malformed request body", zap.String("remote", r.RemoteAddr), zap.Error(err))
		h.write(w, http.StatusBadRequest, wire.Response{Error: err.Error()})
		return
	}

	h.write(w, http.StatusOK, h.dispatcher.Dispatch(r.Context(), req))
}

func (h *HTTPHandler) write(w http.ResponseWriter, status int, resp wire.Response) {
	data, err := wire.EncodeResponse(resp)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		h.logger.Debug("write response", zap.Error(err))
	}
}
