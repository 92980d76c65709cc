package scribe

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/synaptica-ai/scribe/pkg/common/logger"
	"github.com/synaptica-ai/scribe/pkg/common/models"
	"github.com/synaptica-ai/scribe/pkg/render"
	"github.com/synaptica-ai/scribe/pkg/report"
	"github.com/synaptica-ai/scribe/pkg/similarity"
)

type HTTPHandler struct {
	service *Service
	maxBody int64
}

func NewHTTPHandler(service *Service, maxBody int64) *HTTPHandler {
	return &HTTPHandler{service: service, maxBody: maxBody}
}

type reportView struct {
	Report           report.Report      `json:"report"`
	ConfidenceScores map[string]float64 `json:"confidenceScores"`
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/sessions", h.handleCreate).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/utterances", h.handleUtterance).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/reset", h.handleReset).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/report", h.handleReport).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{id}/final", h.handleFinal).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{id}/exports", h.handleExports).Methods(http.MethodGet)
	router.HandleFunc("/sessions/{id}/render", h.handleRender).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}", h.handleClose).Methods(http.MethodDelete)
	router.HandleFunc("/corpus", h.handleCorpus).Methods(http.MethodPost)
}

func (h *HTTPHandler) limit(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
}

func (h *HTTPHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	handle := h.service.CreateSession()
	createdAt, _ := h.service.SessionCreatedAt(handle)
	writeJSON(w, http.StatusCreated, models.SessionResponse{SessionID: handle, CreatedAt: createdAt})
}

func (h *HTTPHandler) handleUtterance(w http.ResponseWriter, r *http.Request) {
	h.limit(w, r)

	var req models.UtteranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.WithError(err).Warn("invalid utterance payload")
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.ProcessUtterance(r.Context(), mux.Vars(r)["id"], req.Text, req.Speaker, req.Timestamp)
	if err != nil {
		h.writeError(w, err, "failed to process utterance")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) handleReset(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.ResetSession(r.Context(), id); err != nil {
		h.writeError(w, err, "failed to reset session")
		return
	}
	h.writeReport(w, r, id)
}

func (h *HTTPHandler) handleReport(w http.ResponseWriter, r *http.Request) {
	h.writeReport(w, r, mux.Vars(r)["id"])
}

func (h *HTTPHandler) writeReport(w http.ResponseWriter, r *http.Request, id string) {
	snap, err := h.service.Snapshot(id)
	if errors.Is(err, ErrSessionNotFound) {
		cached, cerr := h.service.CachedSnapshot(r.Context(), id)
		if cerr != nil {
			h.writeError(w, cerr, "failed to load cached report")
			return
		}
		writeJSON(w, http.StatusOK, reportView{Report: cached.Report, ConfidenceScores: cached.ConfidenceScores})
		return
	}
	if err != nil {
		h.writeError(w, err, "failed to load report")
		return
	}
	scores, err := h.service.ConfidenceScores(id)
	if err != nil {
		h.writeError(w, err, "failed to load report")
		return
	}
	writeJSON(w, http.StatusOK, reportView{Report: snap, ConfidenceScores: scores})
}

func (h *HTTPHandler) handleFinal(w http.ResponseWriter, r *http.Request) {
	final, err := h.service.FinalReport(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err, "failed to build final report")
		return
	}
	writeJSON(w, http.StatusOK, final)
}

func (h *HTTPHandler) handleExports(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := h.service.Exports(r.Context(), mux.Vars(r)["id"], limit)
	if errors.Is(err, ErrArchiveDisabled) {
		writeErrorJSON(w, http.StatusServiceUnavailable, "report archive unavailable")
		return
	}
	if err != nil {
		h.writeError(w, err, "failed to list exports")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *HTTPHandler) handleRender(w http.ResponseWriter, r *http.Request) {
	h.limit(w, r)

	requested := r.URL.Query().Get("format")
	if requested == "" && r.ContentLength != 0 {
		var req models.RenderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
			return
		}
		requested = req.Format
	}
	format, err := render.ParseFormat(requested)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.service.Render(r.Context(), mux.Vars(r)["id"], format)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			writeErrorJSON(w, http.StatusNotFound, "session not found")
		case errors.Is(err, render.ErrNotConfigured):
			writeErrorJSON(w, http.StatusServiceUnavailable, "rendering unavailable")
		default:
			writeErrorJSON(w, http.StatusBadGateway, "rendering failed")
		}
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Body); err != nil {
		logger.Log.WithError(err).Warn("failed to write rendered document")
	}
}

func (h *HTTPHandler) handleClose(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CloseSession(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err, "failed to close session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) handleCorpus(w http.ResponseWriter, r *http.Request) {
	h.limit(w, r)

	records, err := similarity.DecodeCases(r.Body)
	if err != nil {
		logger.Log.WithError(err).Warn("invalid corpus payload")
		writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.service.LoadCaseCorpus(records)
	writeJSON(w, http.StatusOK, models.CorpusResponse{Records: len(records)})
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case IsValidationError(err):
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrSessionNotFound):
		writeErrorJSON(w, http.StatusNotFound, "session not found")
	default:
		logger.Log.WithError(err).Error(msg)
		writeErrorJSON(w, http.StatusInternalServerError, "internal error")
	}
}

func writeErrorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Error("failed to write json response")
	}
}
