package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/abhisek/lddscreen/internal/analyzer"
	"github.com/abhisek/lddscreen/internal/assessment"
	"github.com/abhisek/lddscreen/internal/export"
	"github.com/abhisek/lddscreen/internal/report"
	"github.com/abhisek/lddscreen/internal/screening"
	"github.com/abhisek/lddscreen/internal/store"
)

// maxUploadBytes bounds a multipart request: one image, one recording
// and the form fields.
const maxUploadBytes = 64 << 20

const defaultListLimit = 50

type Handler struct {
	screening *screening.Service
	reports   store.ReportRepo
}

func NewHandler(svc *screening.Service, reports store.ReportRepo) *Handler {
	return &Handler{screening: svc, reports: reports}
}

// CreateReport accepts either a JSON body with finished analyzer results
// or a multipart form carrying the samples to analyze.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var (
		in  screening.Input
		err error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		in, err = decodeMultipart(w, r)
		defer closeSamples(r, in)
	} else {
		in, err = decodeJSON(r)
	}
	if err != nil {
		slog.Error("failed to decode request", "err", err)
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.screening.Run(r.Context(), in)
	if err != nil {
		h.fail(w, r, "failed to generate report", err)
		return
	}

	resp := &reportResponse{Report: res.Document, Narrative: res.Narrative}
	if res.NarrativeErr != nil {
		resp.NarrativeError = res.NarrativeErr.Error()
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	list, err := h.reports.List(r.Context(), limit)
	if err != nil {
		h.fail(w, r, "failed to list reports", err)
		return
	}

	resp := listResponse{Reports: make([]reportSummary, 0, len(list))}
	for _, s := range list {
		resp.Reports = append(resp.Reports, reportSummary{
			ID:            s.ID,
			SubjectName:   s.SubjectName,
			CombinedScore: s.CombinedScore,
			RiskLevel:     s.RiskLevel,
			Confidence:    s.Confidence,
			GeneratedAt:   s.GeneratedAt,
		})
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	stored, err := h.reports.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "failed to get report", err)
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &reportResponse{Report: stored.Document, Narrative: stored.Narrative})
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := h.reports.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "failed to get report", err)
		return
	}

	body, err := export.Render(stored.Document, format)
	if err != nil {
		h.fail(w, r, "failed to render export", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName(stored.Document, format)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write export", "err", err)
	}
}

// fail maps an error to a status and writes it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var (
		se      *analyzer.ServiceError
		invalid *analyzer.ErrInvalidResult
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "Not Found")
		return
	case errors.Is(err, store.ErrIncompatibleFormat):
		writeError(w, r, http.StatusConflict, err.Error())
		return
	case errors.Is(err, analyzer.ErrUnsupportedSample),
		errors.Is(err, screening.ErrConflictingInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.As(err, &se), errors.As(err, &invalid), errors.Is(err, analyzer.ErrUnavailable):
		slog.Error(msg, "err", err)
		writeError(w, r, http.StatusBadGateway, err.Error())
		return
	case errors.Is(err, screening.ErrNoAnalyzer):
		writeError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	slog.Error(msg, "err", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request) (screening.Input, error) {
	var req createReportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		return screening.Input{}, errors.New("invalid request")
	}

	in := screening.Input{Subject: req.Subject, Narrate: req.Narrate}
	var err error
	if in.Handwriting, err = decodeResult(req.Handwriting); err != nil {
		return screening.Input{}, fmt.Errorf("handwriting: %w", err)
	}
	if in.Speech, err = decodeResult(req.Speech); err != nil {
		return screening.Input{}, fmt.Errorf("speech: %w", err)
	}
	return in, nil
}

func decodeResult(raw json.RawMessage) (*assessment.ModalityResult, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return analyzer.Decode(bytes.NewReader(raw))
}

func closeSamples(r *http.Request, in screening.Input) {
	for _, smp := range []*screening.Sample{in.Image, in.Audio} {
		if smp == nil {
			continue
		}
		if c, ok := smp.Body.(io.Closer); ok {
			_ = c.Close()
		}
	}
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

// decodeMultipart reads the image and audio parts and the subject fields.
// The uploaded files stay open until closeSamples.
func decodeMultipart(w http.ResponseWriter, r *http.Request) (screening.Input, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		return screening.Input{}, errors.New("invalid multipart form")
	}

	in := screening.Input{
		Subject: report.SubjectInfo{
			Name:     r.FormValue("name"),
			Grade:    r.FormValue("grade"),
			School:   r.FormValue("school"),
			Teacher:  r.FormValue("teacher"),
			TestDate: r.FormValue("test_date"),
		},
		ReferenceText: r.FormValue("reference_text"),
	}
	if age := r.FormValue("age"); age != "" {
		n, err := strconv.Atoi(age)
		if err != nil {
			return screening.Input{}, errors.New("invalid age")
		}
		in.Subject.Age = n
	}
	if v := strings.ToLower(r.FormValue("narrate")); v == "1" || v == "true" {
		in.Narrate = true
	}

	if f, hdr, err := r.FormFile("image"); err == nil {
		in.Image = &screening.Sample{Filename: hdr.Filename, Size: hdr.Size, Body: f}
	}
	if f, hdr, err := r.FormFile("audio"); err == nil {
		in.Audio = &screening.Sample{Filename: hdr.Filename, Size: hdr.Size, Body: f}
	}
	return in, nil
}
