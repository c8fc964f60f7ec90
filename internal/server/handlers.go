package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/tagscloud/pkg/config"
	"github.com/matzehuels/tagscloud/pkg/errors"
	"github.com/matzehuels/tagscloud/pkg/layout"
	"github.com/matzehuels/tagscloud/pkg/pipeline"
	"github.com/matzehuels/tagscloud/pkg/render/sink"
)

// Request describes a cloud to place and, for /v1/render, how to draw it.
// Nil or zero fields keep the server's configured values.
type Request struct {
	Center          *[2]int  `json:"center,omitempty"`
	Size            *[2]int  `json:"size,omitempty"`
	Sizes           [][2]int `json:"sizes,omitempty"`
	Count           *int     `json:"count,omitempty"`
	Coefficient     float64  `json:"coefficient,omitempty"`
	AngleStep       float64  `json:"angle_step,omitempty"`
	StopOnExhausted bool     `json:"stop_on_exhausted,omitempty"`

	Fill       string  `json:"fill,omitempty"`
	Background string  `json:"background,omitempty"`
	Outline    string  `json:"outline,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Quality    int     `json:"quality,omitempty"`
}

// apply overlays the set fields of req on cfg.
func (req Request) apply(cfg *config.Config) {
	if req.Center != nil {
		cfg.Cloud.Center = *req.Center
	}
	if req.Size != nil {
		cfg.Cloud.Size = *req.Size
		cfg.Cloud.Sizes = nil
	}
	if req.Sizes != nil {
		cfg.Cloud.Sizes = req.Sizes
	}
	if req.Count != nil {
		cfg.Cloud.Count = *req.Count
	}
	if req.Coefficient != 0 {
		cfg.Spiral.Coefficient = req.Coefficient
	}
	if req.AngleStep != 0 {
		cfg.Spiral.AngleStep = req.AngleStep
	}
	if req.StopOnExhausted {
		cfg.Cloud.StopOnExhausted = true
	}
	if req.Fill != "" {
		cfg.Output.Fill = req.Fill
	}
	if req.Background != "" {
		cfg.Output.Background = req.Background
	}
	if req.Outline != "" {
		cfg.Output.Outline = req.Outline
	}
	if req.Scale != 0 {
		cfg.Output.Scale = req.Scale
	}
	if req.Quality != 0 {
		cfg.Output.Quality = req.Quality
	}
}

// contentTypes maps formats to response media types.
var contentTypes = map[string]string{
	sink.FormatPNG:  "image/png",
	sink.FormatBMP:  "image/bmp",
	sink.FormatJPEG: "image/jpeg",
	sink.FormatSVG:  "image/svg+xml",
	sink.FormatJSON: "application/json",
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"formats": sink.Formats()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Layout(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := layout.Marshal(result.Layout)
	if err != nil {
		writeError(w, err)
		return
	}
	setResultHeaders(w, result)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, err := s.format(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	setResultHeaders(w, result)
	writeArtifact(w, format, result.Artifacts[format], result.CacheInfo.RenderHit)
}

func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	format, err := s.format(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var l layout.Layout
	if err := decodeJSON(w, r, &l); err != nil {
		writeError(w, err)
		return
	}
	if err := s.checkField(l.Width, l.Height); err != nil {
		writeError(w, err)
		return
	}

	cfg := s.defaults
	if l.Fill != "" {
		cfg.Output.Fill = l.Fill
	}
	opts, err := pipeline.FromConfig(cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	artifacts, cached, err := s.runner.RenderWithCacheInfo(r.Context(), l, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeArtifact(w, format, artifacts[format], cached)
}

// decodeOptions reads a Request body and turns it into pipeline options.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var req Request
	if err := decodeJSON(w, r, &req); err != nil {
		return pipeline.Options{}, err
	}

	cfg := s.defaults
	req.apply(&cfg)

	if limit := s.defaults.Server.MaxCount; cfg.Cloud.Count > limit {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidArgument,
			"count must be at most %d, but was %d", limit, cfg.Cloud.Count)
	}
	if err := s.checkField(2*cfg.Cloud.Center[0], 2*cfg.Cloud.Center[1]); err != nil {
		return pipeline.Options{}, err
	}
	if err := s.checkScale(cfg.Output.Scale); err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.FromConfig(cfg)
}

// checkField rejects fields wider or taller than [server] max_field.
func (s *Server) checkField(width, height int) error {
	if limit := s.defaults.Server.MaxField; width > limit || height > limit {
		return errors.New(errors.ErrCodeInvalidArgument,
			"field must be at most %dx%d, but was %dx%d", limit, limit, width, height)
	}
	return nil
}

// checkScale rejects scale factors above [server] max_scale.
func (s *Server) checkScale(scale float64) error {
	if limit := s.defaults.Server.MaxScale; scale > limit {
		return errors.New(errors.ErrCodeInvalidArgument,
			"scale must be at most %v, but was %v", limit, scale)
	}
	return nil
}

// format returns the ?format= query value, or the first configured format.
func (s *Server) format(r *http.Request) (string, error) {
	f := r.URL.Query().Get("format")
	if f == "" {
		f = pipeline.DefaultFormat
		if len(s.defaults.Output.Formats) > 0 {
			f = s.defaults.Output.Formats[0]
		}
	}
	f = sink.NormalizeFormat(f)
	if err := errors.ValidateFormat(f, sink.ValidFormats); err != nil {
		return "", err
	}
	return f, nil
}

// decodeJSON strictly decodes a size-limited JSON body into v. An empty
// body leaves v unchanged.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "decode request body")
	}
	return nil
}

func setResultHeaders(w http.ResponseWriter, result *pipeline.Result) {
	w.Header().Set("X-Run-ID", result.RunID)
	w.Header().Set("X-Placed", strconv.Itoa(result.Stats.Placed))
	w.Header().Set("X-Layout-Cache", cacheHeader(result.CacheInfo.LayoutHit))
	if result.Exhausted {
		w.Header().Set("X-Exhausted", "true")
	}
}

func writeArtifact(w http.ResponseWriter, format string, data []byte, cached bool) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Render-Cache", cacheHeader(cached))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON error response.
type errorBody struct {
	Code  errors.Code `json:"code,omitempty"`
	Error string      `json:"error"`
}

// writeError responds with the status that matches err's code.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{
		Code:  errors.GetCode(err),
		Error: errors.UserMessage(err),
	})
}

func statusFor(err error) int {
	switch {
	case errors.IsInvalidInput(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodePlacementExhausted):
		return http.StatusUnprocessableEntity
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case stderrors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
