package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	mdwerror "github.com/msto63/etds/foundation/core/error"
	mdwlog "github.com/msto63/etds/foundation/core/log"
	"github.com/msto63/etds/foundation/etds"
	"github.com/msto63/etds/foundation/etds/parser"
	"github.com/msto63/etds/internal/history"
	"github.com/msto63/etds/internal/render"
)

// CompileRequest is the body of POST /api/v1/compile and the payload of
// a WebSocket "compile" message
type CompileRequest struct {
	Expression string `json:"expression"`
	Tokens     bool   `json:"tokens,omitempty"`
}

// ErrorBody describes a failed request. Translation failures carry the
// error kind and the 1-based position of the offending input.
type ErrorBody struct {
	Code       string `json:"code"`
	Kind       string `json:"kind,omitempty"`
	Message    string `json:"message"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// ErrorResponse wraps ErrorBody for HTTP responses
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// GrammarSet is one FIRST or FOLLOW entry of GET /api/v1/grammar
type GrammarSet struct {
	Nonterminal string `json:"nonterminal"`
	First       string `json:"first"`
	Follow      string `json:"follow"`
}

// GrammarResponse is the body of GET /api/v1/grammar
type GrammarResponse struct {
	Productions []string     `json:"productions"`
	Sets        []GrammarSet `json:"sets"`
}

// newErrorBody classifies err for the wire
func newErrorBody(err error) ErrorBody {
	body := ErrorBody{
		Code:    string(mdwerror.GetCode(err)),
		Message: etds.DetailOf(err),
	}
	if kind := etds.KindOf(err); kind != etds.KindNone {
		body.Kind = string(kind)
		body.Diagnostic = etds.Diagnostic(err)
	}
	if pos, ok := etds.PositionOf(err); ok {
		body.Line = pos.Line
		body.Column = pos.Column
	}
	return body
}

// compile runs the engine, through the result cache when enabled, and
// records the run when history is enabled
func (s *Server) compile(ctx context.Context, source string, req CompileRequest) (*etds.Result, error) {
	start := time.Now()
	var res *etds.Result
	var err error
	if s.results != nil {
		var cached bool
		res, cached, err = s.results.Compile(req.Expression)
		s.metrics.ObserveCache(cached)
		if cached {
			s.logger.Debug("cache hit", mdwlog.Fields{"input_length": len(req.Expression)})
		}
	} else {
		res, err = s.engine.Compile(req.Expression)
	}
	s.metrics.ObserveCompile(source, res, err, time.Since(start))
	if s.history != nil {
		if herr := s.history.Record(ctx, history.NewRun(source, req.Expression, res, err)); herr != nil {
			s.logger.WarnWithErr("failed to record run", herr)
		}
	}
	return res, err
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var req CompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, mdwerror.Newf("request body exceeds %d bytes", tooLarge.Limit).
				WithCode(mdwerror.CodeInvalidInput))
			return
		}
		s.writeError(w, http.StatusBadRequest, mdwerror.Wrap(err, "invalid request body").WithCode(mdwerror.CodeInvalidInput))
		return
	}

	res, err := s.compile(r.Context(), "http", req)
	if err != nil {
		s.writeError(w, mdwerror.GetCode(err).HTTPStatus(), err)
		return
	}
	s.writeJSON(w, http.StatusOK, render.NewDocument(res, req.Tokens))
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	resp := GrammarResponse{Productions: parser.Productions}
	for _, nt := range parser.Nonterminals() {
		resp.Sets = append(resp.Sets, GrammarSet{
			Nonterminal: string(nt),
			First:       parser.First[nt].String(),
			Follow:      parser.Follow[nt].String(),
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, http.StatusNotFound, mdwerror.New("history is disabled").WithCode(mdwerror.CodeNotFound))
		return
	}

	filter := history.Filter{Limit: 50, OnlyFailed: r.URL.Query().Get("failed") == "true"}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			s.writeError(w, http.StatusBadRequest, mdwerror.Newf("invalid limit %q", v).WithCode(mdwerror.CodeInvalidInput))
			return
		}
		filter.Limit = limit
	}

	runs, err := s.history.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, mdwerror.GetCode(err).HTTPStatus(), err)
		return
	}
	if runs == nil {
		runs = []*history.Run{}
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("failed to write response", mdwlog.Fields{"error": err.Error()})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError || mdwerror.GetSeverity(err).ShouldAlert() {
		s.logger.LogError(err)
	}
	s.writeJSON(w, status, ErrorResponse{Error: newErrorBody(err)})
}
