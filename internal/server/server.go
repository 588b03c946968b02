// Package server is a thin HTTP facade over the in-process engine. It
// holds no state of its own: every request carries a full plan snapshot
// and gets back one result.
package server

import (
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/planwise/retirement-planner/internal/calculation"
	"github.com/planwise/retirement-planner/internal/domain"
	"github.com/planwise/retirement-planner/internal/score"
)

// Server routes projection and scoring requests to the engine.
type Server struct {
	Engine *calculation.CalculationEngine
	Scorer *score.HealthScorer
	Logger calculation.Logger
}

// New creates a server over a configured engine and scorer.
func New(engine *calculation.CalculationEngine, scorer *score.HealthScorer) *Server {
	return &Server{Engine: engine, Scorer: scorer, Logger: calculation.NopLogger{}}
}

// SetLogger sets the request logger; nil restores the no-op logger.
func (s *Server) SetLogger(l calculation.Logger) {
	if l == nil {
		s.Logger = calculation.NopLogger{}
		return
	}
	s.Logger = l
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	return fasthttp.ListenAndServe(addr, s.Handler)
}

type responseEnvelope struct {
	CalculationID string   `json:"calculationId"`
	ElapsedMs     int64    `json:"elapsedMs"`
	Messages      []string `json:"messages,omitempty"`
	Projection    any      `json:"projection,omitempty"`
	Health        any      `json:"health,omitempty"`
	Breakeven     any      `json:"breakeven,omitempty"`
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Handler is the fasthttp entry point.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/healthz":
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	case "/v1/projection":
		s.handleProjection(ctx)
	case "/v1/score":
		s.handleScore(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "POST required")
		return
	}

	var plan domain.PlanInput
	if err := json.Unmarshal(ctx.PostBody(), &plan); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	envelope := responseEnvelope{CalculationID: uuid.New().String()}

	projection, err := s.Engine.RunProjection(ctx, &plan)
	switch {
	case errors.Is(err, calculation.ErrNoHorizon):
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, calculation.ErrIncomeModelMissing):
		// Partial result: balances are valid, income is not.
		envelope.Messages = append(envelope.Messages, err.Error())
	case err != nil:
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	envelope.Projection = projection
	envelope.ElapsedMs = time.Since(start).Milliseconds()
	s.Logger.Infof("projection %s served in %dms", envelope.CalculationID, envelope.ElapsedMs)
	writeJSON(ctx, fasthttp.StatusOK, envelope)
}

func (s *Server) handleScore(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "POST required")
		return
	}

	var record domain.InputRecord
	if err := json.Unmarshal(ctx.PostBody(), &record); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	envelope := responseEnvelope{
		CalculationID: uuid.New().String(),
		Health:        s.Scorer.Score(record),
	}
	envelope.ElapsedMs = time.Since(start).Milliseconds()
	s.Logger.Infof("score %s served in %dms", envelope.CalculationID, envelope.ElapsedMs)
	writeJSON(ctx, fasthttp.StatusOK, envelope)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(errorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}
