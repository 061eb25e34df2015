// Package server exposes the advisor over a websocket JSON protocol. Each
// connection sends advise requests and receives one report (or error)
// message per request; the core itself stays free of any wire concerns.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack-cli/internal/advisor"
	"github.com/lox/blackjack-cli/internal/deck"
)

// AdviseRequest is the wire form of an advise call. Zero-valued Decks,
// Simulations and Workers pick up the server defaults.
type AdviseRequest struct {
	Type         string  `json:"type"`
	Decks        int     `json:"decks,omitempty"`
	Players      [][]int `json:"players"`
	DealerUpcard int     `json:"dealer_upcard"`
	Simulations  int     `json:"simulations,omitempty"`
	History      []int   `json:"history,omitempty"`
	Seed         int64   `json:"seed,omitempty"`
	Workers      int     `json:"workers,omitempty"`
}

// HandAdvice is the wire form of one hand's recommendation.
type HandAdvice struct {
	Cards  []int  `json:"cards"`
	Total  int    `json:"total"`
	Soft   bool   `json:"soft"`
	Action string `json:"action"`
}

// PlayerOutcome is the wire form of one player's outcome fractions.
type PlayerOutcome struct {
	Win  float64 `json:"win"`
	Push float64 `json:"push"`
	Loss float64 `json:"loss"`
}

// AdviseResponse is the wire form of a report or error.
type AdviseResponse struct {
	Type          string            `json:"type"`
	Error         string            `json:"error,omitempty"`
	Advice        []HandAdvice      `json:"advice,omitempty"`
	Players       []PlayerOutcome   `json:"players,omitempty"`
	DealerTotals  map[string]float64 `json:"dealer_totals,omitempty"`
	HiddenCards   map[string]float64 `json:"hidden_cards,omitempty"`
	RunningCount  int               `json:"running_count"`
	TrueCount     float64           `json:"true_count"`
	Trials        int               `json:"trials"`
	InfiniteDraws int               `json:"infinite_draws,omitempty"`
}

// Server serves advise requests over websocket.
type Server struct {
	config   *Config
	upgrader websocket.Upgrader
	advisor  *advisor.Advisor
	logger   *log.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewServer creates a websocket advise server.
func NewServer(config *Config, logger *log.Logger) *Server {
	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		advisor: advisor.New(logger),
		logger:  logger.WithPrefix("server"),
		conns:   make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the HTTP handler serving /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// ListenAndServe starts the server on the configured address.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting advise server", "addr", s.config.ListenAddr())
	return http.ListenAndServe(s.config.ListenAddr(), s.Handler())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	total := len(s.conns)
	s.mu.Unlock()
	s.logger.Info("client connected", "total", total)

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		_ = conn.Close()
		s.logger.Info("client disconnected")
	}()

	for {
		var req AdviseRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Error("read failed", "error", err)
			}
			return
		}

		resp := s.handleAdvise(r.Context(), req)
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Error("write failed", "error", err)
			return
		}
	}
}

func (s *Server) handleAdvise(ctx context.Context, req AdviseRequest) AdviseResponse {
	if req.Type != "advise" {
		return AdviseResponse{Type: "error", Error: fmt.Sprintf("unknown message type %q", req.Type)}
	}

	adviseReq := advisor.Request{
		NumDecks:     req.Decks,
		Players:      toRankHands(req.Players),
		DealerUpcard: deck.Rank(req.DealerUpcard),
		Simulations:  req.Simulations,
		History:      toRanks(req.History),
		Seed:         req.Seed,
		Workers:      req.Workers,
	}
	if adviseReq.NumDecks == 0 {
		adviseReq.NumDecks = s.config.Defaults.Decks
	}
	if adviseReq.Simulations == 0 {
		adviseReq.Simulations = s.config.Defaults.Simulations
	}
	if adviseReq.Workers == 0 {
		adviseReq.Workers = s.config.Defaults.Workers
	}

	report, err := s.advisor.Advise(ctx, adviseReq)
	if err != nil {
		return AdviseResponse{Type: "error", Error: err.Error()}
	}

	resp := AdviseResponse{
		Type:          "report",
		RunningCount:  report.RunningCount,
		TrueCount:     report.TrueCount,
		Trials:        report.Outcomes.Trials,
		InfiniteDraws: report.Outcomes.InfiniteDraws,
		DealerTotals:  make(map[string]float64, len(report.Outcomes.DealerTotals)),
		HiddenCards:   make(map[string]float64, len(report.Outcomes.HiddenCards)),
	}
	for _, a := range report.Advice {
		resp.Advice = append(resp.Advice, HandAdvice{
			Cards:  toInts(a.Cards),
			Total:  a.Total,
			Soft:   a.Soft,
			Action: a.Action.String(),
		})
	}
	for _, p := range report.Outcomes.Players {
		resp.Players = append(resp.Players, PlayerOutcome{Win: p.Win, Push: p.Push, Loss: p.Loss})
	}
	for total, frac := range report.Outcomes.DealerTotals {
		resp.DealerTotals[fmt.Sprintf("%d", total)] = frac
	}
	for card, frac := range report.Outcomes.HiddenCards {
		resp.HiddenCards[fmt.Sprintf("%d", int(card))] = frac
	}
	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

func toRanks(values []int) []deck.Rank {
	ranks := make([]deck.Rank, len(values))
	for i, v := range values {
		ranks[i] = deck.Rank(v)
	}
	return ranks
}

func toRankHands(hands [][]int) [][]deck.Rank {
	out := make([][]deck.Rank, len(hands))
	for i, h := range hands {
		out[i] = toRanks(h)
	}
	return out
}

func toInts(ranks []deck.Rank) []int {
	out := make([]int, len(ranks))
	for i, r := range ranks {
		out[i] = int(r)
	}
	return out
}
