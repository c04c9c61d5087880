package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/websocket"

	"github.com/notargets/gowindtunnel/cars"
	"github.com/notargets/gowindtunnel/protocol"
	"github.com/notargets/gowindtunnel/recorder"
	"github.com/notargets/gowindtunnel/telemetry"
	"github.com/notargets/gowindtunnel/tunnel"
)

const DefaultFrameRate = 60

// Server runs one tunnel per websocket connection and streams its frames
type Server struct {
	Config     tunnel.Config
	FrameRate  int
	Catalog    *cars.Catalog
	Placements *cars.Store // optional
	Sinks      []recorder.Sink
	metrics    *telemetry.FrameMetrics
	log        zerolog.Logger
}

func New(cfg tunnel.Config, catalog *cars.Catalog, log zerolog.Logger) (*Server, error) {
	metrics, err := telemetry.NewFrameMetrics()
	if err != nil {
		return nil, err
	}
	return &Server{
		Config:    cfg,
		FrameRate: DefaultFrameRate,
		Catalog:   catalog,
		metrics:   metrics,
		log:       log.With().Str("component", "server").Logger(),
	}, nil
}

// Handler serves the frame socket at /ws and the car catalog at /cars
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", websocket.Handler(s.handle))
	mux.HandleFunc("/cars", s.handleCars)
	return mux
}

func (s *Server) handleCars(w http.ResponseWriter, r *http.Request) {
	var list []cars.CarType
	for _, k := range s.Catalog.EnabledKeys() {
		ct, _ := s.Catalog.Get(k)
		list = append(list, ct)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(list); err != nil {
		s.log.Warn().Err(err).Msg("writing car catalog")
	}
}

func (s *Server) frameTime() time.Duration {
	rate := s.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return time.Second / time.Duration(rate)
}

func (s *Server) handle(ws *websocket.Conn) {
	var (
		ctx, cancel = context.WithCancel(ws.Request().Context())
		remote      = ws.Request().RemoteAddr
		log         = s.log.With().Str("remote", remote).Logger()
	)
	defer cancel()
	log.Info().Msg("connect")
	defer log.Info().Msg("disconnect")

	tn, err := tunnel.New(s.Config, s.Catalog, s.Placements, log)
	if err != nil {
		_ = websocket.JSON.Send(ws, protocol.NewErrorMessage(err))
		return
	}
	defer tn.Close()
	s.metrics.SessionOpened(ctx)
	defer s.metrics.SessionClosed(context.Background())

	var (
		rec     = recorder.New("", log, s.Sinks...)
		replies = make(chan protocol.Message, 8)
	)
	go s.read(ctx, cancel, ws, tn, rec, replies, log)

	var (
		frameTime = s.frameTime()
		ticker    = time.NewTicker(frameTime)
	)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-replies:
			if err = websocket.JSON.Send(ws, msg); err != nil {
				return
			}
		case <-ticker.C:
			fr := tn.Step(ctx, frameTime.Seconds())
			if !fr.Paused {
				rec.Observe(fr.Forces)
			}
			if err = websocket.JSON.Send(ws, protocol.NewFrameMessage(fr)); err != nil {
				log.Debug().Err(err).Msg("send failed")
				return
			}
		}
	}
}

// read applies client inputs until the connection closes
func (s *Server) read(ctx context.Context, cancel context.CancelFunc, ws *websocket.Conn,
	tn *tunnel.Tunnel, rec *recorder.Recorder, replies chan<- protocol.Message, log zerolog.Logger) {
	defer cancel()
	reply := func(msg protocol.Message) {
		select {
		case replies <- msg:
		case <-ctx.Done():
		}
	}
	for {
		var in protocol.Input
		if err := websocket.JSON.Receive(ws, &in); err != nil {
			log.Debug().Err(err).Msg("receive ended")
			return
		}
		if err := tn.ApplyInput(in); err != nil {
			reply(protocol.NewErrorMessage(err))
		}
		if in.Record {
			fr := tn.Last()
			tr, err := rec.Record(ctx, fr.Forces.WindSpeed, fr.Forces.Angle, fr.Car.Type, fr.Forces)
			if err != nil {
				log.Warn().Err(err).Msg("recording test")
			}
			reply(protocol.Message{
				Type:     protocol.RecordedMessage,
				Recorded: &protocol.Recorded{ID: tr.ID, Session: tr.Session},
			})
		}
		if in.Note != "" {
			if err := rec.AddNote(ctx, in.Note); err != nil {
				reply(protocol.NewErrorMessage(err))
			}
		}
	}
}
