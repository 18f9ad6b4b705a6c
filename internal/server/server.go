package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vukan322/ghrecap/internal/recap"
)

// Recapper is the slice of the recap service the HTTP layer needs.
type Recapper interface {
	GetRecap(ctx context.Context, req recap.Request) (*recap.Response, error)
}

type Server struct {
	addr    string
	service Recapper
	log     *logrus.Entry
}

func New(addr string, service Recapper) *Server {
	return &Server{
		addr:    addr,
		service: service,
		log:     logrus.WithField("component", "server"),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/recap", s.handleRecap)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Infof("listening on %s", s.addr)
	return srv.ListenAndServe()
}
