// Package web serves the asset list as a small mobile-style web application.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etnz/qianbao"
	"github.com/etnz/qianbao/card"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

// DefaultTimeout bounds the export of a summary card.
const DefaultTimeout = 10 * time.Second

// Options configure a Server.
type Options struct {
	Store    *qianbao.Store
	Exporter *card.Exporter

	// NewCard builds the card of a total, card.New when nil.
	NewCard func(qianbao.Money) card.Card
	// Timeout of a card export, DefaultTimeout when zero.
	Timeout time.Duration
}

// Server is the web presentation of a Store.
type Server struct {
	store    *qianbao.Store
	exporter *card.Exporter
	newCard  func(qianbao.Money) card.Card
	timeout  time.Duration
	echo     *echo.Echo
}

// New configures the routes of a server over o.Store.
func New(o Options) (*Server, error) {
	views, err := parseViews()
	if err != nil {
		return nil, err
	}
	s := &Server{
		store:    o.Store,
		exporter: o.Exporter,
		newCard:  o.NewCard,
		timeout:  o.Timeout,
	}
	if s.newCard == nil {
		s.newCard = card.New
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = views
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(log.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request failed")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))
	s.echo = e
	s.setupRoutes(e)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.echo.ServeHTTP(w, r) }

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	stopped := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("web server started")
		stopped <- s.echo.Start(addr)
	}()

	// stop if we are shutting down or the server could not be started
	select {
	case <-ctx.Done():
	case err := <-stopped:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}

	log.Info("stopping web server")
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.echo.Shutdown(shutdown)
}

// handleError renders errors that escaped the handlers as plain text.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, message := http.StatusInternalServerError, "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.String(code, message)
	}
	if err != nil {
		log.WithError(err).Warn("cannot write error response")
	}
}
