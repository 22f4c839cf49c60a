package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/etnz/qianbao"
	"github.com/etnz/qianbao/card"
	"github.com/etnz/qianbao/docs"
	"github.com/etnz/qianbao/renderer"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
)

// ShareFailure is the notification shown when the card cannot be exported.
const ShareFailure = "Failed to generate the asset card"

// Page is the data of the main page.
type Page struct {
	Book   *renderer.Book
	Dialog *Dialog // add/edit modal, nil when closed
	Share  *Share  // share overlay, nil when closed
	Toast  string
}

// Share is the overlay presenting an exported card.
type Share struct {
	Image string // PNG data URI
	Hint  string
}

func (s *Server) setupRoutes(e *echo.Echo) {
	e.GET("/", s.index)
	e.GET("/assets/new", s.newAsset)
	e.GET("/assets/:id/edit", s.editAsset)
	e.POST("/assets", s.createAsset)
	e.POST("/assets/:id", s.updateAsset)
	e.GET("/share", s.share)
	e.GET("/card.png", s.cardPNG)
	e.GET("/help", s.help)
}

func (s *Server) page() *Page {
	return &Page{Book: renderer.NewBook(s.store.Snapshot())}
}

func (s *Server) index(c echo.Context) error {
	return c.Render(http.StatusOK, "page", s.page())
}

func (s *Server) newAsset(c echo.Context) error {
	p := s.page()
	p.Dialog = addDialog()
	return c.Render(http.StatusOK, "page", p)
}

func (s *Server) editAsset(c echo.Context) error {
	a, ok := s.store.Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "asset not found")
	}
	p := s.page()
	p.Dialog = editDialog(a)
	return c.Render(http.StatusOK, "page", p)
}

func (s *Server) createAsset(c echo.Context) error {
	return s.submit(c, addDialog(), func(ctx context.Context, d qianbao.Draft) (qianbao.Asset, error) {
		return s.store.Add(ctx, d)
	})
}

func (s *Server) updateAsset(c echo.Context) error {
	a, ok := s.store.Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "asset not found")
	}
	return s.submit(c, editDialog(a), func(ctx context.Context, d qianbao.Draft) (qianbao.Asset, error) {
		return s.store.Update(ctx, a.ID, d)
	})
}

// submit binds and validates the dialog, then saves the draft.
// Invalid submissions re-render the dialog and leave the store untouched.
func (s *Server) submit(c echo.Context, d *Dialog, save func(context.Context, qianbao.Draft) (qianbao.Asset, error)) error {
	if err := d.bind(c); err != nil {
		return err
	}
	draft, ok := d.validate()
	if !ok {
		p := s.page()
		p.Dialog = d
		return c.Render(http.StatusUnprocessableEntity, "page", p)
	}
	a, err := save(c.Request().Context(), draft)
	if errors.Is(err, qianbao.ErrAssetNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "asset not found").SetInternal(err)
	}
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"id": a.ID, "mode": d.Mode}).Info("asset saved")
	return c.Redirect(http.StatusSeeOther, "/")
}

// export renders the card of the current total.
func (s *Server) export(c echo.Context) (*card.Image, error) {
	if s.exporter == nil {
		return nil, errors.New("card export is not configured")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), s.timeout)
	defer cancel()
	return s.exporter.Export(ctx, s.newCard(s.store.Total()))
}

func (s *Server) share(c echo.Context) error {
	p := s.page()
	img, err := s.export(c)
	if err != nil {
		log.WithError(err).Error("cannot export card")
		p.Toast = ShareFailure
		return c.Render(http.StatusInternalServerError, "page", p)
	}
	p.Share = &Share{Image: img.DataURI(), Hint: card.SaveHint}
	return c.Render(http.StatusOK, "page", p)
}

func (s *Server) cardPNG(c echo.Context) error {
	img, err := s.export(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, ShareFailure).SetInternal(err)
	}
	return c.Blob(http.StatusOK, "image/png", img.PNG)
}

func (s *Server) help(c echo.Context) error {
	doc, err := docs.GetTopics("readme", "*")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(doc), &buf); err != nil {
		return err
	}
	return c.Render(http.StatusOK, "help", template.HTML(buf.String()))
}
