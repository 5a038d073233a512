package card

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wishmint/wishmint/pkg/logger"
	"github.com/wishmint/wishmint/pkg/qrcode"
)

//go:embed templates/card_page.html
var cardPageFS embed.FS

var cardPageTmpl = template.Must(template.ParseFS(cardPageFS, "templates/card_page.html"))

type cardPageData struct {
	Card      Card
	ShareURL  string
	QRDataURI template.URL
}

// handleCardPage renders the public share page for a card.
func (s *Service) handleCardPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "cardID"))
	if err != nil {
		s.renderNotFound(w)
		return
	}

	c, err := s.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.ErrorContext(r.Context(), "failed to load card page", logger.CardID(id.String()), logger.Error(err))
		}
		s.renderNotFound(w)
		return
	}

	data := cardPageData{Card: c, ShareURL: s.ShareURL(c.ID)}
	if qr, err := qrcode.GenerateDataURI(data.ShareURL, 160); err == nil {
		data.QRDataURI = template.URL(qr)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := cardPageTmpl.Execute(w, data); err != nil {
		s.log.ErrorContext(r.Context(), "failed to render card page", logger.Error(err))
	}
}

func (s *Service) renderNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`<!doctype html><html><head><title>Card not found</title></head>` +
		`<body style="font-family:sans-serif;text-align:center;padding:4rem">` +
		`<h1>Card not found</h1><p>This greeting card does not exist or the link is incomplete.</p>` +
		`</body></html>`))
}
