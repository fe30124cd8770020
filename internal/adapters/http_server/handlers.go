// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_adlab/internal/adapters/voucher"
	"hotel_adlab/internal/app"
	"hotel_adlab/internal/domain"
)

const dateLayout = "2006-01-02"

type Handlers struct {
	Sessions *app.SessionManager
	Catalog  app.Catalog
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`

	// recommendation diagnostics
	Phase string `json:"phase,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/catalog", h.getCatalog)

	s.mux.Post("/v1/sessions", h.createSession)
	s.mux.Route("/v1/sessions/{sid}", func(r chi.Router) {
		r.Delete("/", h.closeSession)
		r.Get("/state", h.getState)
		r.Get("/metrics", h.getMetrics)
		r.Get("/listing", h.getListing)

		r.Put("/filters", h.putFilters)
		r.Put("/page", h.putPage)
		r.Put("/preferences", h.putPreferences)

		r.Post("/banner/click", h.clickBanner)
		r.Post("/hotels/{id}/sponsored-click", h.clickSponsored)
		r.Post("/hotels/{id}/book", h.directBook)

		r.Post("/booking", h.confirmBooking)
		r.Get("/booking/voucher.pdf", h.getVoucher)
		r.Delete("/selection", h.clearSelection)

		r.Post("/recommendation", h.recommend)
		r.Get("/recommendation", h.getRecommendation)
		r.Post("/recommendation/book", h.bookRecommendation)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// writeError maps domain conditions onto problem responses. Nothing here is
// fatal to the session.
func writeError(w http.ResponseWriter, err error) {
	var rerr *domain.RecommendationError
	switch {
	case errors.As(err, &rerr):
		status := http.StatusUnprocessableEntity
		title := "Recommendation Rejected"
		if rerr.Upstream() {
			status = http.StatusBadGateway
			title = "AI Unavailable"
		}
		writeProblemBody(w, problem{
			Type: "about:blank", Title: title, Status: status,
			Detail: app.NoticeFor(err), Phase: string(app.PhaseFor(err)), Raw: rerr.Raw,
		})
	case errors.Is(err, domain.ErrNoMatchingHotels):
		writeProblemBody(w, problem{
			Type: "about:blank", Title: "No Matching Hotels", Status: http.StatusUnprocessableEntity,
			Detail: app.NoticeFor(err), Phase: string(domain.PhaseRejected),
		})
	case errors.Is(err, domain.ErrInvalidDateRange), errors.Is(err, domain.ErrInvalidGuests):
		writeProblem(w, http.StatusBadRequest, "Invalid Booking", err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "session not found")
	case errors.Is(err, domain.ErrSessionClosed):
		writeProblem(w, http.StatusGone, "Gone", "session closed")
	case errors.Is(err, domain.ErrReferencedEntityMissing), errors.Is(err, domain.ErrHotelNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrNoBooking):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrNoSelection),
		errors.Is(err, domain.ErrNoRecommendationAvailable),
		errors.Is(err, domain.ErrRecommendationInProgress),
		errors.Is(err, domain.ErrRecommendationSuperseded):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "unexpected error")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return false
	}
	return true
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*app.Session, bool) {
	s, err := h.Sessions.Get(chi.URLParam(r, "sid"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return s, true
}

func hotelID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return 0, false
	}
	return id, true
}

// ---- catalog & sessions ----

type catalogResponse struct {
	Version  string                `json:"version"`
	Hotels   []domain.HotelRecord  `json:"hotels"`
	Types    []domain.VacationType `json:"types"`
	Formats  []domain.AdFormat     `json:"adFormats"`
	Models   []domain.AIModel      `json:"models"`
	PageSize int                   `json:"pageSize"`
}

func (h *Handlers) getCatalog(w http.ResponseWriter, r *http.Request) {
	writeWithETag(w, r, catalogResponse{
		Version:  h.Catalog.Version(),
		Hotels:   h.Catalog.All(),
		Types:    domain.VacationTypes,
		Formats:  domain.AdFormats,
		Models:   domain.AIModels,
		PageSize: h.Sessions.PageSize(),
	})
}

func (h *Handlers) createSession(w http.ResponseWriter, r *http.Request) {
	s := h.Sessions.Create()
	w.Header().Set("Location", "/v1/sessions/"+s.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"id": s.ID, "state": s.State()})
}

func (h *Handlers) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Close(chi.URLParam(r, "sid")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) getState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeWithETag(w, r, s.State())
}

func (h *Handlers) getMetrics(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Metrics())
}

func (h *Handlers) getListing(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	l, err := s.Listing()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// ---- filters, paging, preferences ----

type filtersRequest struct {
	Price  string `json:"price"`
	Rating any    `json:"rating"` // "All", "5" or 5
	Type   string `json:"type"`
}

func (h *Handlers) putFilters(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req filtersRequest
	if !decode(w, r, &req) {
		return
	}
	rating := ""
	if req.Rating != nil {
		rating = fmt.Sprint(req.Rating)
	}
	st, err := s.SetFilters(domain.ParseCriteria(req.Price, rating, req.Type))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handlers) putPage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		Page int `json:"page"`
	}
	if !decode(w, r, &req) {
		return
	}
	if _, err := s.SetPage(req.Page); err != nil {
		writeError(w, err)
		return
	}
	// answer with the clamped page rather than the raw request
	l, err := s.Listing()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *Handlers) putPreferences(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req struct {
		AdFormat string `json:"adFormat"`
		Model    string `json:"model"`
	}
	if !decode(w, r, &req) {
		return
	}
	st, err := s.SetPreferences(domain.AdFormat(req.AdFormat), domain.AIModel(req.Model))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ---- ads & selection ----

// selectionResponse answers with the full state so clients see counters and selection together.
func selectionResponse(w http.ResponseWriter, s *app.Session, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.State())
}

func (h *Handlers) clickBanner(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	_, err := s.ClickBanner()
	selectionResponse(w, s, err)
}

func (h *Handlers) clickSponsored(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id, ok := hotelID(w, r)
	if !ok {
		return
	}
	_, err := s.ClickSponsored(id)
	selectionResponse(w, s, err)
}

func (h *Handlers) directBook(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	id, ok := hotelID(w, r)
	if !ok {
		return
	}
	_, err := s.DirectBook(id)
	selectionResponse(w, s, err)
}

func (h *Handlers) clearSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	st, err := s.ClearSelection()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// ---- booking ----

type bookingRequest struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Guests   int    `json:"guests"`
}

func (b bookingRequest) parse() (domain.BookingRequest, error) {
	in, err := time.Parse(dateLayout, strings.TrimSpace(b.CheckIn))
	if err != nil {
		return domain.BookingRequest{}, fmt.Errorf("checkIn must be YYYY-MM-DD")
	}
	out, err := time.Parse(dateLayout, strings.TrimSpace(b.CheckOut))
	if err != nil {
		return domain.BookingRequest{}, fmt.Errorf("checkOut must be YYYY-MM-DD")
	}
	return domain.BookingRequest{CheckIn: in, CheckOut: out, Guests: b.Guests}, nil
}

func (h *Handlers) confirmBooking(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var body bookingRequest
	if !decode(w, r, &body) {
		return
	}
	req, err := body.parse()
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Booking", err.Error())
		return
	}
	c, err := s.ConfirmBooking(req)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/sessions/"+s.ID+"/booking/voucher.pdf")
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) getVoucher(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	c, err := s.Booking()
	if err != nil {
		writeError(w, err)
		return
	}
	pdf, err := voucher.Render(c)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="voucher-%s.pdf"`, c.ID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Error().Err(err).Msg("failed to write voucher")
	}
}

// ---- recommendation ----

type recommendationView struct {
	Phase          domain.Phase                 `json:"phase"`
	Notice         string                       `json:"notice,omitempty"`
	Recommendation *domain.RecommendationResult `json:"recommendation,omitempty"`
}

func viewOf(st app.State) recommendationView {
	return recommendationView{
		Phase:          st.RecommendationPhase,
		Notice:         st.RecommendationNotice,
		Recommendation: st.Recommendation,
	}
}

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	res, err := s.Recommend(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationView{Phase: domain.PhaseSucceeded, Recommendation: &res})
}

func (h *Handlers) getRecommendation(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s.State()))
}

func (h *Handlers) bookRecommendation(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	_, err := s.BookRecommendation()
	selectionResponse(w, s, err)
}
