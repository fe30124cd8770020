package mysql

import (
	"context"
	"database/sql"
	"time"

	"hotel_adlab/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

// Repo implements domain.CatalogRepository and domain.RecommendationLog.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertHotel(ctx context.Context, h domain.HotelRecord) error {
	if err := h.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID,
		h.Name,
		h.Price,
		h.Rating,
		string(h.Type),
		h.Location,
		h.Description,
	)
	return err
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.HotelRecord, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelRecord
	for rows.Next() {
		var h domain.HotelRecord
		var typ string
		if err := rows.Scan(&h.ID, &h.Name, &h.Price, &h.Rating, &typ, &h.Location, &h.Description); err != nil {
			return nil, err
		}
		h.Type = domain.VacationType(typ)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) LogRecommendation(ctx context.Context, e domain.RecommendationLogEntry) error {
	_, err := r.db.ExecContext(ctx, insertRecommendationSQL,
		e.SessionID,
		string(e.Model),
		e.PromptHash,
		e.Filters,
		string(e.Phase),
		valInt64(e.HotelID),
		valStr(e.Reasoning),
		valStr(e.Raw),
		valStr(e.Error),
		e.Cached,
		e.Latency.Milliseconds(),
		e.CreatedAt.UTC(),
	)
	return err
}

// ListRecommendations returns the audit trail of one session, oldest first.
func (r *Repo) ListRecommendations(ctx context.Context, sessionID string) ([]domain.RecommendationLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, listRecommendationsSQL, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RecommendationLogEntry
	for rows.Next() {
		var (
			e                    domain.RecommendationLogEntry
			model, phase         string
			hotelID              sql.NullInt64
			reasoning, raw, errS sql.NullString
			latencyMS            int64
		)
		if err := rows.Scan(&e.SessionID, &model, &e.PromptHash, &e.Filters, &phase, &hotelID,
			&reasoning, &raw, &errS, &e.Cached, &latencyMS, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Model = domain.AIModel(model)
		e.Phase = domain.Phase(phase)
		if hotelID.Valid {
			id := hotelID.Int64
			e.HotelID = &id
		}
		e.Reasoning = reasoning.String
		e.Raw = raw.String
		e.Error = errS.String
		e.Latency = time.Duration(latencyMS) * time.Millisecond
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
