package voucher_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"

	"hotel_adlab/internal/adapters/voucher"
	"hotel_adlab/internal/domain"
)

func TestRender_ProducesPDF(t *testing.T) {
	in := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	c := domain.BookingConfirmation{
		ID: uuid.New(),
		Hotel: domain.HotelRecord{
			ID: 1, Name: "Boutique Hotel L’Amour", Price: 202, Rating: 5,
			Type: domain.TypeRomantic, Location: "Paris",
		},
		CheckIn:     in,
		CheckOut:    in.AddDate(0, 0, 2),
		Guests:      2,
		Nights:      2,
		TotalPrice:  404,
		ConfirmedAt: in,
	}

	b, err := voucher.Render(c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("not a PDF: %q", b[:min(len(b), 16)])
	}
	if len(b) < 500 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(b))
	}
}
