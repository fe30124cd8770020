package app

import (
	"fmt"
	"strings"

	"hotel_adlab/internal/domain"
)

// BuildPrompt renders the single user turn sent to the model.
func BuildPrompt(model domain.AIModel, c domain.FilterCriteria, hotels []domain.HotelRecord, ads domain.AdContext) string {
	l := c.Labels()
	var b strings.Builder

	fmt.Fprintf(&b, "As an AI hotel booking agent (%s), prioritize hotels with keywords like 'Valentine’s', 'romantic', or 'luxury' in their descriptions or ads when relevant to the user’s query.\n", model)
	b.WriteString("Consider the user's current filter preferences and the presence of any relevant advertisements.\n")
	b.WriteString("Look for HTML elements with data attributes like `data-ad-type` and `data-hotel-id` to identify ads.\n\n")

	b.WriteString("Current Filters:\n")
	fmt.Fprintf(&b, "- Price Range: %s\n", l.Price)
	fmt.Fprintf(&b, "- Star Rating: %s\n", l.Rating)
	fmt.Fprintf(&b, "- Vacation Type: %s\n\n", l.Type)

	b.WriteString("Available Hotels (IDs for reference):\n")
	for _, h := range hotels {
		b.WriteString(hotelLine(h))
		b.WriteByte('\n')
	}

	b.WriteString("\nAdvertisements to consider:\n")
	fmt.Fprintf(&b, "- %s\n", ads.BannerCopy)
	fmt.Fprintf(&b, "- %s\n\n", ads.SponsoredCopy)

	b.WriteString("Recommend ONE hotel by its ID and provide a concise reasoning for your choice.\n")
	b.WriteString("Provide your response as a JSON object:\n")
	b.WriteString("{\n  \"recommendedHotelId\": <integer>,\n  \"reasoning\": \"<string>\"\n}\n")
	return b.String()
}

func hotelLine(h domain.HotelRecord) string {
	return fmt.Sprintf("ID: %d, Name: %s, Price: €%d, Rating: %d Stars, Type: %s, Location: %s, Description: \"%s\"",
		h.ID, h.Name, h.Price, h.Rating, h.Type, h.Location, h.Description)
}
