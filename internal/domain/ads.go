package domain

import "strings"

// Ad placements are fixed for the experiment.
const (
	BannerHotelID    int64 = 1
	SponsoredHotelID int64 = 2
)

type AdFormat string

const (
	AdTextBased    AdFormat = "Text-Based"
	AdKeywordImage AdFormat = "Keyword-Embedded Image"
	AdImageOnly    AdFormat = "Image-Only"
)

const DefaultAdFormat = AdTextBased

var AdFormats = []AdFormat{AdTextBased, AdKeywordImage, AdImageOnly}

func ParseAdFormat(s string) AdFormat {
	s = strings.TrimSpace(s)
	for _, f := range AdFormats {
		if strings.EqualFold(s, string(f)) {
			return f
		}
	}
	return DefaultAdFormat
}

// AIModel is the model name shown to researchers and embedded in the prompt.
// The endpoint model itself comes from configuration.
type AIModel string

const (
	ModelGeminiFlash AIModel = "Gemini 1.5 Flash"
	ModelGPT4o       AIModel = "GPT-4o"
	ModelClaude      AIModel = "Claude 3.7 Sonnet"
)

const DefaultAIModel = ModelGeminiFlash

var AIModels = []AIModel{ModelGeminiFlash, ModelGPT4o, ModelClaude}

func ParseAIModel(s string) AIModel {
	s = strings.TrimSpace(s)
	for _, m := range AIModels {
		if strings.EqualFold(s, string(m)) {
			return m
		}
	}
	return DefaultAIModel
}

// BannerCreative is what the banner slot renders for a given ad format.
type BannerCreative struct {
	Format   AdFormat `json:"format"`
	HotelID  int64    `json:"hotelId"`
	Headline string   `json:"headline,omitempty"`
	Body     []string `json:"body,omitempty"`
	Image    string   `json:"image,omitempty"`
	OldPrice int      `json:"oldPrice,omitempty"`
	Price    int      `json:"price,omitempty"`
	CTA      string   `json:"cta"`
}

func Banner(f AdFormat) BannerCreative {
	switch f {
	case AdKeywordImage:
		return BannerCreative{
			Format:  f,
			HotelID: BannerHotelID,
			Image:   "Valentine’s Special Image: Boutique Hotel L’Amour - €202/Night",
			Price:   202,
			CTA:     "Book Now (Image Banner)",
		}
	case AdImageOnly:
		return BannerCreative{
			Format:  f,
			HotelID: BannerHotelID,
			Image:   "Promotional Image Placeholder",
			CTA:     "Book Now (Image-Only Banner)",
		}
	default:
		return BannerCreative{
			Format:   AdTextBased,
			HotelID:  BannerHotelID,
			Headline: "Valentines Special - 30% Off!",
			Body: []string{
				"Book your romantic luxury stay at Boutique Hotel L’Amour in Paris.",
				"Includes Champagne reception and Candle-Light Dinner.",
			},
			OldPrice: 289,
			Price:    202,
			CTA:      "Book Now (Banner Ad Offer)",
		}
	}
}

// SponsoredCopy is the promotional text embedded in the sponsored hotel's card.
type SponsoredCopy struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
	CTA      string `json:"cta"`
}

func Sponsored(h HotelRecord) SponsoredCopy {
	return SponsoredCopy{
		Headline: "Sponsored: " + h.Name,
		Body:     "Experience unforgettable moments in our exclusive castle hotel! Luxury Wellness Holiday",
		CTA:      "Book Now (Sponsored Ad Offer)",
	}
}

// AdContext describes the placements the recommender is told about.
type AdContext struct {
	BannerHotelID    int64
	BannerCopy       string
	SponsoredHotelID int64
	SponsoredCopy    string
}

func DefaultAdContext() AdContext {
	return AdContext{
		BannerHotelID:    BannerHotelID,
		BannerCopy:       `A "Valentines Special" banner ad for "Boutique Hotel L’Amour" (ID: 1, data-ad-type="banner", data-hotel-id="1") with a 30% discount, offering it for €202/Night.`,
		SponsoredHotelID: SponsoredHotelID,
		SponsoredCopy:    `A sponsored ad for "Château Romance & Spa" (ID: 2, data-ad-type="sponsored", data-hotel-id="2") embedded within the listings, highlighting it as a "Luxury Wellness Holiday".`,
	}
}
