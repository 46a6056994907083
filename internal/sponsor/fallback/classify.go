package fallback

import (
	"strings"

	"weddingapi/internal/sponsor/models"
)

// Transform converts every entry with Classify, one record per entry, in order.
func Transform(entries []models.StaticSponsorEntry) []models.SponsorRecord {
	out := make([]models.SponsorRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, Classify(e))
	}
	return out
}

// Classify splits a dataset entry into male and female sponsor fields.
//
// An entry without a spouse is treated as a single woman unless the name
// carries a male title. Title detection is a plain lower-case substring match:
// "mrs" or "ms" marks a woman, "mr", "engr" or "honorable" marks a man. The
// match is deliberately literal, so "Mrs." also contains "mr", and titles such
// as "Dr." or "Atty." are not recognised at all.
func Classify(e models.StaticSponsorEntry) models.SponsorRecord {
	lower := strings.ToLower(e.Name)
	single := e.Spouse == ""
	femaleLooksLike := strings.Contains(lower, "mrs") || strings.Contains(lower, "ms")
	maleLooksLike := strings.Contains(lower, "mr") ||
		strings.Contains(lower, "engr") ||
		strings.Contains(lower, "honorable")

	male, female := e.Name, e.Spouse
	if single {
		male, female = "", e.Name
	}

	rec := models.SponsorRecord{MalePrincipalSponsor: male, FemalePrincipalSponsor: female}
	if maleLooksLike && !femaleLooksLike {
		rec.MalePrincipalSponsor = e.Name
	}
	if femaleLooksLike && single {
		rec.FemalePrincipalSponsor = e.Name
	}
	return rec
}
