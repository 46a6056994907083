package testutil

import (
	"encoding/json"

	"weddingapi/internal/sponsor/models"
)

// SponsorRecords returns a small, fixed remote list.
func SponsorRecords() []models.SponsorRecord {
	return []models.SponsorRecord{
		{MalePrincipalSponsor: "Mr. Jose Ramos", FemalePrincipalSponsor: "Mrs. Carmen Ramos"},
		{MalePrincipalSponsor: "Engr. Lito Cruz", FemalePrincipalSponsor: "Mrs. Nena Cruz"},
		{MalePrincipalSponsor: "", FemalePrincipalSponsor: "Ms. Rica Lim"},
	}
}

// ListBody encodes records the way the remote store returns them.
func ListBody(records ...models.SponsorRecord) []byte {
	if records == nil {
		records = []models.SponsorRecord{}
	}
	body, err := json.Marshal(records)
	if err != nil {
		panic(err)
	}
	return body
}
