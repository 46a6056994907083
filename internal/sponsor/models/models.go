// Package models defines the principal-sponsor records exchanged with the
// remote store and the bundled fallback dataset.
package models

// SponsorRecord is one principal-sponsor pair as the remote store returns it.
// Either name may be empty; field names match the spreadsheet columns.
type SponsorRecord struct {
	MalePrincipalSponsor   string `json:"MalePrincipalSponsor"`
	FemalePrincipalSponsor string `json:"FemalePrincipalSponsor"`
}

// StaticSponsorEntry is one row of the bundled fallback dataset. An entry with
// no spouse stands for a single person rather than a couple.
type StaticSponsorEntry struct {
	Name   string `yaml:"name" json:"name"`
	Spouse string `yaml:"spouse,omitempty" json:"spouse,omitempty"`
}

// Source tells a caller where a list of sponsors came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// ListResult is an encoded JSON array of sponsor records and where it came
// from. Reason names the remote failure category when Source is fallback.
type ListResult struct {
	Body   []byte
	Source Source
	Reason string
}
