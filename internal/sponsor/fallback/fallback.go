// Package fallback holds the bundled principal-sponsor list served when the
// remote store is unreachable, and the transform that gives it the remote shape.
package fallback

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"weddingapi/internal/sponsor/models"
)

//go:embed dataset.yaml
var embeddedDataset []byte

type datasetFile struct {
	PrincipalSponsors []models.StaticSponsorEntry `yaml:"principal_sponsors"`
}

// Dataset is the immutable fallback list. It is loaded once at startup and
// safe for concurrent reads.
type Dataset struct {
	entries []models.StaticSponsorEntry
	records []models.SponsorRecord
}

// LoadEmbedded parses the dataset compiled into the binary.
func LoadEmbedded() (*Dataset, error) {
	return Parse(embeddedDataset)
}

// LoadFile parses a dataset from path. An empty path means the embedded dataset.
func LoadFile(path string) (*Dataset, error) {
	if path == "" {
		return LoadEmbedded()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback dataset: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML dataset. Unknown keys and entries without a name are rejected.
func Parse(data []byte) (*Dataset, error) {
	var file datasetFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode fallback dataset: %w", err)
	}
	for i, e := range file.PrincipalSponsors {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("fallback dataset entry %d: name is required", i)
		}
	}
	return New(file.PrincipalSponsors), nil
}

// New builds a Dataset from entries, copying them so later changes to the
// caller's slice cannot leak in.
func New(entries []models.StaticSponsorEntry) *Dataset {
	owned := make([]models.StaticSponsorEntry, len(entries))
	copy(owned, entries)
	return &Dataset{
		entries: owned,
		records: Transform(owned),
	}
}

// Len returns the number of entries.
func (d *Dataset) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the raw entries.
func (d *Dataset) Entries() []models.StaticSponsorEntry {
	out := make([]models.StaticSponsorEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Records returns a fresh copy of the transformed records, in dataset order.
func (d *Dataset) Records() []models.SponsorRecord {
	out := make([]models.SponsorRecord, len(d.records))
	copy(out, d.records)
	return out
}
