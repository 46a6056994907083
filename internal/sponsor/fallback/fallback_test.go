package fallback

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingapi/internal/sponsor/models"
)

func TestLoadEmbedded(t *testing.T) {
	ds, err := LoadEmbedded()
	require.NoError(t, err)
	require.Equal(t, 9, ds.Len())

	records := ds.Records()
	require.Len(t, records, ds.Len())
	assert.Equal(t, models.SponsorRecord{
		MalePrincipalSponsor:   "Mr. Juan Dela Cruz",
		FemalePrincipalSponsor: "Mrs. Maria Dela Cruz",
	}, records[0])
	assert.Equal(t, models.SponsorRecord{
		MalePrincipalSponsor:   "",
		FemalePrincipalSponsor: "Mrs. Ana Reyes",
	}, records[6])
}

func TestParse(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		ds, err := Parse([]byte(`
principal_sponsors:
  - name: Mr. Jose Ramos
    spouse: Carmen Ramos
  - name: Mrs. Luz Tan
`))
		require.NoError(t, err)

		want := []models.SponsorRecord{
			{MalePrincipalSponsor: "Mr. Jose Ramos", FemalePrincipalSponsor: "Carmen Ramos"},
			{MalePrincipalSponsor: "", FemalePrincipalSponsor: "Mrs. Luz Tan"},
		}
		if diff := cmp.Diff(want, ds.Records()); diff != "" {
			t.Errorf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty document yields empty dataset", func(t *testing.T) {
		ds, err := Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
		assert.Empty(t, ds.Records())
	})

	t.Run("entry without name is rejected", func(t *testing.T) {
		_, err := Parse([]byte("principal_sponsors:\n  - spouse: Nobody\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entry 0: name is required")
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		_, err := Parse([]byte("principal_sponsors:\n  - name: A\n    title: Mr\n"))
		assert.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("empty path uses embedded dataset", func(t *testing.T) {
		ds, err := LoadFile("")
		require.NoError(t, err)
		assert.Equal(t, 9, ds.Len())
	})

	t.Run("reads override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sponsors.yaml")
		require.NoError(t, os.WriteFile(path, []byte("principal_sponsors:\n  - name: Ms. Rica Lim\n"), 0o600))

		ds, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []models.SponsorRecord{{FemalePrincipalSponsor: "Ms. Rica Lim"}}, ds.Records())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestDataset_IsImmutable(t *testing.T) {
	entries := []models.StaticSponsorEntry{{Name: "Mrs. Ana Reyes"}}
	ds := New(entries)

	entries[0].Name = "changed"
	got := ds.Records()
	got[0].FemalePrincipalSponsor = "mutated"
	ds.Entries()[0].Name = "mutated"

	assert.Equal(t, "Mrs. Ana Reyes", ds.Entries()[0].Name)
	assert.Equal(t, "Mrs. Ana Reyes", ds.Records()[0].FemalePrincipalSponsor)
}
