package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaults(t *testing.T) {
	t.Run("nil slices become empty", func(t *testing.T) {
		var rec Record
		rec.EnsureDefaults()

		assert.NotNil(t, rec.Diplomas)
		assert.NotNil(t, rec.Certifications)
		assert.NotNil(t, rec.SkillGroups)
		assert.NotNil(t, rec.Languages)
		assert.NotNil(t, rec.Experiences)
	})

	t.Run("nested experience slices become empty", func(t *testing.T) {
		rec := Record{
			Experiences: []Experience{{Company: "Acme"}},
		}
		rec.EnsureDefaults()

		require.Len(t, rec.Experiences, 1)
		assert.NotNil(t, rec.Experiences[0].Projects)
		assert.NotNil(t, rec.Experiences[0].Achievements)
		assert.NotNil(t, rec.Experiences[0].Environment)
	})

	t.Run("existing content is preserved", func(t *testing.T) {
		rec := Record{
			Diplomas: []Diploma{{Year: "2020", Title: "Master Informatique"}},
		}
		rec.EnsureDefaults()

		require.Len(t, rec.Diplomas, 1)
		assert.Equal(t, "2020", rec.Diplomas[0].Year)
	})
}

func TestRecordJSONKeys(t *testing.T) {
	rec := Record{
		ProfessionalTitle: "Consultant IT",
		Name:              "Jean Dupont",
		SkillGroups: []SkillGroup{
			{Category: "Langages", Skills: []string{"Go", "Python"}},
		},
	}
	rec.EnsureDefaults()

	data, err := json.Marshal(&rec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Contains(t, m, "titre_professionnel")
	assert.Contains(t, m, "nom")
	assert.Contains(t, m, "competences_groups")
	assert.Contains(t, m, "diplomes")
	assert.Contains(t, m, "experiences")
	assert.NotContains(t, m, "email")
}

func TestIsEmpty(t *testing.T) {
	var rec Record
	rec.EnsureDefaults()
	assert.True(t, rec.IsEmpty())

	rec.Languages = []Language{{Name: "Anglais", Level: "Courant"}}
	assert.False(t, rec.IsEmpty())
}
