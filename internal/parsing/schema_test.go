package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShape(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "complete record",
			input:   `{"titre_professionnel": "Consultant", "diplomes": [], "certifications": [], "competences_groups": [], "langues": [], "experiences": []}`,
			wantErr: false,
		},
		{
			name:    "partial record is fine",
			input:   `{"nom": "Dupont"}`,
			wantErr: false,
		},
		{
			name:    "empty object is fine",
			input:   `{}`,
			wantErr: false,
		},
		{
			name:    "diplomes as object rejected",
			input:   `{"diplomes": {"annee": "2020"}}`,
			wantErr: true,
		},
		{
			name:    "langues as strings rejected",
			input:   `{"langues": ["anglais"]}`,
			wantErr: true,
		},
		{
			name:    "experience realisations as string rejected",
			input:   `{"experiences": [{"entreprise": "Acme", "realisations": "tout"}]}`,
			wantErr: true,
		},
		{
			name:    "titre as number rejected",
			input:   `{"titre_professionnel": 42}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			input:   `{"diplomes": [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShape(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var shapeErr *JSONShapeError
				assert.ErrorAs(t, err, &shapeErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
