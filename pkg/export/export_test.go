package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rosterDataset() Dataset {
	return Dataset{
		Title:   "Parents",
		Headers: []string{"id", "username", "email"},
		Rows: [][]string{
			{"3", "mdupont", "m.dupont@example.com"},
			{"4", "kmüller"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(rosterDataset())
	require.NoError(t, err)
	assert.Equal(t, "id,username,email\n3,mdupont,m.dupont@example.com\n4,kmüller,\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(rosterDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	exp, err := ForFormat("")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", exp.ContentType())

	exp, err = ForFormat(FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "pdf", exp.Extension())

	_, err = ForFormat("xlsx")
	assert.Error(t, err)
}
