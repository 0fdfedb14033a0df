package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DS-LIT/hrba-forms/internal/model"
)

func TestDecodeEnvelopeAndBare(t *testing.T) {
	for _, in := range []string{
		`{"data":{"name":"Jane Doe","co_official":"John Roe","venue":"Court 1"}}`,
		`{"name":"Jane Doe","co_official":"John Roe","venue":"Court 1"}`,
	} {
		doc, err := Decode(model.KindTribunal, []byte(in))
		require.NoError(t, err)

		report, ok := doc.(*model.TribunalReport)
		require.True(t, ok)
		assert.Equal(t, "John Roe", report.CoOfficial)
		assert.Equal(t, "Court 1", report.Venue)
	}
}

func TestDecodeReimbursement(t *testing.T) {
	doc, err := Decode(model.KindReimbursement, []byte(`{"player_name":"Sam","bsb":36001,"contact_name":"Pat"}`))
	require.NoError(t, err)

	r := doc.(*model.ReimbursementRequest)
	assert.Equal(t, int64(36001), r.BSB)
	assert.Equal(t, "Pat", r.GuardianName.String)
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := Decode("expense", []byte(`{}`))
	assert.Error(t, err)
}
