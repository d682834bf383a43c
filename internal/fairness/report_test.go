package fairness

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicemate/dicemate/internal/domain"
)

func sampleReport() *domain.BatchReport {
	v := NewVerifier()
	return v.VerifyBatch([]domain.VerificationInput{
		{ServerSeed: "server123", ClientSeed: "client456", Nonce: 0, ClaimedOutcome: 81.470},
		{ServerSeed: "server123", ClientSeed: "client456", Nonce: 1, ClaimedOutcome: 12.345},
		{ServerSeed: "", ClientSeed: "client456", Nonce: 2, ClaimedOutcome: 50.0},
	})
}

func TestWriteReport_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Nonce", "ServerSeed", "ClientSeed", "Hash", "CalculatedOutcome", "ActualOutcome", "Status", "Error"}, rows[0])
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "81.470", rows[1][4])
	assert.Equal(t, "valid", rows[1][6])
	assert.Equal(t, "invalid", rows[2][6])
	assert.Equal(t, "error", rows[3][6])
	assert.NotEmpty(t, rows[3][7])
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), FormatJSON))

	var decoded domain.BatchReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 1, decoded.Valid)
	assert.Equal(t, 1, decoded.Invalid)
	assert.Equal(t, 1, decoded.Errors)
	assert.Len(t, decoded.Results, 3)
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "MISMATCH")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "checked 3: 1 valid, 1 invalid, 1 errors")
}

func TestWriteReport_DefaultsToText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), ""))
	assert.True(t, strings.Contains(buf.String(), "checked 3"))
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&buf, sampleReport(), "yaml")
	assert.Error(t, err)
}
