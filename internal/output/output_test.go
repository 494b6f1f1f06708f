package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itani-network/kobswallet/internal/output"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, output.FormatJSON, output.ParseFormat("JSON"))
	assert.Equal(t, output.FormatText, output.ParseFormat(" text "))
	assert.Equal(t, output.FormatAuto, output.ParseFormat("yaml"))
}

func TestDetectFormat_NonTTYDefaultsToJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, output.FormatJSON, output.DetectFormat(&buf, output.FormatAuto))
	assert.Equal(t, output.FormatText, output.DetectFormat(&buf, output.FormatText))
}

func TestFormatter_PrintJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatJSON, &buf)
	require.NoError(t, f.Print(map[string]string{"balance": "1.5"}))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "1.5", decoded["balance"])
}

func TestFormatter_PrintText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f := output.NewFormatter(output.FormatText, &buf)
	require.NoError(t, f.Print("hello"))
	assert.Equal(t, "hello\n", buf.String())
}

func TestFormatError_Nil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, nil, output.FormatJSON))
	assert.Empty(t, buf.String())
}

func TestFormatError_StructuredJSON(t *testing.T) {
	t.Parallel()

	err := walleterr.WithSuggestion(
		walleterr.WithDetails(walleterr.ErrUnknownChain, map[string]string{"chain": "solano"}),
		"did you mean 'solana'?",
	)

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, err, output.FormatJSON))

	var decoded output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "UNKNOWN_CHAIN", decoded.Error.Code)
	assert.Equal(t, "solano", decoded.Error.Details["chain"])
	assert.Equal(t, "did you mean 'solana'?", decoded.Error.Suggestion)
	assert.Equal(t, walleterr.ExitInput, decoded.Error.ExitCode)
}

func TestFormatError_GenericJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	//nolint:err113 // plain error on purpose
	require.NoError(t, output.FormatError(&buf, errors.New("boom"), output.FormatJSON))

	var decoded output.ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "GENERAL_ERROR", decoded.Error.Code)
	assert.Equal(t, "boom", decoded.Error.Message)
}

func TestFormatError_TextWithHint(t *testing.T) {
	t.Parallel()

	err := walleterr.WithSuggestion(walleterr.ErrNotAuthenticated, "run 'kobswallet auth login' first")

	var buf bytes.Buffer
	require.NoError(t, output.FormatError(&buf, err, output.FormatText))
	assert.Contains(t, buf.String(), "Error: no user is logged in")
	assert.Contains(t, buf.String(), "Hint: run 'kobswallet auth login' first")
}

func TestTable_Render(t *testing.T) {
	t.Parallel()

	tbl := output.NewTable("SYMBOL", "BALANCE")
	tbl.AddRow("ITANI", "1,234.5")
	tbl.AddRow("HIS", "0")

	got := tbl.String()
	assert.Contains(t, got, "SYMBOL")
	assert.Contains(t, got, "------")
	assert.Contains(t, got, "ITANI   1,234.5")
	assert.Contains(t, got, "HIS     0")
}

func TestTable_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, output.NewTable().String())
}
