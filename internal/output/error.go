package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// ErrorOutput is the JSON envelope for errors.
type ErrorOutput struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the structured error fields.
type ErrorDetail struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	ExitCode   int               `json:"exit_code"`
}

// FormatError renders an error in the given format. Nil errors produce no
// output.
func FormatError(w io.Writer, err error, format Format) error {
	if err == nil {
		return nil
	}

	if format == FormatJSON {
		return formatErrorJSON(w, err)
	}
	return formatErrorText(w, err)
}

func formatErrorJSON(w io.Writer, err error) error {
	detail := ErrorDetail{
		Code:     walleterr.Code(err),
		Message:  err.Error(),
		ExitCode: walleterr.ExitCode(err),
	}

	var we *walleterr.WalletError
	if errors.As(err, &we) {
		detail.Message = we.Message
		detail.Details = we.Details
		detail.Suggestion = we.Suggestion
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ErrorOutput{Error: detail})
}

func formatErrorText(w io.Writer, err error) error {
	if _, werr := fmt.Fprintf(w, "Error: %s\n", err.Error()); werr != nil {
		return werr
	}

	var we *walleterr.WalletError
	if errors.As(err, &we) && we.Suggestion != "" {
		if _, werr := fmt.Fprintf(w, "Hint: %s\n", we.Suggestion); werr != nil {
			return werr
		}
	}
	return nil
}
