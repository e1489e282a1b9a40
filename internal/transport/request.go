package transport

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/holocron/pkg/catalog"
	"github.com/agentstation/holocron/pkg/constants"
	"github.com/agentstation/holocron/pkg/errors"
	"github.com/agentstation/holocron/pkg/logging"
)

// maxErrorBody bounds how much of an error body ends up in an error message.
const maxErrorBody = 256

// DecodeResponse reads a catalog response and decodes it into a Document.
// The body is always closed.
func DecodeResponse(resp *http.Response, rt catalog.ResourceType) (catalog.Document, error) {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBytes))
	if err != nil {
		return nil, &errors.APIError{
			Resource:   rt.String(),
			StatusCode: resp.StatusCode,
			Message:    "failed to read response body",
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.APIError{
			Resource:   rt.String(),
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp, body),
			Endpoint:   requestURL(resp),
		}
	}

	doc, err := catalog.DecodeDocument(body)
	if err != nil {
		return nil, errors.WrapParse("json", rt.String(), err)
	}
	return doc, nil
}

// errorMessage returns the trimmed error body as valid UTF-8, cut on a rune
// boundary at maxErrorBody bytes.
func errorMessage(resp *http.Response, body []byte) string {
	msg := strings.TrimSpace(strings.ToValidUTF8(string(body), "\uFFFD"))
	if len(msg) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut] + "..."
	}
	if msg == "" {
		return fmt.Sprintf("unexpected status %s", resp.Status)
	}
	return msg
}

func requestURL(resp *http.Response) string {
	if resp.Request == nil || resp.Request.URL == nil {
		return ""
	}
	return resp.Request.URL.String()
}
