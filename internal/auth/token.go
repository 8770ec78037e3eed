// ABOUTME: Handoff token extraction from identity provider redirect URLs
// ABOUTME: Checks query parameter first, then the URL fragment

package auth

import (
	"fmt"
	"net/url"
)

// tokenParam is the parameter name the identity provider uses for the
// one-time handoff token, in both the query and fragment encodings.
const tokenParam = "session_id"

// ExtractHandoffToken pulls the one-time handoff token out of a
// provider redirect URL. The provider delivers it either as a regular
// query parameter or embedded in the fragment in key=value form; the
// query form takes precedence when both are present.
//
// The returned cleaned URL keeps only scheme, host and path, so running
// extraction again over it finds nothing and the exchange can never be
// replayed.
func ExtractHandoffToken(rawURL string) (token, cleanedURL string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid redirect URL: %w", err)
	}

	token = u.Query().Get(tokenParam)
	if token == "" && u.Fragment != "" {
		// The fragment carries query-string encoding once the leading
		// delimiter is stripped, which url.Parse already did.
		if vals, err := url.ParseQuery(u.Fragment); err == nil {
			token = vals.Get(tokenParam)
		}
	}

	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	return token, u.String(), nil
}
