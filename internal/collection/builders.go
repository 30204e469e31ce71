// Package collection provides constructors for collection building blocks.
//
// This file contains helpers used by the assembler to build URLs, headers,
// request bodies and pm.test assertion scripts without repeating the
// boilerplate in every item.
package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// BaseURLVar is the host placeholder used by every request URL
const BaseURLVar = "{{baseUrl}}"

const scriptIndent = "    "

// newURL builds a URL rooted at {{baseUrl}} from a path such as "/o/token".
// Raw is always derived from the decomposed parts so the two can't drift.
func newURL(path string, query ...KeyValue) URL {
	segments := []string{}
	if trimmed := strings.Trim(path, "/"); trimmed != "" {
		segments = strings.Split(trimmed, "/")
	}
	u := URL{
		Host:  []string{BaseURLVar},
		Path:  segments,
		Query: query,
	}
	u.Raw = u.Compose()
	return u
}

// Compose renders the raw URL from Host, Path and Query. Values are not
// percent-encoded; {{variables}} are resolved by the collection runner.
func (u URL) Compose() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(u.Host, "."))
	if len(u.Path) > 0 {
		sb.WriteString("/")
		sb.WriteString(strings.Join(u.Path, "/"))
	}
	for i, q := range u.Query {
		if i == 0 {
			sb.WriteString("?")
		} else {
			sb.WriteString("&")
		}
		sb.WriteString(q.Key)
		sb.WriteString("=")
		sb.WriteString(q.Value)
	}
	return sb.String()
}

func kv(key, value string) KeyValue {
	return KeyValue{Key: key, Value: value}
}

func header(key, value string) Header {
	return Header{Key: key, Value: value}
}

func formContentType() Header {
	return header("Content-Type", "application/x-www-form-urlencoded")
}

func jsonContentType() Header {
	return header("Content-Type", "application/json")
}

func bearerAuth() Header {
	return header("Authorization", "Bearer {{accessToken}}")
}

func noHeaders() []Header {
	return []Header{}
}

func formBody(fields ...KeyValue) *Body {
	return &Body{Mode: BodyModeURLEncoded, URLEncoded: fields}
}

// jsonBody renders v as a pretty-printed JSON string body. Only called with
// literal structs, so an encoding failure is a programming error.
func jsonBody(v any) *Body {
	data, err := encodeIndented(v)
	if err != nil {
		panic(fmt.Sprintf("failed to encode request body: %v", err))
	}
	return &Body{Mode: BodyModeRaw, Raw: string(data)}
}

// encodeIndented encodes v with 2-space indentation, without HTML escaping
// and without the trailing newline json.Encoder appends.
func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// testEvent wraps one or more pm.test blocks into a "test" event, separated
// by blank lines.
func testEvent(blocks ...[]string) []Event {
	var exec []string
	for i, b := range blocks {
		if i > 0 {
			exec = append(exec, "")
		}
		exec = append(exec, b...)
	}
	return []Event{{
		Listen: "test",
		Script: Script{Type: "text/javascript", Exec: exec},
	}}
}

func pmTest(title string, body ...string) []string {
	out := make([]string, 0, len(body)+2)
	out = append(out, fmt.Sprintf("pm.test(%q, function () {", title))
	for _, l := range body {
		if l == "" {
			out = append(out, scriptIndent)
			continue
		}
		out = append(out, scriptIndent+l)
	}
	return append(out, "});")
}

func statusTest(code int) []string {
	return pmTest(fmt.Sprintf("Status code is %d", code),
		fmt.Sprintf("pm.response.to.have.status(%d);", code))
}

// jsonTest parses the response body into jsonData before running body
func jsonTest(title string, body ...string) []string {
	return pmTest(title, append([]string{"var jsonData = pm.response.json();"}, body...)...)
}

func hasProperties(names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("pm.expect(jsonData).to.have.property(%q);", n)
	}
	return out
}

func saveVar(name, expr string) string {
	return fmt.Sprintf("pm.environment.set(%q, %s);", name, expr)
}

func locationHasCode(extra ...string) []string {
	body := []string{
		`var location = pm.response.headers.get("Location");`,
		`pm.expect(location).to.include("code=");`,
	}
	return pmTest("Location header contains code", append(body, extra...)...)
}

func lines(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
