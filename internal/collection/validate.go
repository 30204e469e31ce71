// Package collection validates generated collection documents.
//
// Validate checks an emitted collection file in three passes: structure against
// an embedded JSON schema, compilation of every test script, and consistency
// checks (unique variable keys, url.raw matching host/path/query) evaluated
// with JSONPath over the parsed document.
package collection

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/collection.schema.json
var collectionSchema []byte

var (
	variableKeysPath = jp.MustParseString("$.variable[*].key")
	// folders of a collection, and items of a folder
	itemsPath  = jp.MustParseString("$.item[*]")
	namePath   = jp.MustParseString("$.name")
	methodPath = jp.MustParseString("$.request.method")
	urlPath    = jp.MustParseString("$.request.url")
	execPath   = jp.MustParseString("$.event[*].script.exec")
)

// Issue is a single problem found in a collection document
type Issue struct {
	Location string
	Message  string
}

func (i *Issue) String() string {
	if i.Location == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Location, i.Message)
}

// ValidationError collects every issue found by Validate
type ValidationError struct {
	Issues []*Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("collection has %d problem(s): %s", len(e.Issues), strings.Join(msgs, "; "))
}

// Validate checks an encoded collection document. It returns a
// *ValidationError when the document parses but has problems, or a plain
// error when it isn't JSON at all.
func Validate(data []byte) error {
	doc, err := oj.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse collection: %w", err)
	}

	var issues []*Issue

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(collectionSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}
	for _, re := range result.Errors() {
		issues = append(issues, &Issue{Location: re.Field(), Message: re.Description()})
	}
	// Later passes assume the schema holds
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}

	issues = append(issues, checkVariableKeys(doc)...)

	for _, folder := range itemsPath.Get(doc) {
		folderName := stringAt(namePath, folder)
		for _, item := range itemsPath.Get(folder) {
			loc := folderName + "/" + stringAt(namePath, item)
			issues = append(issues, checkURL(loc, urlPath.First(item))...)
			issues = append(issues, checkScripts(loc, execPath.Get(item))...)
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func checkVariableKeys(doc any) []*Issue {
	var issues []*Issue
	seen := make(map[string]bool)
	for _, k := range variableKeysPath.Get(doc) {
		key, _ := k.(string)
		if seen[key] {
			issues = append(issues, &Issue{Location: "variable", Message: fmt.Sprintf("duplicate variable key %q", key)})
		}
		seen[key] = true
	}
	return issues
}

func checkURL(loc string, raw any) []*Issue {
	m, ok := raw.(map[string]any)
	if !ok {
		return []*Issue{{Location: loc, Message: "url is not an object"}}
	}
	u := URL{
		Raw:  asString(m["raw"]),
		Host: asStrings(m["host"]),
		Path: asStrings(m["path"]),
	}
	if q, ok := m["query"].([]any); ok {
		for _, p := range q {
			pm, _ := p.(map[string]any)
			u.Query = append(u.Query, KeyValue{Key: asString(pm["key"]), Value: asString(pm["value"])})
		}
	}
	if composed := u.Compose(); composed != u.Raw {
		return []*Issue{{Location: loc, Message: fmt.Sprintf("url.raw %q does not match host/path/query %q", u.Raw, composed)}}
	}
	return nil
}

func checkScripts(loc string, execs []any) []*Issue {
	var issues []*Issue
	for i, exec := range execs {
		src := strings.Join(asStrings(exec), "\n")
		if _, err := goja.Compile(fmt.Sprintf("%s#%d", loc, i), src, false); err != nil {
			issues = append(issues, &Issue{Location: loc, Message: fmt.Sprintf("test script does not compile: %v", err)})
		}
	}
	return issues
}

// ItemSummary is the name, method and URL of a request item
type ItemSummary struct {
	Name   string
	Method string
	URL    string
}

// FolderSummary lists the items of a folder in document order
type FolderSummary struct {
	Name  string
	Items []ItemSummary
}

// Summarize lists folders and items of an encoded collection document
func Summarize(data []byte) ([]FolderSummary, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse collection: %w", err)
	}

	var folders []FolderSummary
	for _, folder := range itemsPath.Get(doc) {
		fs := FolderSummary{Name: stringAt(namePath, folder)}
		for _, item := range itemsPath.Get(folder) {
			var raw string
			if m, ok := urlPath.First(item).(map[string]any); ok {
				raw = asString(m["raw"])
			}
			fs.Items = append(fs.Items, ItemSummary{
				Name:   stringAt(namePath, item),
				Method: stringAt(methodPath, item),
				URL:    raw,
			})
		}
		folders = append(folders, fs)
	}
	return folders, nil
}

func stringAt(x jp.Expr, data any) string {
	return asString(x.First(data))
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStrings(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, asString(e))
	}
	return out
}
