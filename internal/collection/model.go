// Package collection defines the Postman v2.1.0 collection document.
//
// This file contains the types that make up a collection (Collection, Folder,
// Item, Request, URL, etc.). Field order in each struct matches the order the
// keys appear in the emitted JSON, so the generated file stays stable.
package collection

// SchemaURL is the Postman collection schema the generated document conforms to
const SchemaURL = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// Collection is the top-level collection document
type Collection struct {
	Info      Info       `json:"info"`
	Variables []Variable `json:"variable"`
	Folders   []Folder   `json:"item"`
}

// Info holds collection metadata
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Schema      string `json:"schema"`
}

// Variable is a collection-level variable (referenced as {{key}} in requests)
type Variable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Folder groups related request items
type Folder struct {
	Name  string `json:"name"`
	Items []Item `json:"item"`
}

// Item is a single request definition plus its test script
type Item struct {
	Name    string  `json:"name"`
	Events  []Event `json:"event"`
	Request Request `json:"request"`
}

// Event attaches a script to a lifecycle hook (only "test" is used)
type Event struct {
	Listen string `json:"listen"`
	Script Script `json:"script"`
}

// Script is an inline script, one source line per Exec entry
type Script struct {
	Type string   `json:"type"`
	Exec []string `json:"exec"`
}

// Request describes the HTTP request of an item
type Request struct {
	Method string   `json:"method"`
	Header []Header `json:"header"`
	Body   *Body    `json:"body,omitempty"`
	URL    URL      `json:"url"`
}

// Header is a request header
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Body is a request body. Mode selects which of URLEncoded or Raw is used.
type Body struct {
	Mode       string     `json:"mode"`
	URLEncoded []KeyValue `json:"urlencoded,omitempty"`
	Raw        string     `json:"raw,omitempty"`
}

// KeyValue is a form field or query parameter
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// URL is a request URL in both raw and decomposed form
type URL struct {
	Raw   string     `json:"raw"`
	Host  []string   `json:"host"`
	Path  []string   `json:"path"`
	Query []KeyValue `json:"query,omitempty"`
}

// Body modes
const (
	BodyModeURLEncoded = "urlencoded"
	BodyModeRaw        = "raw"
)

// ItemCount returns the total number of request items across all folders
func (c *Collection) ItemCount() int {
	n := 0
	for _, f := range c.Folders {
		n += len(f.Items)
	}
	return n
}

// Folder returns the folder with the given name, or nil
func (c *Collection) Folder(name string) *Folder {
	for i := range c.Folders {
		if c.Folders[i].Name == name {
			return &c.Folders[i]
		}
	}
	return nil
}
