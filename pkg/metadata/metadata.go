// Package metadata parses core metadata documents produced by Python build
// backends (the METADATA file inside a .dist-info directory).
//
// The document is an RFC 822 style header block followed by an optional
// body holding the long description. Header names may repeat and every
// occurrence is kept in document order:
//
//	Metadata-Version: 2.1
//	Name: demo
//	Version: 1.0
//	Requires-Dist: requests>=2
//	Requires-Dist: click
//
//	Long description here.
package metadata

import (
	"bufio"
	"io"
	"os"
	"slices"
	"strings"
)

// Well-known header names.
const (
	HeaderMetadataVersion = "Metadata-Version"
	HeaderName            = "Name"
	HeaderVersion         = "Version"
	HeaderSummary         = "Summary"
	HeaderLicense         = "License"
	HeaderAuthor          = "Author"
	HeaderAuthorEmail     = "Author-email"
	HeaderHomePage        = "Home-page"
	HeaderRequiresPython  = "Requires-Python"
	HeaderRequiresDist    = "Requires-Dist"
	HeaderProvidesExtra   = "Provides-Extra"
	HeaderProjectURL      = "Project-URL"
)

// Field is a single header.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Metadata is a parsed metadata document. It holds its own copies of all
// values and does not reference the file it was read from.
type Metadata struct {
	fields []Field
	Body   string
}

// New builds a document from fields, in order.
func New(fields ...Field) *Metadata {
	return &Metadata{fields: slices.Clone(fields)}
}

// Parse reads a metadata document from r.
//
// Header values are kept as written: leading blanks after the colon are
// dropped and the trailing line break is removed, but continuation lines
// (starting with a space or tab) keep their line breaks and indentation.
// Older documents carry multi-line Description and License text this way.
//
// Headers end at the first blank line, or at the first line that is not a
// header; everything after that is the Body. A continuation line before the
// first header and a line with an empty header name are discarded.
func Parse(r io.Reader) (*Metadata, error) {
	br := bufio.NewReader(r)
	m := &Metadata{}

	var body strings.Builder
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if line == "" {
			break
		}

		if line[0] == ' ' || line[0] == '\t' {
			if n := len(m.fields); n > 0 {
				m.fields[n-1].Value += line
			}
		} else if strings.TrimRight(line, "\r\n") == "" {
			break
		} else if name, value, ok := cutHeader(line); ok {
			if name != "" {
				m.fields = append(m.fields, Field{Name: name, Value: value})
			}
		} else {
			body.WriteString(line)
			break
		}

		if err == io.EOF {
			break
		}
	}

	for i := range m.fields {
		m.fields[i].Value = strings.TrimRight(m.fields[i].Value, "\r\n")
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}
	body.Write(rest)
	m.Body = body.String()
	return m, nil
}

// cutHeader splits "Name: value" lines. Names are printable ASCII without
// blanks; ok is false for any other line.
func cutHeader(line string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < '!' || name[i] > '~' {
			return "", "", false
		}
	}
	return name, strings.TrimLeft(value, " \t"), true
}

// ParseFile reads the metadata document at path.
func ParseFile(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Get returns the first value of the named header, or "" if absent.
// Names are matched case-insensitively.
func (m *Metadata) Get(name string) string {
	for _, f := range m.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

// GetAll returns every value of the named header in document order.
func (m *Metadata) GetAll(name string) []string {
	var out []string
	for _, f := range m.fields {
		if strings.EqualFold(f.Name, name) {
			out = append(out, f.Value)
		}
	}
	return out
}

// Has reports whether the named header occurs at least once.
func (m *Metadata) Has(name string) bool {
	return slices.ContainsFunc(m.fields, func(f Field) bool {
		return strings.EqualFold(f.Name, name)
	})
}

// Fields returns a copy of all headers in document order.
func (m *Metadata) Fields() []Field {
	return slices.Clone(m.fields)
}

// Keys returns the distinct header names in first-seen order.
func (m *Metadata) Keys() []string {
	seen := make(map[string]bool, len(m.fields))
	var keys []string
	for _, f := range m.fields {
		k := strings.ToLower(f.Name)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, f.Name)
		}
	}
	return keys
}

// Len returns the number of headers, counting repeats.
func (m *Metadata) Len() int { return len(m.fields) }

func (m *Metadata) Name() string           { return m.Get(HeaderName) }
func (m *Metadata) Version() string        { return m.Get(HeaderVersion) }
func (m *Metadata) Summary() string        { return m.Get(HeaderSummary) }
func (m *Metadata) License() string        { return m.Get(HeaderLicense) }
func (m *Metadata) RequiresPython() string { return m.Get(HeaderRequiresPython) }
func (m *Metadata) RequiresDist() []string { return m.GetAll(HeaderRequiresDist) }
func (m *Metadata) ProvidesExtra() []string {
	return m.GetAll(HeaderProvidesExtra)
}

// ProjectURLs parses Project-URL headers ("label, url") into a map keyed by
// label. Headers without a label are keyed by the URL itself.
func (m *Metadata) ProjectURLs() map[string]string {
	urls := make(map[string]string)
	for _, v := range m.GetAll(HeaderProjectURL) {
		label, url, ok := strings.Cut(v, ",")
		if !ok {
			urls[strings.TrimSpace(v)] = strings.TrimSpace(v)
			continue
		}
		urls[strings.TrimSpace(label)] = strings.TrimSpace(url)
	}
	return urls
}
