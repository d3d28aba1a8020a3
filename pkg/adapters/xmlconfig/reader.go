package xmlconfig

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/x3launch/pkg/domain"
	"gopkg.in/xmlpath.v2"
)

var (
	pathUsername = xmlpath.MustCompile("/config/server/username")
	pathIP       = xmlpath.MustCompile("/config/server/ip")
	pathPort     = xmlpath.MustCompile("/config/server/port")
	pathLocal    = xmlpath.MustCompile("/config/local")
	pathDebug    = xmlpath.MustCompile("/config/debug")
)

// Reader implements ports.ProfileReader by looking elements up by path,
// the same way the client resolves its settings.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read loads the profile stored at path.
func (r *Reader) Read(ctx context.Context, path string) (domain.Profile, error) {
	doc, err := Inspect(path)
	if err != nil {
		return domain.Profile{}, err
	}
	profile, err := doc.Profile()
	if err != nil {
		return domain.Profile{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return profile, nil
}

// Inspect returns the raw document stored at path.
func Inspect(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a document. Every element of the schema must be present.
func Decode(r io.Reader) (Document, error) {
	root, err := xmlpath.Parse(r)
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse config: %w", err)
	}

	var doc Document
	fields := []struct {
		name string
		path *xmlpath.Path
		dst  *string
	}{
		{"config/server/username", pathUsername, &doc.Server.Username},
		{"config/server/ip", pathIP, &doc.Server.IP},
		{"config/server/port", pathPort, &doc.Server.Port},
		{"config/local", pathLocal, &doc.Local},
		{"config/debug", pathDebug, &doc.Debug},
	}
	for _, f := range fields {
		v, ok := f.path.String(root)
		if !ok {
			return Document{}, fmt.Errorf("config is missing element %s", f.name)
		}
		*f.dst = v
	}
	return doc, nil
}
