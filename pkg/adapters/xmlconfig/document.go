// Package xmlconfig persists connection profiles in the XML layout the X3MP
// client reads at startup:
//
//	<config>
//	    <server>
//	        <username>Nova</username>
//	        <ip>192.168.1.10</ip>
//	        <port>13337</port>
//	    </server>
//	    <local>0</local>
//	    <debug>0</debug>
//	</config>
//
// Element names and nesting are a compatibility contract with the client;
// indentation is cosmetic.
package xmlconfig

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/aretw0/x3launch/pkg/domain"
)

// DefaultFileName is the file the client looks for in its working directory.
const DefaultFileName = "x3mp.xml"

// Document is the serialized form of a profile. All values are kept as text,
// exactly as they appear in the file.
type Document struct {
	XMLName xml.Name `xml:"config"`
	Server  Server   `xml:"server"`
	Local   string   `xml:"local"`
	Debug   string   `xml:"debug"`
}

// Server is the <server> section.
type Server struct {
	Username string `xml:"username"`
	IP       string `xml:"ip"`
	Port     string `xml:"port"`
}

// NewDocument renders profile into its file representation.
func NewDocument(profile domain.Profile) Document {
	return Document{
		Server: Server{
			Username: profile.DisplayName(),
			IP:       profile.Address(),
			Port:     strconv.Itoa(profile.Port()),
		},
		Local: flag(profile.Local()),
		Debug: flag(profile.Debug()),
	}
}

// Profile converts the document back into a domain profile.
func (d Document) Profile() (domain.Profile, error) {
	port, err := strconv.Atoi(d.Server.Port)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("invalid port %q: %w", d.Server.Port, err)
	}
	for name, v := range map[string]string{"local": d.Local, "debug": d.Debug} {
		if _, err := strconv.Atoi(v); err != nil {
			return domain.Profile{}, fmt.Errorf("invalid %s flag %q: %w", name, v, err)
		}
	}
	return domain.NewProfile(d.Server.Username, d.Server.IP, port)
}

func flag(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
