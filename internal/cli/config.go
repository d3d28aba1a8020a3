package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/x3launch/internal/config"
	"github.com/aretw0/x3launch/pkg/adapters/xmlconfig"
)

// ShowConfig prints the connection profile stored at path as the game client reads it.
func ShowConfig(w io.Writer, path string) error {
	doc, err := xmlconfig.Inspect(path)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "file\t%s\n", path)
	fmt.Fprintf(tw, "username\t%s\n", doc.Server.Username)
	fmt.Fprintf(tw, "ip\t%s\n", doc.Server.IP)
	fmt.Fprintf(tw, "port\t%s\n", doc.Server.Port)
	fmt.Fprintf(tw, "local\t%s\n", doc.Local)
	fmt.Fprintf(tw, "debug\t%s\n", doc.Debug)
	return tw.Flush()
}

// ShowSettings prints the effective launcher settings.
func ShowSettings(w io.Writer, s config.Settings) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "executable\t%s\n", s.Executable)
	fmt.Fprintf(tw, "args\t%s\n", s.Args)
	fmt.Fprintf(tw, "module\t%s\n", s.Module)
	fmt.Fprintf(tw, "config_path\t%s\n", s.ConfigPath)
	fmt.Fprintf(tw, "work_dir\t%s\n", s.WorkDir)
	fmt.Fprintf(tw, "delay\t%s\n", s.Delay)
	fmt.Fprintf(tw, "readiness\t%s\n", s.Readiness)
	fmt.Fprintf(tw, "injector\t%v\n", s.Injector)
	fmt.Fprintf(tw, "metrics_file\t%s\n", s.MetricsFile)
	return tw.Flush()
}
