// Command vkregistry parses a Vulkan API registry document and prints a
// summary of its commands.
//
// Usage:
//
//	vkregistry [-audit] [-dump] [-v=N] vk.xml
//
// With -audit the document is also loaded as a DOM and its section
// counts are compared with the parsed registry. With -dump the parsed
// registry is written to stdout as YAML.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/andaru/vkregistry/audit"
	"github.com/andaru/vkregistry/registry"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	flagAudit = flag.Bool("audit", false, "cross-check section counts against a DOM of the document")
	flagDump  = flag.Bool("dump", false, "write the parsed registry to stdout as YAML")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] vk.xml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0), os.Stdout); err != nil {
		glog.Errorf("%+v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func run(path string, w io.Writer) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}
	reg, err := registry.ParseBytes(b, registry.WithSink(registry.GlogSink{}))
	if err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}
	glog.V(1).Infof("parsed %s: %d types, %d commands, %d extensions", path, len(reg.Types), len(reg.Commands), len(reg.Extensions))

	var instance, device int
	for i := range reg.Commands {
		switch reg.Commands[i].Table() {
		case registry.InstanceTable:
			instance++
		case registry.DeviceTable:
			device++
		}
	}
	fmt.Fprintf(w, "// Instance Fn Table Count: %d\n", instance)
	fmt.Fprintf(w, "// Device Fn Table Count: %d\n", device)
	fmt.Fprintf(w, "// Total Command Count: %d\n", len(reg.Commands))

	if *flagAudit {
		if err := runAudit(b, reg, w); err != nil {
			return err
		}
	}
	if *flagDump {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reg); err != nil {
			return errors.Wrap(err, "dump")
		}
		return errors.WithStack(enc.Close())
	}
	return nil
}

func runAudit(b []byte, reg *registry.Registry, w io.Writer) error {
	doc, err := audit.Load(bytes.NewReader(b))
	if err != nil {
		return err
	}
	mismatches := audit.Compare(audit.Count(doc), reg)
	for _, m := range mismatches {
		fmt.Fprintf(w, "// audit: %s: document has %d, parsed %d\n", m.Section, m.Document, m.Parsed)
	}
	for _, a := range audit.Ambiguities(doc) {
		if a.Err != nil {
			fmt.Fprintf(w, "// audit: %s enum %s %v rejected: %v\n", a.Context, a.Name, a.Keys, a.Err)
			continue
		}
		fmt.Fprintf(w, "// audit: %s enum %s %v classified as %s\n", a.Context, a.Name, a.Keys, a.Kind)
	}
	if len(mismatches) > 0 {
		return errors.Errorf("audit: %d section count mismatches", len(mismatches))
	}
	return nil
}
