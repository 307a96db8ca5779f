package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	datacls "github.com/reoring/datacls"
	"github.com/reoring/datacls/codec"
	"github.com/reoring/datacls/declfile"
	gen "github.com/reoring/datacls/internal/gen"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "inspect":
		inspectCmd(os.Args[2:])
	case "new":
		newCmd(os.Args[2:])
	case "schema":
		schemaCmd(os.Args[2:])
	case "gen":
		genCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "datacls CLI\n\nUsage:\n  datacls inspect -f decls.yaml [-type T]\n  datacls new -f decls.yaml -type T [-in data.json] [-from json] [-to yaml]\n  datacls schema -f decls.yaml -type T\n  datacls gen -f decls.yaml [-type T1,T2] [-pkg name] -o out.go\n\nEvery subcommand accepts -v for debug logging on stderr.")
}

// common holds the flags every subcommand shares.
type common struct {
	file    string
	verbose bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "f", "", "declaration file (.yaml, .yml or .json)")
	fs.BoolVar(&c.verbose, "v", false, "log augmentation steps")
}

func (c *common) load(fs *flag.FlagSet) []*datacls.Type {
	if c.file == "" {
		fs.Usage()
		os.Exit(2)
	}
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	types, err := declfile.Load(c.file, datacls.WithLogger(logger))
	if err != nil {
		fatalf("load %s: %v", c.file, err)
	}
	logger.Debug("declarations loaded", "file", c.file, "types", len(types))
	return types
}

func pick(types []*datacls.Type, name string) *datacls.Type {
	t, ok := declfile.Find(types, name)
	if !ok {
		fatalf("type %q is not declared", name)
	}
	return t
}

func inspectCmd(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	var c common
	var typeName string
	c.register(fs)
	fs.StringVar(&typeName, "type", "", "only this type")
	_ = fs.Parse(args)
	types := c.load(fs)
	if typeName != "" {
		types = []*datacls.Type{pick(types, typeName)}
	}
	for i, t := range types {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(t.Signature())
		fmt.Printf("  init=%t repr=%t eq=%t frozen=%t post_init=%t\n", t.HasInit(), t.HasRepr(), t.HasEq(), t.Frozen(), t.HasPostInit())
		for name, spec := range t.Fields().All() {
			switch {
			case spec.Factory != nil:
				fmt.Printf("  %s: %s = <factory>\n", name, spec.Type)
			case spec.HasDefault():
				fmt.Printf("  %s: %s = %v\n", name, spec.Type, spec.Default)
			default:
				fmt.Printf("  %s: %s\n", name, spec.Type)
			}
		}
	}
}

func newCmd(args []string) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	var c common
	var typeName, in, from, to string
	c.register(fs)
	fs.StringVar(&typeName, "type", "", "type to construct")
	fs.StringVar(&in, "in", "", "input file (default stdin)")
	fs.StringVar(&from, "from", "", "input format (default from -in extension, else json)")
	fs.StringVar(&to, "to", "", "output format (default: input format)")
	_ = fs.Parse(args)
	if typeName == "" {
		fs.Usage()
		os.Exit(2)
	}
	t := pick(c.load(fs), typeName)

	var (
		data []byte
		err  error
	)
	if in == "" || in == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(in)
	}
	if err != nil {
		fatalf("reading input: %v", err)
	}
	if from == "" {
		from = strings.TrimPrefix(filepath.Ext(in), ".")
		if from == "" {
			from = "json"
		}
	}
	if to == "" {
		to = from
	}
	dec, err := codec.ByName(from)
	if err != nil {
		fatalf("%v", err)
	}
	enc, err := codec.ByName(to)
	if err != nil {
		fatalf("%v", err)
	}
	inst, err := dec.Unmarshal(t, data)
	if err != nil {
		fatalf("construct %s: %v", t.Name(), err)
	}
	fmt.Fprintln(os.Stderr, inst)
	out, err := enc.Marshal(inst)
	if err != nil {
		fatalf("encode: %v", err)
	}
	if _, err := os.Stdout.Write(out); err != nil {
		fatalf("writing output: %v", err)
	}
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	var c common
	var typeName string
	c.register(fs)
	fs.StringVar(&typeName, "type", "", "type to describe")
	_ = fs.Parse(args)
	if typeName == "" {
		fs.Usage()
		os.Exit(2)
	}
	s, err := pick(c.load(fs), typeName).JSONSchema()
	if err != nil {
		fatalf("schema: %v", err)
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		fatalf("encode schema: %v", err)
	}
	fmt.Println(string(b))
}

func genCmd(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	var c common
	var typesCSV, pkg, out string
	c.register(fs)
	fs.StringVar(&typesCSV, "type", "", "comma-separated type names (default all)")
	fs.StringVar(&pkg, "pkg", "", "package name (default: package of the current directory)")
	fs.StringVar(&out, "o", "", "output filename")
	_ = fs.Parse(args)
	if out == "" {
		fs.Usage()
		os.Exit(2)
	}
	types := c.load(fs)
	if typesCSV != "" {
		var sel []*datacls.Type
		for _, name := range splitCSV(typesCSV) {
			sel = append(sel, pick(types, name))
		}
		types = sel
	}
	if pkg == "" {
		pkg = detectPackageName()
	}
	if pkg == "" {
		pkg = "main"
	}
	code, err := gen.RenderFile(gen.File{Package: pkg, Types: types})
	if err != nil {
		fatalf("generate: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		fatalf("creating output dir: %v", err)
	}
	if err := os.WriteFile(out, code, 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func detectPackageName() string {
	cmd := exec.Command("go", "list", "-f", "{{.Name}}")
	cmd.Env = os.Environ()
	cmd.Dir = "."
	out, err := cmd.CombinedOutput()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
