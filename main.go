package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/depc-lang/depc/ast"
	"github.com/depc-lang/depc/lexer"
	"github.com/depc-lang/depc/symbols"
	"github.com/depc-lang/depc/typecheck"
)

const manifestName = "depc.yaml"
const sourceSuffix = ".dc"

type depcModule struct {
	Package string   `yaml:"package"`
	Sources []string `yaml:"sources,omitempty"`
}

func readManifest() (depcModule, error) {
	var doc depcModule

	data, err := ioutil.ReadFile(manifestName)
	if err != nil {
		return doc, err
	}
	err = yaml.Unmarshal(data, &doc)
	return doc, err
}

// moduleSources returns the files named by the manifest, or every .dc
// file in the directory when the manifest lists none.
func moduleSources(doc depcModule) ([]string, error) {
	if len(doc.Sources) > 0 {
		return doc.Sources, nil
	}

	fis, err := ioutil.ReadDir("./")
	if err != nil {
		return nil, err
	}

	var sources []string
	for _, fi := range fis {
		if strings.HasSuffix(fi.Name(), sourceSuffix) {
			sources = append(sources, fi.Name())
		}
	}
	sort.Strings(sources)
	return sources, nil
}

func parseSources(tbl *symbols.Table, files []string) (ast.TranslationUnit, error) {
	var unit ast.TranslationUnit

	for _, file := range files {
		handle, err := os.Open(file)
		if err != nil {
			return unit, err
		}

		l := lexer.NewLexer(handle, file)
		p := NewParser(l, tbl)
		parsed, err := p.Parse()
		handle.Close()
		if err != nil {
			return unit, err
		}

		unit.TopLevels = append(unit.TopLevels, parsed.TopLevels...)
	}
	return unit, nil
}

// checkUnit orders the declarations by their signature dependencies,
// checks and binds every signature in that order, then checks every
// body against the full set of signatures, so bodies may be mutually
// recursive. A declaration that fails is reported and skipped; the
// remaining declarations are still checked against the signatures that
// did succeed.
func checkUnit(tbl *symbols.Table, unit ast.TranslationUnit) int {
	order, err := typecheck.Sort(unit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx := typecheck.NewContext(tbl)
	failures := 0
	signatureOK := make([]bool, len(unit.TopLevels))
	for _, i := range order {
		top := unit.TopLevels[i]
		if err := typecheck.CheckSignature(ctx, top); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", top.TopLevelName(), err)
			failures++
			continue
		}
		signatureOK[i] = true
	}
	for _, i := range order {
		if !signatureOK[i] {
			continue
		}
		top := unit.TopLevels[i]
		if err := typecheck.CheckBody(ctx, top); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", top.TopLevelName(), err)
			failures++
		}
	}
	return failures
}

func main() {
	app := &cli.App{
		Name:  "depc",
		Usage: "dependent-c front end",
		ExitErrHandler: func(context *cli.Context, err error) {
			if err != nil {
				log.Fatalf("error with depc: %s", err)
			}
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write a module manifest into the current directory",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						fmt.Printf("no module name provided")
						os.Exit(1)
					}

					out, err := yaml.Marshal(depcModule{Package: name})
					if err != nil {
						return err
					}
					return ioutil.WriteFile(manifestName, out, 0o644)
				},
			},
			{
				Name:  "check",
				Usage: "parse and type check the module's sources",
				Action: func(c *cli.Context) error {
					files := c.Args().Slice()
					if len(files) == 0 {
						doc, err := readManifest()
						if err != nil {
							fmt.Fprintf(os.Stderr, "error reading %s: %s\n", manifestName, err)
							os.Exit(1)
						}
						if files, err = moduleSources(doc); err != nil {
							return err
						}
					}

					tbl := symbols.NewTable()
					unit, err := parseSources(tbl, files)
					if err != nil {
						tracerr.PrintSourceColor(err)
						os.Exit(1)
					}

					if failures := checkUnit(tbl, unit); failures > 0 {
						os.Exit(1)
					}
					return nil
				},
			},
			{
				Name:  "dump",
				Usage: "parse sources and print the syntax tree",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "print re-rendered source instead of the raw tree",
					},
				},
				Action: func(c *cli.Context) error {
					tbl := symbols.NewTable()
					unit, err := parseSources(tbl, c.Args().Slice())
					if err != nil {
						tracerr.PrintSourceColor(err)
						os.Exit(1)
					}

					if c.Bool("pretty") {
						fmt.Print(unit.String())
						return nil
					}
					repr.Println(unit)
					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}
