package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	jedi "github.com/alexberriman/react-jedi-sub020"
	"github.com/alexberriman/react-jedi-sub020/pkg/actions"
	"github.com/alexberriman/react-jedi-sub020/pkg/render"
	"github.com/alexberriman/react-jedi-sub020/pkg/renderers/tui"
	"github.com/alexberriman/react-jedi-sub020/pkg/schema"
	"github.com/alexberriman/react-jedi-sub020/pkg/spec"
)

func main() {
	source := flag.String("source", "", "specification path or URL (JSON or YAML)")
	mode := flag.String("mode", "html", "html, tui, or check")
	output := flag.String("output", "", "output file (stdout if empty)")
	dev := flag.Bool("dev", false, "render visible placeholders for unknown components")
	strict := flag.Bool("strict", false, "abort on the first unresolvable node")
	format := flag.String("format", "json", "tui output format: json, form, or pretty")
	flag.Parse()

	if *source == "" {
		log.Fatal("missing -source")
	}

	ctx := context.Background()

	if *mode == "check" {
		runCheck(ctx, *source)
		return
	}

	loader := spec.NewLoader()
	doc, err := loader.Load(ctx, parseSource(*source))
	if err != nil {
		log.Fatalf("Failed to load specification: %v", err)
	}

	switch *mode {
	case "tui":
		runTUI(ctx, doc, *format)
	case "html":
		runHTML(ctx, doc, *dev, *strict, *output)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func runHTML(ctx context.Context, doc *spec.Document, dev, strict bool, output string) {
	dispatcher := jedi.NewDispatcher(jedi.NewActionRegistry())
	outputHTML, err := jedi.RenderHTMLDocument(ctx, doc,
		render.WithDevelopment(dev),
		render.WithStrict(strict),
		render.WithDispatcher(dispatcher),
	)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if output != "" {
		if err := os.WriteFile(output, outputHTML, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Rendered to %s\n", output)
	} else {
		fmt.Println(string(outputHTML))
	}
}

func runTUI(ctx context.Context, doc *spec.Document, format string) {
	renderer := tui.New(
		tui.WithDispatcher(actions.NewDispatcher(actions.NewRegistry())),
		tui.WithOutputFormat(tui.OutputFormat(format)),
		tui.WithTheme(tui.Theme{HeadingPrefix: "== ", ErrorPrefix: "!! "}),
	)
	if _, err := renderer.Run(ctx, doc); err != nil {
		log.Fatalf("Failed to run form: %v", err)
	}
}

func runCheck(ctx context.Context, source string) {
	raw, err := os.ReadFile(source)
	if err != nil {
		log.Fatalf("Failed to read specification: %v", err)
	}
	result, err := schema.NewChecker().Check(ctx, raw)
	if err != nil {
		log.Fatalf("Failed to check specification: %v", err)
	}
	if result.Valid {
		fmt.Println("Specification is valid")
		return
	}
	for _, issue := range result.Issues {
		fmt.Println(issue.String())
	}
	os.Exit(1)
}

func parseSource(raw string) spec.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return spec.SourceFromURL(path)
	}
	return spec.SourceFromFile(path)
}
