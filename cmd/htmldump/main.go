// Command htmldump parses an HTML file, applies any embedded <style>
// rules, and prints the DOM tree dump plus each element's computed
// style. It drives the full ParseHTML → Parse → StyleDocument →
// PrintTree pipeline end-to-end; layout and rendering are out of
// scope.
package main

import (
	"fmt"
	"os"

	"github.com/AlvinKuruvilla/koala/css"
	"github.com/AlvinKuruvilla/koala/dom"
	"github.com/AlvinKuruvilla/koala/html"
	logpkg "github.com/AlvinKuruvilla/koala/log"
	"github.com/AlvinKuruvilla/koala/style"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: htmldump <html-file>")
		os.Exit(1)
	}

	if os.Getenv("HTMLDUMP_DEBUG") != "" {
		logpkg.SetLevel(logpkg.DebugLevel)
	}

	content, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	doc, issues := html.ParseHTML([]rune(string(content)))

	fmt.Println("=== DOM Tree ===")
	doc.PrintTree(os.Stdout, dom.ROOT, 0)

	if len(issues) > 0 {
		fmt.Println("\n=== Parse Issues ===")
		for _, iss := range issues {
			kind := "warning"
			if iss.IsError {
				kind = "error"
			}
			fmt.Printf("[%s] token %d: %s\n", kind, iss.TokenIndex, iss.Message)
		}
	}

	sheet := &css.Stylesheet{}
	for _, styleEl := range findByTagName(doc, dom.ROOT, "style") {
		sheet.Rules = append(sheet.Rules, css.Parse(textContent(doc, styleEl)).Rules...)
	}

	fmt.Printf("\n=== Computing Styles (%d rules) ===\n", len(sheet.Rules))
	computed := style.StyleDocument(doc, style.DefaultUserAgentStylesheet(), sheet)

	fmt.Println("\n=== Computed Styles ===")
	printComputedStyles(doc, dom.ROOT, computed, 0)
}

func findByTagName(doc *dom.Document, n dom.Index, tag string) []dom.Index {
	var out []dom.Index
	if el, ok := doc.AsElement(n); ok && el.TagName == tag {
		out = append(out, n)
	}
	for _, c := range doc.Children(n) {
		out = append(out, findByTagName(doc, c, tag)...)
	}
	return out
}

func textContent(doc *dom.Document, n dom.Index) string {
	var out string
	node := doc.Node(n)
	if node.Kind == dom.KindText {
		out += node.Data
	}
	for _, c := range doc.Children(n) {
		out += textContent(doc, c)
	}
	return out
}

func printComputedStyles(doc *dom.Document, n dom.Index, computed map[dom.Index]*style.ComputedStyle, indent int) {
	if el, ok := doc.AsElement(n); ok {
		prefix := ""
		for i := 0; i < indent; i++ {
			prefix += "  "
		}
		cs := computed[n]
		fmt.Printf("%s<%s> display=%s color=%s font-size=%.1fpx\n", prefix, el.TagName, cs.Display, cs.Color, cs.FontSize.Px)
	}
	for _, c := range doc.Children(n) {
		printComputedStyles(doc, c, computed, indent+1)
	}
}
