package todosdk

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// parsePage reads the HTML body of resp into a Page.
func parsePage(resp *http.Response) (*Page, error) {
	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	page := &Page{
		StatusCode: resp.StatusCode,
		Path:       resp.Request.URL.Path,
	}

	for n := range doc.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}

		switch {
		case n.Data == "h1" && page.Heading == "":
			page.Heading = textContent(n)
		case hasClass(n, "error") && page.Error == "":
			page.Error = textContent(n)
		case n.Data == "li" && attr(n, "data-id") != "":
			page.Tasks = append(page.Tasks, parseTask(n))
		}
	}

	return page, nil
}

func parseTask(li *html.Node) Task {
	t := Task{
		ID:       attr(li, "data-id"),
		Complete: hasClass(li, "done"),
	}
	for n := range li.Descendants() {
		if n.Type == html.ElementNode && hasClass(n, "desc") {
			t.Description = textContent(n)
			break
		}
	}
	return t
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := range n.Descendants() {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}
