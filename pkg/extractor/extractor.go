package extractor

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"xfollow/pkg/models"
)

// DefaultRowMarker is the data-testid value of a user row
const DefaultRowMarker = "UserCell"

const (
	verifiedTestID = "icon-verified"
	verifiedLabel  = "Verified account"
)

var profilePath = regexp.MustCompile(`^/[a-zA-Z0-9_]+$`)

// FindCells returns every element under root whose data-testid equals marker,
// in document order. Nested cells are not searched.
func FindCells(root *html.Node, marker string) []*html.Node {
	if root == nil {
		return nil
	}
	if marker == "" {
		marker = DefaultRowMarker
	}

	var cells []*html.Node
	var walker func(*html.Node)
	walker = func(n *html.Node) {
		if n.Type == html.ElementNode && attr(n, "data-testid") == marker {
			cells = append(cells, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walker(c)
		}
	}
	walker(root)

	return cells
}

// ParseUserCell extracts a UserRecord from a single row element.
// It returns nil when the row has no profile link or is malformed.
func ParseUserCell(cell *html.Node) (record *models.UserRecord) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
		}
	}()

	if cell == nil || cell.Type != html.ElementNode {
		return nil
	}

	link := firstProfileLink(cell)
	if link == nil {
		return nil
	}

	handle := strings.TrimPrefix(attr(link, "href"), "/")
	name := handle
	if label := findFirst(link, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Span
	}); label != nil {
		if text := strings.TrimSpace(textContent(label)); text != "" {
			name = text
		}
	}

	return &models.UserRecord{
		Handle:      handle,
		DisplayName: name,
		IsVerified:  hasVerifiedBadge(cell),
	}
}

// firstProfileLink finds the first a[href^="/"] that points at a bare handle
func firstProfileLink(cell *html.Node) *html.Node {
	return findFirst(cell, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.A {
			return false
		}
		href := attr(n, "href")
		if !strings.HasPrefix(href, "/") || strings.Contains(href, "/status/") {
			return false
		}
		return profilePath.MatchString(href)
	})
}

func hasVerifiedBadge(cell *html.Node) bool {
	return findFirst(cell, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		if attr(n, "data-testid") == verifiedTestID {
			return true
		}
		return n.Data == "svg" && attr(n, "aria-label") == verifiedLabel
	}) != nil
}

// findFirst walks the subtree below n (excluding n) depth-first
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walker func(*html.Node)
	walker = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walker(c)
		}
	}
	walker(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
