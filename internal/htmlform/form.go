package htmlform

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTML element names of form controls.
const (
	elementInput    = "input"
	elementSelect   = "select"
	elementTextarea = "textarea"
)

// Form describes one <form> element.
type Form struct {
	// Action is the trimmed action attribute, empty when absent.
	Action string

	// Method is the upper-cased method attribute, "GET" when absent.
	Method string

	// Fields lists the named controls inside the form.
	Fields []Field
}

// Field is a named form control.
type Field struct {
	// Name is the name attribute.
	Name string

	// Type is the input type, or the element name for select and textarea.
	Type string
}

// HasPasswordField reports whether the form asks for a password.
func (f Form) HasPasswordField() bool {
	for _, field := range f.Fields {
		if strings.EqualFold(field.Type, "password") {
			return true
		}
	}
	return false
}

// Extract parses body and returns its forms in document order.
func Extract(body string) ([]Form, error) {
	return Parse(strings.NewReader(body))
}

// Parse reads an HTML document from r and returns its forms in document order.
func Parse(r io.Reader) ([]Form, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	forms := make([]Form, 0)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "form" {
			form := Form{
				Action: strings.TrimSpace(getAttr(n, "action")),
				Method: strings.ToUpper(strings.TrimSpace(getAttr(n, "method"))),
				Fields: make([]Field, 0),
			}
			if form.Method == "" {
				form.Method = "GET"
			}
			extractFields(n, &form)
			forms = append(forms, form)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return forms, nil
}

// extractFields collects named controls below n.
func extractFields(n *html.Node, form *Form) {
	if n.Type == html.ElementNode && (n.Data == elementInput || n.Data == elementSelect || n.Data == elementTextarea) {
		field := Field{
			Name: getAttr(n, "name"),
			Type: strings.ToLower(getAttr(n, "type")),
		}
		if field.Type == "" {
			switch n.Data {
			case elementTextarea, elementSelect:
				field.Type = n.Data
			default:
				field.Type = "text"
			}
		}
		if field.Name != "" {
			form.Fields = append(form.Fields, field)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractFields(c, form)
	}
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
