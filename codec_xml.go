package tadow

import (
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// XMLCodec handles tagged documents. Encoding writes a "root" element whose children carry a type attribute
// (dict, list, str, number, bool, null) so that decoding restores the same structured data. Type attributes
// are only interpreted inside such a typed "root" element. Any other document decodes to the content of its
// document element: elements decode to a string when they only hold text, and to a map otherwise, with
// repeated child names collected into a list and attributes stored under "@name" keys.
type XMLCodec struct {
	// Charset is declared in the prolog of encoded documents, it defaults to UTF-8.
	Charset string
}

type xmlNode struct {
	name     string
	attrs    map[string]string
	children []*xmlNode
	text     strings.Builder
}

// Decode implements [Codec].
func (XMLCodec) Decode(data []byte) (any, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil // the registry already transcoded to utf-8
	}

	var root *xmlNode
	var stack []*xmlNode
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "invalid xml")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{name: t.Name.Local, attrs: map[string]string{}}
			for _, a := range t.Attr {
				n.attrs[a.Name.Local] = a.Value
			}

			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else if root != nil {
				return nil, errors.New("invalid xml: multiple root elements")
			} else {
				root = n
			}

			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			} else if len(bytes.TrimSpace(t)) > 0 {
				return nil, errors.New("invalid xml: text outside of the document element")
			}
		}
	}

	if root == nil {
		return nil, errors.New("invalid xml: no document element")
	}

	if root.name == "root" && root.attrs["type"] != "" {
		return root.value()
	}

	return root.untyped(), nil
}

// key is the map key of a typed element, keys that are no valid element names are carried by a name
// attribute on a "key" element.
func (n *xmlNode) key() string {
	if name, ok := n.attrs["name"]; ok && n.name == "key" {
		return name
	}

	return n.name
}

// value decodes an element of a typed document.
func (n *xmlNode) value() (any, error) {
	text := n.text.String()
	switch typ := n.attrs["type"]; typ {
	case "null":
		return nil, nil
	case "str":
		return text, nil
	case "number":
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number in <%s>", n.name)
		}

		return f, nil
	case "bool":
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid bool in <%s>", n.name)
		}

		return b, nil
	case "list":
		list := make([]any, 0, len(n.children))
		for _, c := range n.children {
			v, err := c.value()
			if err != nil {
				return nil, err
			}

			list = append(list, v)
		}

		return list, nil
	case "dict":
		m := make(map[string]any, len(n.children))
		for _, c := range n.children {
			v, err := c.value()
			if err != nil {
				return nil, err
			}

			m[c.key()] = v
		}

		return m, nil
	case "":
		return n.untyped(), nil
	default:
		return nil, errors.Newf("unknown type %q on <%s>", typ, n.name)
	}
}

func (n *xmlNode) untyped() any {
	if len(n.children) == 0 && len(n.attrs) == 0 {
		return n.text.String()
	}

	m := map[string]any{}
	for k, v := range n.attrs {
		m["@"+k] = v
	}

	for _, c := range n.children {
		v := c.untyped()
		switch prev, ok := m[c.name]; {
		case !ok:
			m[c.name] = v
		case isRepeated(prev):
			m[c.name] = append(prev.(xmlRepeated), v)
		default:
			m[c.name] = xmlRepeated{prev, v}
		}
	}

	if text := strings.TrimSpace(n.text.String()); text != "" {
		m["#text"] = text
	}

	for k, v := range m {
		if rep, ok := v.(xmlRepeated); ok {
			m[k] = []any(rep)
		}
	}

	return m
}

// xmlRepeated marks lists that were built from repeated elements while decoding.
type xmlRepeated []any

func isRepeated(v any) bool {
	_, ok := v.(xmlRepeated)
	return ok
}

var xmlNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// Encode implements [Codec].
func (c XMLCodec) Encode(v any) ([]byte, error) {
	charset := c.Charset
	if charset == "" {
		charset = "UTF-8"
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="` + charset + `"?>` + "\n")
	if err := encodeXMLElement(&buf, "root", v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func encodeXMLElement(buf *bytes.Buffer, key string, v any) error {
	v, err := normalize(v)
	if err != nil {
		return err
	}

	name, attr := key, ""
	if !xmlNamePattern.MatchString(key) || strings.HasPrefix(strings.ToLower(key), "xml") {
		name, attr = "key", ` name="`+escapeXML(key)+`"`
	}

	open := func(typ string) {
		buf.WriteString("<" + name + attr + ` type="` + typ + `">`)
	}

	switch x := v.(type) {
	case nil:
		buf.WriteString("<" + name + attr + ` type="null"/>`)
		return nil
	case string:
		open("str")
		buf.WriteString(escapeXML(x))
	case float64:
		open("number")
		buf.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	case bool:
		open("bool")
		buf.WriteString(strconv.FormatBool(x))
	case []any:
		open("list")
		for _, item := range x {
			if err := encodeXMLElement(buf, "item", item); err != nil {
				return err
			}
		}
	case map[string]any:
		open("dict")
		keys := lo.Keys(x)
		slices.Sort(keys)
		for _, k := range keys {
			if err := encodeXMLElement(buf, k, x[k]); err != nil {
				return err
			}
		}
	default:
		return errors.Newf("cannot encode %T as xml", v)
	}

	buf.WriteString("</" + name + ">")

	return nil
}

func escapeXML(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
