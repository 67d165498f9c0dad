package envelope

import (
	"sort"
	"strconv"
	"strings"
)

// Entry is one flattened leaf value.
type Entry struct {
	Key   string
	Value string
}

// Flat is an ordered set of dot-path keys to leaf values. Repeated sibling
// elements get a zero-based index segment; a single occurrence does not.
type Flat struct {
	Entries []Entry
	values  map[string]string
}

// Flatten turns the subtree below n into dot-path keys. Attributes are
// keyed as "@name" and text of an element with children as "#".
func Flatten(n *Node) Flat {
	f := Flat{values: make(map[string]string)}
	if n != nil {
		f.walk("", n)
	}
	return f
}

func (f *Flat) add(key, value string) {
	f.Entries = append(f.Entries, Entry{Key: key, Value: value})
	f.values[key] = value
}

func (f *Flat) walk(prefix string, n *Node) {
	for _, name := range sortedAttrNames(n.Attrs) {
		f.add(join(prefix, "@"+name), n.Attrs[name])
	}
	if len(n.Children) == 0 {
		if prefix != "" {
			f.add(prefix, n.Text)
		}
		return
	}
	if n.Text != "" {
		f.add(join(prefix, "#"), n.Text)
	}

	counts := make(map[string]int, len(n.Children))
	for _, c := range n.Children {
		counts[c.Name]++
	}
	seen := make(map[string]int, len(counts))
	for _, c := range n.Children {
		key := join(prefix, c.Name)
		if counts[c.Name] > 1 {
			key = join(key, strconv.Itoa(seen[c.Name]))
			seen[c.Name]++
		}
		f.walk(key, c)
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func sortedAttrNames(attrs map[string]string) []string {
	if len(attrs) == 0 {
		return nil
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the value at key, or "".
func (f Flat) Get(key string) string {
	return f.values[key]
}

// Lookup returns the value at key and whether it is present.
func (f Flat) Lookup(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Len returns the number of entries.
func (f Flat) Len() int {
	return len(f.Entries)
}

// Sub returns the entries below prefix with the prefix stripped.
func (f Flat) Sub(prefix string) Flat {
	out := Flat{values: make(map[string]string)}
	p := prefix + "."
	for _, e := range f.Entries {
		if strings.HasPrefix(e.Key, p) {
			out.add(strings.TrimPrefix(e.Key, p), e.Value)
		}
	}
	return out
}

// List returns the occurrences of a possibly repeated element at prefix.
func (f Flat) List(prefix string) []Flat {
	sub := f.Sub(prefix)
	if sub.Len() == 0 {
		return nil
	}
	if first := f.Sub(prefix + ".0"); first.Len() == 0 {
		return []Flat{sub}
	}

	var out []Flat
	for i := 0; ; i++ {
		item := f.Sub(prefix + "." + strconv.Itoa(i))
		if item.Len() == 0 {
			return out
		}
		out = append(out, item)
	}
}
