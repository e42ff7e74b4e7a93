// Package category implements dictionary encoding for categorical fields.
//
// A Dictionary assigns small integer codes to raw string values in the order
// they are first seen. All values of one categorical field type share one
// dictionary, so equality, ordering and distance on categorical values are
// defined over codes. Dictionaries are held by a Registry that callers create
// and inject instead of relying on package-level state:
//
//	reg := category.NewRegistry()
//	mode := reg.Dictionary("transport_mode")
//	walk := mode.Code("walk") // 0
//	bike := mode.Code("bike") // 1
//	mode.Code("walk")         // still 0
//
// Dictionaries and registries are safe for concurrent use.
package category

import "sync"

// Code is the integer code of a categorical value.
type Code uint32

// Dictionary maps raw values to codes, first-seen-wins.
type Dictionary struct {
	mu     sync.RWMutex
	name   string
	codes  map[string]Code
	values []string
}

// NewDictionary creates an empty dictionary for the named field type.
func NewDictionary(name string) *Dictionary {
	return &Dictionary{
		name:  name,
		codes: make(map[string]Code),
	}
}

// Name returns the field type name the dictionary belongs to.
func (d *Dictionary) Name() string {
	return d.name
}

// Code returns the code of value, assigning the next free code when value
// has not been seen before.
func (d *Dictionary) Code(value string) Code {
	d.mu.RLock()
	c, ok := d.codes[value]
	d.mu.RUnlock()
	if ok {
		return c
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// another writer may have assigned it between the locks
	if c, ok := d.codes[value]; ok {
		return c
	}
	c = Code(len(d.values)) //nolint:gosec
	d.codes[value] = c
	d.values = append(d.values, value)

	return c
}

// Lookup returns the code of value without assigning one.
func (d *Dictionary) Lookup(value string) (Code, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.codes[value]

	return c, ok
}

// Value returns the raw value of code.
func (d *Dictionary) Value(code Code) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if int(code) >= len(d.values) {
		return "", false
	}

	return d.values[code], true
}

// Len returns the number of distinct values seen.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.values)
}

// Values returns the raw values in code order.
func (d *Dictionary) Values() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]string, len(d.values))
	copy(out, d.values)

	return out
}

// Reset forgets every assigned code.
func (d *Dictionary) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	clear(d.codes)
	d.values = d.values[:0]
}
