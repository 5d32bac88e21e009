package todo

// Option is a named string setting stored with the list.
type Option struct {
	Key   string
	Value string
}

// Option returns the value stored under key.
func (d *Document) Option(key string) (string, bool) {
	for _, opt := range d.options {
		if opt.Key == key {
			return opt.Value, true
		}
	}
	return "", false
}

// OptionBit reports a boolean option. It is false when the option is absent
// or its value starts with '0', and true otherwise.
func (d *Document) OptionBit(key string) bool {
	value, ok := d.Option(key)
	if !ok {
		return false
	}
	return value == "" || value[0] != '0'
}

// SetOption stores value under key. An existing option keeps its position;
// a new one is appended. The key must not be empty.
func (d *Document) SetOption(key, value string) error {
	if d.destroyed {
		return ErrDestroyed
	}
	if key == "" {
		return ErrEmptyKey
	}
	for i := range d.options {
		if d.options[i].Key == key {
			d.options[i].Value = value
			return nil
		}
	}
	d.options = append(d.options, Option{Key: key, Value: value})
	return nil
}

// SetOptionBit stores "1" or "0" under key.
func (d *Document) SetOptionBit(key string, bit bool) error {
	value := "0"
	if bit {
		value = "1"
	}
	return d.SetOption(key, value)
}

// DeleteOption removes key. It reports whether the option existed.
func (d *Document) DeleteOption(key string) bool {
	for i, opt := range d.options {
		if opt.Key == key {
			d.options = append(d.options[:i], d.options[i+1:]...)
			return true
		}
	}
	return false
}

// Options returns a copy of the options in insertion order.
func (d *Document) Options() []Option {
	out := make([]Option, len(d.options))
	copy(out, d.options)
	return out
}
