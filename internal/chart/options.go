package chart

// DisplayOption is a single-letter drawing toggle understood by the SDSS
// image-cutout service.
type DisplayOption byte

// Display options, in the order the option parser collects them. The cutout
// service takes them as a concatenated string; keep this order stable.
const (
	Grid        DisplayOption = 'G'
	Label       DisplayOption = 'L'
	Invert      DisplayOption = 'I'
	PhotoObjs   DisplayOption = 'P'
	SpecObjs    DisplayOption = 'S'
	Outline     DisplayOption = 'O'
	BoundingBox DisplayOption = 'B'
	Fields      DisplayOption = 'F'
	Masks       DisplayOption = 'M'
	Plates      DisplayOption = 'Q'
)

// DisplayOptions is an ordered set of display options. Options keep their
// insertion order and duplicates are dropped.
type DisplayOptions struct {
	opts []DisplayOption
}

// Add appends an option unless it is already present.
func (d *DisplayOptions) Add(o DisplayOption) {
	for _, have := range d.opts {
		if have == o {
			return
		}
	}
	d.opts = append(d.opts, o)
}

// String concatenates the options into the service's opt parameter value.
func (d DisplayOptions) String() string {
	b := make([]byte, len(d.opts))
	for i, o := range d.opts {
		b[i] = byte(o)
	}
	return string(b)
}

// ParseDisplayOptions builds an option set from a string of option letters,
// ignoring unknown characters.
func ParseDisplayOptions(s string) DisplayOptions {
	var d DisplayOptions
	for i := 0; i < len(s); i++ {
		switch o := DisplayOption(s[i]); o {
		case Grid, Label, Invert, PhotoObjs, SpecObjs, Outline, BoundingBox, Fields, Masks, Plates:
			d.Add(o)
		}
	}
	return d
}
