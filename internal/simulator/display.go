package simulator

// virtualDisplay is an in-memory menu.Display. It models the write-at-cursor
// behavior of the serial LCD closely enough for the controller: selecting a
// row homes the cursor there and the next write replaces that row.
type virtualDisplay struct {
	width     int
	rows      [2]string
	cursor    int
	backlight bool
	size      int
}

func newVirtualDisplay(width int) *virtualDisplay {
	return &virtualDisplay{width: width, backlight: true}
}

func (d *virtualDisplay) SelectRow(row int) error {
	if row != 1 {
		row = 0
	}
	d.cursor = row
	return nil
}

func (d *virtualDisplay) WriteText(text string) error {
	runes := []rune(text)
	if len(runes) > d.width {
		runes = runes[:d.width]
	}
	d.rows[d.cursor] = string(runes)
	return nil
}

func (d *virtualDisplay) ClearAll() error {
	d.rows[0] = ""
	d.rows[1] = ""
	d.cursor = 0
	return nil
}

func (d *virtualDisplay) SetBacklight(on bool) error {
	d.backlight = on
	return nil
}

func (d *virtualDisplay) ConfigureDisplaySize(size int) error {
	d.size = size
	return nil
}

// Row returns the visible content of a row, padded to the display width.
func (d *virtualDisplay) Row(row int) string {
	text := []rune(d.rows[row])
	for len(text) < d.width {
		text = append(text, ' ')
	}
	return string(text)
}

// Backlight reports whether the virtual backlight is on.
func (d *virtualDisplay) Backlight() bool { return d.backlight }
