package model

// Line is a single "Label: value" row of a rendered report.
type Line struct {
	Label string
	Value string
}

// Paragraph is free text that wraps within the page width.
type Paragraph struct {
	Heading string
	Text    string
}

type ListSection struct {
	Heading string
	Items   []string
	// Empty is printed instead of the items when there are none.
	Empty string
}

// Sheet is the layout-independent content of a rendered report.
type Sheet struct {
	Title      string
	Lines      []Line
	Paragraphs []Paragraph
	Lists      []ListSection
	// Signature is an image data URL, possibly empty.
	Signature string
	// Filename is offered when the PDF is downloaded directly.
	Filename string
}

// Document is a record that can be rendered to PDF.
type Document interface {
	// Kind names the HTML template used for the record.
	Kind() string
	Sheet() Sheet
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
