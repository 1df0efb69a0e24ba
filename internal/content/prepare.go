package content

// Prepared is file content ready for counting and export.
type Prepared struct {
	Text     string
	Language string
	Minified bool
	// Warning is set when minification failed and Text fell back to the
	// stripped original.
	Warning error
}

// Preparer applies the text transforms in order: license stripping, then
// minification when enabled.
type Preparer struct {
	minifier Minifier
}

// NewPreparer creates a Preparer. A nil minifier disables minification.
func NewPreparer(minifier Minifier) *Preparer {
	return &Preparer{minifier: minifier}
}

// Prepare never fails: a minification error is reported in Prepared.Warning.
func (p *Preparer) Prepare(path string, raw []byte, minify bool) Prepared {
	prepared := Prepared{
		Text:     StripLicenseHeaders(string(raw)),
		Language: LanguageFromFilename(path),
	}
	if !minify || p.minifier == nil {
		return prepared
	}

	out, ok, err := p.minifier.Minify(path, prepared.Text)
	switch {
	case err != nil:
		prepared.Warning = err
	case ok:
		prepared.Text = out
		prepared.Minified = true
	}
	return prepared
}
