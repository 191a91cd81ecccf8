package mail

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

// Transactional message bodies. Plain text and HTML variants are kept in
// sync; the HTML variant escapes all injected values.

const albumReadyText = `Hi,

Your album is ready for download. You can download it here:

{{.Link}}

This link will expire in {{.TTLHours}} hour(s).

Thank you!`

const albumReadyHTML = `<html><body><h2>Your Album is Ready!</h2>` +
	`<p>Your album is ready for download.</p>` +
	`<p><a href="{{.Link}}">Click here to download</a></p>` +
	`<p><em>This link will expire in {{.TTLHours}} hour(s).</em></p></body></html>`

const photoReadyText = `Hi,

Your photo is ready for download:

{{.Link}}

This link will expire in {{.TTLHours}} hour(s).

Thank you!`

const photoReadyHTML = `<html><body><h2>Your Photo is Ready!</h2>` +
	`<p><a href="{{.Link}}">Click here to download your photo</a></p>` +
	`<p><em>This link will expire in {{.TTLHours}} hour(s).</em></p></body></html>`

type linkData struct {
	Link     string
	TTLHours int
}

var (
	albumReadyTextTmpl = texttemplate.Must(texttemplate.New("albumReadyText").Parse(albumReadyText))
	albumReadyHTMLTmpl = htmltemplate.Must(htmltemplate.New("albumReadyHTML").Parse(albumReadyHTML))
	photoReadyTextTmpl = texttemplate.Must(texttemplate.New("photoReadyText").Parse(photoReadyText))
	photoReadyHTMLTmpl = htmltemplate.Must(htmltemplate.New("photoReadyHTML").Parse(photoReadyHTML))
)
