package epg

import (
	"encoding/xml"

	"github.com/samber/oops"
	"github.com/spf13/afero"
)

// Write serializes doc as indented UTF-8 XML. The file is staged next to
// path and renamed over it, so an existing guide is replaced whole or not
// at all.
func Write(fs afero.Fs, path string, doc *TV) error {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return oops.With("context", "marshaling EPG").Wrap(err)
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	tempFile := path + ".tmp"
	if err := afero.WriteFile(fs, tempFile, data, 0644); err != nil {
		return oops.With("path", tempFile).Wrap(err)
	}
	if err := fs.Rename(tempFile, path); err != nil {
		_ = fs.Remove(tempFile)
		return oops.With("path", path).Wrap(err)
	}
	return nil
}
