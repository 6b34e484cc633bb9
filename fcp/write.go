package fcp

import (
	"encoding/xml"
	"fmt"
	"os"

	"cutxml/cuterr"
)

const doctype = "<!DOCTYPE xmeml>\n"

// Marshal serializes doc with the XML declaration and doctype.
func Marshal(doc XMEML) ([]byte, error) {
	output, err := xml.MarshalIndent(doc, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal XML: %w", err)
	}
	content := make([]byte, 0, len(xml.Header)+len(doctype)+len(output)+1)
	content = append(content, xml.Header...)
	content = append(content, doctype...)
	content = append(content, output...)
	content = append(content, '\n')
	return content, nil
}

// WriteToFile marshals doc and writes it to filename.
func WriteToFile(doc XMEML, filename string) error {
	content, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, content, 0644); err != nil {
		return cuterr.Wrap(cuterr.IO, "failed to write output file", err)
	}
	return nil
}

// Parse reads a rendered document back.
func Parse(data []byte) (*XMEML, error) {
	var doc XMEML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return &doc, nil
}
