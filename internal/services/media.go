package services

import "regexp"

var (
	imageDataURIRe = regexp.MustCompile(`(?i)^data:image/(png|jpeg|jpg|webp);base64,(.+)$`)
	pdfDataURIRe   = regexp.MustCompile(`(?i)^data:application/pdf;base64,(.+)$`)
)

const maxImageBytes = 10 << 20 // 10MB decoded, approximated from base64 length

func validateImageDataURI(uri string) error {
	m := imageDataURIRe.FindStringSubmatch(uri)
	if m == nil {
		return ErrInvalidImage
	}
	if len(m[2])*3/4 > maxImageBytes {
		return ErrImageTooLarge
	}
	return nil
}

func validatePDFDataURI(uri string) error {
	if !pdfDataURIRe.MatchString(uri) {
		return ErrInvalidPDF
	}
	return nil
}
