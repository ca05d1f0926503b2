package detector

import (
	"bytes"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// TesseractRecognizer implements TextRecognizer with a Tesseract client.
// A fresh client per call keeps the recognizer safe for concurrent use.
type TesseractRecognizer struct {
	language string
}

// NewTesseractRecognizer creates a Tesseract-backed recognizer for the
// given language (e.g. "eng").
func NewTesseractRecognizer(language string) *TesseractRecognizer {
	if language == "" {
		language = "eng"
	}
	return &TesseractRecognizer{language: language}
}

// Recognize runs word-level OCR and returns each word with the engine's
// confidence for it.
func (t *TesseractRecognizer) Recognize(img image.Image) ([]TokenConfidence, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return nil, err
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, err
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, err
	}

	tokens := make([]TokenConfidence, 0, len(boxes))
	for _, box := range boxes {
		tokens = append(tokens, TokenConfidence{
			Text:       box.Word,
			Confidence: box.Confidence,
		})
	}
	return tokens, nil
}
