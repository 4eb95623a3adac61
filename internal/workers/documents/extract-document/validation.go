// internal/workers/documents/extract-document/validation.go
package extractdocument

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"procurement-workers/internal/common/errors"
	"procurement-workers/internal/models"
)

const inputSchema = `{
	"type": "object",
	"required": ["text"],
	"properties": {
		"documentId": {"type": "string", "maxLength": 100},
		"text": {"type": "string"},
		"typeHint": {"type": "string"},
		"tables": {
			"type": "array",
			"items": {
				"type": "array",
				"items": {
					"type": "array",
					"items": {"type": "string"}
				}
			}
		}
	}
}`

var supportedHints = map[models.DocumentType]bool{
	models.DocTypePQForm:           true,
	models.DocTypeInvoice:          true,
	models.DocTypePurchaseOrder:    true,
	models.DocTypeDeliveryNote:     true,
	models.DocTypeImpairmentForm:   true,
	models.DocTypeVendorOnboarding: true,
}

func validateInput(input *Input, cfg *Config) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(inputSchema),
		gojsonschema.NewGoLoader(input),
	)
	if err != nil {
		return errors.NewDocumentPayloadInvalidError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return errors.NewDocumentPayloadInvalidError(strings.Join(details, "; "))
	}

	if input.TypeHint != "" && !supportedHints[models.DocumentType(input.TypeHint)] {
		return errors.NewUnsupportedDocumentTypeError(input.TypeHint)
	}

	if len(strings.TrimSpace(input.Text)) < cfg.MinTextLength {
		return errors.NewExtractionFailedError("document text is below the readable threshold")
	}

	return nil
}
