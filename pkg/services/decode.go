package services

import (
	"bytes"
	"encoding/json"
	"errors"

	"esade-news/pkg/models"
)

var errEmptyDocument = errors.New("empty document")

// DecodeNode validates a backend node document and returns its article.
// The document may also arrive as a JSON string holding the encoded object,
// which some backends emit when the content type is not application/json.
func DecodeNode(nid string, data []byte) (*models.Article, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &DecodeError{Field: "document", Err: errEmptyDocument}
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, &DecodeError{Field: "document", Err: err}
		}
		data = bytes.TrimSpace([]byte(inner))
		if len(data) == 0 {
			return nil, &DecodeError{Field: "document", Err: errEmptyDocument}
		}
	}

	var node models.NodeResponse
	if err := json.Unmarshal(data, &node); err != nil {
		field := "document"
		// An empty Drupal field is serialised as [] rather than an object.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			field = typeErr.Field
		}
		return nil, &DecodeError{Field: field, Err: err}
	}

	switch {
	case node.Title == nil:
		return nil, &DecodeError{Field: "title"}
	case node.Body == nil:
		return nil, &DecodeError{Field: "body"}
	case len(node.Body.Und) == 0:
		return nil, &DecodeError{Field: "body.und"}
	case node.Body.Und[0].Value == nil:
		return nil, &DecodeError{Field: "body.und[0].value"}
	}

	return &models.Article{
		NodeID: nid,
		Title:  *node.Title,
		Body:   *node.Body.Und[0].Value,
		Format: node.Body.Und[0].Format,
	}, nil
}
