package models

// NodeResponse is the document served by the backend at /contentasjson/node/{id}.
// Required fields are pointers so a missing key can be told apart from an empty one.
type NodeResponse struct {
	Title *string   `json:"title"`
	Body  *NodeBody `json:"body"`
}

// NodeBody holds the language-keyed field values; "und" is the undefined-language bucket.
type NodeBody struct {
	Und []NodeBodyValue `json:"und"`
}

type NodeBodyValue struct {
	Value     *string `json:"value"`
	SafeValue string  `json:"safe_value,omitempty"`
	Format    string  `json:"format,omitempty"`
}

// Article is a node that passed schema validation.
type Article struct {
	NodeID string `json:"nid"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Format string `json:"format,omitempty"`
}
