package models

// ContentView is the state bound to the article template.
// HideContent flips to true once a node has been loaded into the view; the
// template uses it as its "content ready" gate.
type ContentView struct {
	NodeID      string `json:"nid,omitempty"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	HideContent bool   `json:"hideContent"`
}
