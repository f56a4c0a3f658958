package services

import "strings"

// nodeIDIndex is the position of the node identifier in "/article/<a>/<b>/<nid>"
// once the path is split on "/".
const nodeIDIndex = 3

// NodeID derives the backend node identifier from an article path.
func NodeID(path string) (string, error) {
	parts := strings.Split(path, "/")
	if len(parts) <= nodeIDIndex || parts[nodeIDIndex] == "" {
		return "", &PathError{Path: path, Segments: len(parts)}
	}
	return parts[nodeIDIndex], nil
}
