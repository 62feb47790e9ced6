// Package hateoas builds the hypermedia links attached to blog resources.
// Links depend only on their arguments.
package hateoas

import (
	"net/http"
	"strconv"
)

// Relations used in link sets.
const (
	RelSelf   = "self"
	RelUpdate = "update"
	RelDelete = "delete"
	RelAdd    = "add"
)

// CollectionPath is the path of the blog post collection.
const CollectionPath = "/api/blog"

// Link is a single hypermedia link.
type Link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method,omitempty"`
}

// PostPath returns the path of a single post.
func PostPath(id uint) string {
	return CollectionPath + "/" + strconv.FormatUint(uint64(id), 10)
}

// ForPost returns the links of a single post: self, plus update and delete
// when the viewer owns it.
func ForPost(id uint, viewerIsOwner bool) []Link {
	href := PostPath(id)
	links := []Link{{Rel: RelSelf, Href: href}}
	if viewerIsOwner {
		links = append(links,
			Link{Rel: RelUpdate, Href: href, Method: http.MethodPatch},
			Link{Rel: RelDelete, Href: href, Method: http.MethodDelete},
		)
	}
	return links
}

// ForCollection returns the links of the post collection: self, plus add
// for authenticated viewers.
func ForCollection(authenticated bool) []Link {
	links := []Link{{Rel: RelSelf, Href: CollectionPath}}
	if authenticated {
		links = append(links, Link{Rel: RelAdd, Href: CollectionPath, Method: http.MethodPost})
	}
	return links
}
