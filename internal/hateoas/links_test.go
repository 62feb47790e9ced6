package hateoas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPost(t *testing.T) {
	tests := []struct {
		name  string
		id    uint
		owner bool
		want  []Link
	}{
		{
			name: "visitor sees only self",
			id:   1,
			want: []Link{{Rel: "self", Href: "/api/blog/1"}},
		},
		{
			name:  "owner sees update and delete",
			id:    12,
			owner: true,
			want: []Link{
				{Rel: "self", Href: "/api/blog/12"},
				{Rel: "update", Href: "/api/blog/12", Method: "PATCH"},
				{Rel: "delete", Href: "/api/blog/12", Method: "DELETE"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ForPost(tt.id, tt.owner))
		})
	}
}

func TestForCollection(t *testing.T) {
	assert.Equal(t, []Link{{Rel: "self", Href: "/api/blog"}}, ForCollection(false))
	assert.Equal(t, []Link{
		{Rel: "self", Href: "/api/blog"},
		{Rel: "add", Href: "/api/blog", Method: "POST"},
	}, ForCollection(true))
}

func TestLinksAreDeterministic(t *testing.T) {
	assert.Equal(t, ForPost(5, true), ForPost(5, true))
	assert.Equal(t, ForCollection(true), ForCollection(true))

	first := ForPost(5, false)
	first[0].Href = "mutated"
	assert.Equal(t, "/api/blog/5", ForPost(5, false)[0].Href)
}
