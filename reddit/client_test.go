package reddit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectBodiesWalksNestedReplies(t *testing.T) {
	// Reddit sends "" instead of an object for leaf comments, so the
	// payload mixes both shapes.
	payload := `{
		"data": {
			"children": [
				{
					"data": {
						"body": "top level comment",
						"replies": {
							"data": {
								"children": [
									{"data": {"body": "nested reply", "replies": ""}}
								]
							}
						}
					}
				},
				{"data": {"body": "second comment", "replies": ""}},
				{"data": {"body": "", "replies": ""}}
			]
		}
	}`

	var l commentListing
	require.NoError(t, json.Unmarshal([]byte(payload), &l))

	got := collectBodies(l.Data.Children)
	assert.Equal(t, []string{"top level comment", "nested reply", "second comment"}, got)
}

func TestCollectBodiesEmpty(t *testing.T) {
	assert.Empty(t, collectBodies(nil))
}
