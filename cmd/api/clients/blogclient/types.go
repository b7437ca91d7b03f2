package blogclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PostID is the upstream record identifier. The mock API serves ids as JSON
// strings but numeric ids are accepted too and normalised to their decimal text.
type PostID string

func (id *PostID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = PostID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("blogclient: id must be a string or number: %s", string(data))
	}
	*id = PostID(n.String())
	return nil
}

// RawPost is a blog record as stored by the upstream mock API.
type RawPost struct {
	ID          PostID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}
