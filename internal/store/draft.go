package store

import (
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Draft rows created in the admin console carry a temporary ID until the
// first save adopts a backend-issued one. The textual markers are the wire
// convention the console clients already use; everything else in the code
// goes through the predicates below instead of looking at the string.
const (
	productDraftPrefix  = "p_temp_"
	categoryDraftPrefix = "c_temp_"
	imageDraftPrefix    = "img_temp_"
)

var idNode *snowflake.Node

func init() {
	var err error
	idNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// NextID issues a new backend ID as a base36 snowflake string.
func NextID() string {
	return strings.ToLower(idNode.Generate().Base36())
}

// NewProductDraftID returns a temporary product ID for an unsaved draft.
func NewProductDraftID() string {
	return productDraftPrefix + NextID()
}

// NewCategoryDraftID returns a temporary category ID for an unsaved draft.
func NewCategoryDraftID() string {
	return categoryDraftPrefix + NextID()
}

// NewImageDraftID returns a temporary image ID for an unsaved gallery entry.
func NewImageDraftID() string {
	return imageDraftPrefix + NextID()
}

// IsDraftID reports whether id is a temporary identifier of any kind,
// meaning the row has never been persisted.
func IsDraftID(id string) bool {
	return strings.HasPrefix(id, productDraftPrefix) ||
		strings.HasPrefix(id, categoryDraftPrefix) ||
		strings.HasPrefix(id, imageDraftPrefix)
}
