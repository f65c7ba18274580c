package chatbot

// Resource names the catalog entity an operation targets.
type Resource string

const (
	ResourceBrand     Resource = "brand"
	ResourceType      Resource = "type"
	ResourceHeadphone Resource = "headphone"
)

// Operation is a single translated CRUD request. The concrete type carries
// the payload shape its action needs; nothing else is representable.
type Operation interface {
	operation()
}

// CreateOp inserts one entity from a field payload.
type CreateOp struct {
	Resource Resource
	Data     map[string]any
}

// ReadOp fetches one entity by id, or lists all when ID is empty.
type ReadOp struct {
	Resource Resource
	ID       string
}

// UpdateOp overwrites fields of an existing entity.
type UpdateOp struct {
	Resource Resource
	ID       string
	Data     map[string]any
}

// DeleteOp removes one entity by id.
type DeleteOp struct {
	Resource Resource
	ID       string
}

// BulkCreateOp inserts several entities in one atomic batch.
type BulkCreateOp struct {
	Resource Resource
	Items    []map[string]any
}

func (CreateOp) operation()     {}
func (ReadOp) operation()       {}
func (UpdateOp) operation()     {}
func (DeleteOp) operation()     {}
func (BulkCreateOp) operation() {}
