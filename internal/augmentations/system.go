package augmentations

import "context"

// System defines the public contract for catalog domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, q Query) ([]Augmentation, error)
	Find(ctx context.Context, id int) (*Augmentation, error)
	Create(ctx context.Context, cmd CreateCommand) (*Augmentation, error)
	Update(ctx context.Context, id int, cmd CreateCommand) (*Augmentation, error)
	Patch(ctx context.Context, id int, ops []PatchOp) (*Augmentation, error)
	Delete(ctx context.Context, id int) error
	Import(ctx context.Context, cmds []CreateCommand) ([]Augmentation, error)
	Export(ctx context.Context, q Query) ([]byte, error)
}
