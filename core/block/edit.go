package block

// Editor operations. Every function returns a new slice and leaves its input
// untouched, so a document can be handed to the preview and save paths at the
// same time without aliasing.

// Direction is the way Move shifts a block.
type Direction int

const (
	Up Direction = iota
	Down
)

// Index returns the position of the block with id, or -1.
func Index(blocks []Block, id string) int {
	for i, b := range blocks {
		if b.BlockID() == id {
			return i
		}
	}
	return -1
}

// Find returns the block with id.
func Find(blocks []Block, id string) (Block, bool) {
	if i := Index(blocks, id); i >= 0 {
		return blocks[i], true
	}
	return nil, false
}

// Clone returns a copy of blocks whose list items are not shared with the
// original.
func Clone(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = WithID(b, b.BlockID())
	}
	return out
}

// Append adds b at the end.
func Append(blocks []Block, b Block) []Block {
	return append(Clone(blocks), b)
}

// Insert places b at index at, clamped to the valid range.
func Insert(blocks []Block, at int, b Block) []Block {
	if at < 0 {
		at = 0
	}
	if at > len(blocks) {
		at = len(blocks)
	}
	out := make([]Block, 0, len(blocks)+1)
	out = append(out, Clone(blocks[:at])...)
	out = append(out, b)
	return append(out, Clone(blocks[at:])...)
}

// Replace substitutes the block with id by b at the same position. The
// replacement keeps the original identifier.
func Replace(blocks []Block, id string, b Block) []Block {
	out := Clone(blocks)
	if i := Index(out, id); i >= 0 {
		out[i] = WithID(b, id)
	}
	return out
}

// Update applies fn to the block with id and stores its result in place.
func Update(blocks []Block, id string, fn func(Block) Block) []Block {
	b, ok := Find(blocks, id)
	if !ok {
		return Clone(blocks)
	}
	return Replace(blocks, id, fn(WithID(b, id)))
}

// Remove drops the block with id.
func Remove(blocks []Block, id string) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.BlockID() != id {
			out = append(out, WithID(b, b.BlockID()))
		}
	}
	return out
}

// Move swaps the block at index with its neighbour. Moves past either end
// leave the order unchanged.
func Move(blocks []Block, index int, dir Direction) []Block {
	out := Clone(blocks)
	target := index - 1
	if dir == Down {
		target = index + 1
	}
	if index < 0 || index >= len(out) || target < 0 || target >= len(out) {
		return out
	}
	out[index], out[target] = out[target], out[index]
	return out
}

// SetListItem sets item idx of the List with id. Out of range indexes and
// non-list blocks are ignored.
func SetListItem(blocks []Block, id string, idx int, value string) []Block {
	return updateList(blocks, id, func(items []string) []string {
		if idx >= 0 && idx < len(items) {
			items[idx] = value
		}
		return items
	})
}

// AddListItem appends a blank item to the List with id.
func AddListItem(blocks []Block, id string) []Block {
	return updateList(blocks, id, func(items []string) []string {
		return append(items, "")
	})
}

// RemoveListItem drops item idx. A list never ends up empty: removing the
// last item leaves a single blank one.
func RemoveListItem(blocks []Block, id string, idx int) []Block {
	return updateList(blocks, id, func(items []string) []string {
		if idx < 0 || idx >= len(items) {
			return items
		}
		next := append(items[:idx:idx], items[idx+1:]...)
		if len(next) == 0 {
			return []string{""}
		}
		return next
	})
}

func updateList(blocks []Block, id string, fn func([]string) []string) []Block {
	return Update(blocks, id, func(b Block) Block {
		list, ok := b.(List)
		if !ok {
			return b
		}
		list.Items = fn(cloneItems(list.Items))
		return list
	})
}
