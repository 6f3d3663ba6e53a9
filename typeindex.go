package behave

import "github.com/TheBitDrifter/mask"

// MaxBehaviorTypes bounds the distinct behavior types one system can index.
// It is the width of the behavior presence mask, which depends on the mask build tags.
const MaxBehaviorTypes = int(mask.MaxBits)

// typeIndex is an insertion ordered set of behavior types; a type's position is its dense ID.
type typeIndex struct {
	keys        []TypeKey
	ids         map[TypeKey]int
	maxCapacity int
}

func newTypeIndex(capacity int) *typeIndex {
	return &typeIndex{
		ids:         make(map[TypeKey]int),
		maxCapacity: capacity,
	}
}

// GetID returns the dense ID of key, or UnknownID.
func (c *typeIndex) GetID(key TypeKey) int {
	if id, ok := c.ids[key]; ok {
		return id
	}
	return UnknownID
}

func (c *typeIndex) Key(id int) TypeKey {
	return c.keys[id]
}

func (c *typeIndex) Len() int {
	return len(c.keys)
}

// Assign gives key the next free ID. Keys receive an ID exactly once.
func (c *typeIndex) Assign(key TypeKey) (int, error) {
	if id := c.GetID(key); id != UnknownID {
		return UnknownID, IDAlreadySetError{Key: key, ID: id}
	}
	if len(c.keys) >= c.maxCapacity {
		return UnknownID, TypeCapacityError{Limit: c.maxCapacity}
	}

	id := len(c.keys)
	c.ids[key] = id
	c.keys = append(c.keys, key)

	return id, nil
}

// Resolve returns the ID of key, assigning one on first sighting.
func (c *typeIndex) Resolve(key TypeKey) (int, error) {
	if id := c.GetID(key); id != UnknownID {
		return id, nil
	}
	return c.Assign(key)
}
