package property

import "github.com/wippyai/uasset/guid"

const entityName = "EntityReference"

// isEntitySentinel reports whether a tag word with a zero low half and the
// given high half marks an entity reference.
func isEntitySentinel(high int32) bool {
	switch high {
	case 1, 2, 3, 4, 5, 10:
		return true
	}
	return false
}

// decodeEntity consumes the fixed entity payload: i32, id i32, GUID, i32,
// GUID. The trailing pair repeats the record and is dropped.
func decodeEntity(ctx *Context) ([]Value, error) {
	c := ctx.Cursor
	if _, err := c.ReadI32(); err != nil {
		return nil, err
	}
	id, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	g, err := c.ReadGUID()
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadI32(); err != nil {
		return nil, err
	}
	if _, err := c.ReadGUID(); err != nil {
		return nil, err
	}
	return []Value{
		Int(entityName+".Id", int64(id)),
		GUID(entityName+".Guid", g, guid.OrderB, false),
	}, nil
}
