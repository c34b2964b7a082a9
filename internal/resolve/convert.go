package resolve

import (
	"fmt"

	"github.com/connerohnesorge/dukdb-resolve/internal/storage"
	"github.com/connerohnesorge/dukdb-resolve/internal/types"
)

// Convert turns a cell into the Go representation of target: bool, int64,
// float64, string, *types.Struct or *types.ListAny, or nil for null.
// It expects target to come from Unify over a column containing value; any
// other pairing returns an *InternalError.
func Convert(value types.Value, target storage.LogicalType) (interface{}, error) {
	if value.IsNull() {
		return nil, nil
	}

	switch target.ID {
	case storage.TypeUnsupported:
		if value.Kind() == types.KindOther {
			return nil, nil
		}
	case storage.TypeBoolean:
		if value.Kind() == types.KindBoolean {
			return value.Bool(), nil
		}
	case storage.TypeBigInt:
		if value.Kind() == types.KindInteger {
			return value.Int(), nil
		}
	case storage.TypeDouble:
		switch value.Kind() {
		case types.KindFloat:
			return value.Float(), nil
		case types.KindInteger:
			// exact for |v| <= 2^53
			return float64(value.Int()), nil
		}
	case storage.TypeVarchar:
		if value.Kind() == types.KindText {
			return value.Str(), nil
		}
	case storage.TypeStruct:
		if value.Kind() == types.KindRecord {
			return convertRecord(value, target)
		}
	case storage.TypeList:
		if value.Kind() == types.KindList && target.Child != nil {
			return convertList(value, *target.Child)
		}
	}
	return nil, mismatch(value, target)
}

func convertRecord(value types.Value, target storage.LogicalType) (interface{}, error) {
	fields := value.Fields()
	if len(fields) != len(target.Children) {
		return nil, mismatch(value, target)
	}
	s := types.NewStructWithCapacity(len(fields))
	for i, f := range target.Children {
		if fields[i].Name != f.Name {
			return nil, mismatch(value, target)
		}
		converted, err := Convert(fields[i].Value, f.Type)
		if err != nil {
			return nil, err
		}
		s.Set(f.Name, converted)
	}
	return s, nil
}

func convertList(value types.Value, child storage.LogicalType) (interface{}, error) {
	items := value.Items()
	list := types.NewListAny(len(items))
	for _, item := range items {
		converted, err := Convert(item, child)
		if err != nil {
			return nil, err
		}
		list.Append(converted)
	}
	return list, nil
}

func mismatch(value types.Value, target storage.LogicalType) *InternalError {
	return &InternalError{
		Row:     -1,
		Message: fmt.Sprintf("cannot convert %s value %s to %s", value.Kind(), value, target),
	}
}
