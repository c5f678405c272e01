// Package normalize turns values decoded from the ledger into values that
// encoding/json can emit without losing meaning.
//
// Wide integers become int64 when a float64 can hold them exactly and their
// decimal string otherwise. Addresses use their EIP-55 checksummed form.
// Sequences and records are walked recursively and keep their order; map keys
// of any type become strings. Values JSON can't carry (NaN, channels,
// functions) become a string or null. Value is idempotent: Value(Value(x))
// produces the same JSON as Value(x).
package normalize

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MaxSafeInteger is the largest integer a float64 represents exactly (2^53-1).
const MaxSafeInteger int64 = 1<<53 - 1

var (
	maxSafeBig = big.NewInt(MaxSafeInteger)
	minSafeBig = big.NewInt(-MaxSafeInteger)
)

// Record is a JSON object that marshals its keys in insertion order.
type Record = orderedmap.OrderedMap[string, any]

func NewRecord() *Record {
	return orderedmap.New[string, any]()
}

// Value normalizes v. It never panics.
func Value(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *big.Int:
		if x == nil {
			return nil
		}
		return bigValue(x)
	case big.Int:
		return bigValue(&x)
	case int:
		return intValue(int64(x))
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return intValue(x)
	case uint:
		return uintValue(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return uintValue(x)
	case float32:
		return floatValue(float64(x), x)
	case float64:
		return floatValue(x, x)
	case common.Address:
		return x.Hex()
	case string, bool, common.Hash:
		return x
	case []byte:
		return hexutil.Encode(x)
	case *Record:
		if x == nil {
			return nil
		}
		return recordValue(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Value(e)
		}
		return out
	}
	return reflectValue(reflect.ValueOf(v))
}

// Fields builds a Record from alternating key/value pairs, normalizing each
// value. A trailing key without a value is dropped.
func Fields(kv ...any) *Record {
	r := NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		r.Set(key, Value(kv[i+1]))
	}
	return r
}

func bigValue(b *big.Int) any {
	if b.Cmp(maxSafeBig) > 0 || b.Cmp(minSafeBig) < 0 {
		return b.String()
	}
	return b.Int64()
}

func intValue(i int64) any {
	if i > MaxSafeInteger || i < -MaxSafeInteger {
		return strconv.FormatInt(i, 10)
	}
	return i
}

func uintValue(u uint64) any {
	if u > uint64(MaxSafeInteger) {
		return strconv.FormatUint(u, 10)
	}
	return int64(u)
}

// floatValue keeps finite floats as they are and spells out NaN and the
// infinities, which JSON numbers can't express.
func floatValue(f float64, orig any) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return orig
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.Interface {
		if k.IsNil() {
			return "null"
		}
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.String:
		return k.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(k.Uint(), 10)
	}
	switch x := k.Interface().(type) {
	case common.Address:
		return x.Hex()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(k.Interface())
}

func recordValue(r *Record) *Record {
	out := NewRecord()
	for p := r.Oldest(); p != nil; p = p.Next() {
		out.Set(p.Key, Value(p.Value))
	}
	return out
}

func reflectValue(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Value(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return []any{}
		}
		fallthrough
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hexutil.Encode(b)
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Value(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		byKey := map[string]reflect.Value{}
		iter := rv.MapRange()
		for iter.Next() {
			k := mapKey(iter.Key())
			keys = append(keys, k)
			byKey[k] = iter.Value()
		}
		sort.Strings(keys)
		out := NewRecord()
		for _, k := range keys {
			out.Set(k, Value(byKey[k].Interface()))
		}
		return out
	case reflect.Struct:
		out := NewRecord()
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := fieldName(f)
			if name == "" {
				continue
			}
			out.Set(name, Value(rv.Field(i).Interface()))
		}
		return out
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intValue(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintValue(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return floatValue(rv.Float(), rv.Float())
	case reflect.Complex64, reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 128)
	}
	return nil
}

// fieldName mirrors encoding/json: the json tag wins, "-" skips the field,
// and untagged fields are lower-camel cased the way abi tuple fields are
// named in Solidity.
func fieldName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("json"); ok {
		name := tag
		for i := 0; i < len(tag); i++ {
			if tag[i] == ',' {
				name = tag[:i]
				break
			}
		}
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	r, size := utf8.DecodeRuneInString(f.Name)
	return string(unicode.ToLower(r)) + f.Name[size:]
}
