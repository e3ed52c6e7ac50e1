package fsm

import "reflect"

// Invoke binds an arbitrary function as an Action.
//
// The returned Action calls fn only when the supplied arguments can be passed to
// it (matching arity, variadic tail included, and assignable types; nil is
// accepted for nillable parameters). Otherwise the call is skipped silently.
// Results returned by fn are discarded. A nil or non-function fn yields a nil
// Action.
//
// The Action stays non-nil even when it skips, so a Machine still writes
// MsgCallAction before handing it the arguments.
func Invoke(fn any) Action {
	if a, ok := fn.(Action); ok {
		return a
	}

	if a, ok := fn.(func(...any)); ok {
		return a
	}

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil
	}

	ft := v.Type()

	return func(args ...any) {
		in, ok := callArgs(ft, args)
		if ok {
			v.Call(in)
		}
	}
}

// callArgs converts args into call values for ft, reporting false when ft
// cannot be called with them.
func callArgs(ft reflect.Type, args []any) ([]reflect.Value, bool) {
	n := ft.NumIn()

	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, false
		}
	} else if len(args) != n {
		return nil, false
	}

	in := make([]reflect.Value, len(args))

	for i, arg := range args {
		var pt reflect.Type

		switch {
		case ft.IsVariadic() && i >= n-1:
			pt = ft.In(n - 1).Elem()
		default:
			pt = ft.In(i)
		}

		val, ok := argValue(pt, arg)
		if !ok {
			return nil, false
		}

		in[i] = val
	}

	return in, true
}

func argValue(pt reflect.Type, arg any) (reflect.Value, bool) {
	if arg == nil {
		switch pt.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(pt), true
		default:
			return reflect.Value{}, false
		}
	}

	val := reflect.ValueOf(arg)
	if !val.Type().AssignableTo(pt) {
		return reflect.Value{}, false
	}

	return val, true
}
