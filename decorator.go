package easyvalidate

import (
	"reflect"
)

///////////////////////////////////////////////////////////////////////////////
// Wrapping machinery
///////////////////////////////////////////////////////////////////////////////

var errType = reflect.TypeOf((*error)(nil)).Elem()

// argCheck validates the name-bound arguments of one call.
type argCheck func(bound map[string]any) error

// checkTarget verifies that fn can be wrapped against sig: it must be a
// non-variadic function whose parameter count matches the signature.
func checkTarget(fn any, sig *Signature) (reflect.Value, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return reflect.Value{}, constructionErr(ErrNotAFunc, "wrap target must be a function, not %s", typeName(fn))
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return reflect.Value{}, constructionErr(ErrVariadicFunc, "variadic arguments not supported")
	}
	if sig == nil {
		return reflect.Value{}, constructionErr(ErrNilSignature, "signature cannot be nil")
	}
	if ft.NumIn() != sig.Len() {
		return reflect.Value{}, constructionErr(ErrSignatureMismatch,
			"signature declares %d parameters but function takes %d", sig.Len(), ft.NumIn())
	}
	return fv, nil
}

// wrap builds a function with fn's exact dynamic type that runs check on
// the bound arguments before delegating. A failed check is returned through
// the function's trailing error result when it has one, and raised as a
// panic otherwise.
func wrap(fv reflect.Value, sig *Signature, check argCheck) any {
	ft := fv.Type()
	wrapped := reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		args := make([]any, len(in))
		for i := range in {
			args[i] = in[i].Interface()
		}
		if err := check(sig.Bind(args, nil)); err != nil {
			return failureResults(ft, err)
		}
		return fv.Call(in)
	})
	return wrapped.Interface()
}

func failureResults(ft reflect.Type, err error) []reflect.Value {
	n := ft.NumOut()
	if n == 0 || ft.Out(n-1) != errType {
		panic(err)
	}
	out := make([]reflect.Value, n)
	for i := 0; i < n-1; i++ {
		out[i] = reflect.Zero(ft.Out(i))
	}
	errOut := reflect.New(errType).Elem()
	errOut.Set(reflect.ValueOf(err))
	out[n-1] = errOut
	return out
}

// Must panics on a construction error. It keeps wrapper setup chains short:
//
//	f := Must(WrapRange(fn, sig, bounds)).(func(int) error)
func Must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}
