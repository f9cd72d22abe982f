package reflection

import (
	"reflect"
	"sync"
)

// binder turns a pointer of the indexed type into a Reflectable.
type binder func(ptr any) Reflectable

var index = struct {
	sync.RWMutex
	binders map[reflect.Type]binder
}{binders: make(map[reflect.Type]binder)}

// Register makes values of type S navigable through reg even though *S does not
// implement Reflectable. Registering S again replaces the previous registry.
func Register[S any](reg *Registry[S]) {
	if reg == nil {
		panic("reflection.Register: registry is nil")
	}

	index.Lock()
	defer index.Unlock()

	index.binders[reflect.TypeFor[*S]()] = func(ptr any) Reflectable {
		return reg.Bind(ptr.(*S))
	}
}

// Unregister removes S from the type index.
func Unregister[S any]() {
	index.Lock()
	defer index.Unlock()

	delete(index.binders, reflect.TypeFor[*S]())
}

// Registered reports whether pointers of type t are known to the type index.
func Registered(t reflect.Type) bool {
	index.RLock()
	defer index.RUnlock()

	_, ok := index.binders[t]

	return ok
}

func lookupIndex(ptr any) (Reflectable, bool) {
	index.RLock()
	bind, ok := index.binders[reflect.TypeOf(ptr)]
	index.RUnlock()

	if !ok {
		return nil, false
	}

	return bind(ptr), true
}
