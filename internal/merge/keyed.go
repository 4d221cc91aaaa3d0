package merge

import "github.com/beevik/etree"

// keyedChildren is a mapping view over a subset of an element's children.
// Building the view collapses duplicate keys onto the first occurrence, so
// every key maps to exactly one child for as long as the view is used.
type keyedChildren[K comparable] struct {
	parent *etree.Element
	keyOf  func(*etree.Element) K
	byKey  map[K]*etree.Element
}

func newKeyedChildren[K comparable](parent *etree.Element, children []*etree.Element, keyOf func(*etree.Element) K) *keyedChildren[K] {
	v := &keyedChildren[K]{
		parent: parent,
		keyOf:  keyOf,
		byKey:  make(map[K]*etree.Element, len(children)),
	}
	for _, el := range children {
		k := keyOf(el)
		if _, dup := v.byKey[k]; dup {
			parent.RemoveChild(el)
			continue
		}
		v.byKey[k] = el
	}
	return v
}

func (v *keyedChildren[K]) get(k K) (*etree.Element, bool) {
	el, ok := v.byKey[k]
	return el, ok
}

// upsert puts el in place of the child sharing its key, keeping the
// child's position, or appends el when the key is new. It reports whether
// an existing child was replaced.
func (v *keyedChildren[K]) upsert(el *etree.Element) bool {
	k := v.keyOf(el)
	if cur, ok := v.byKey[k]; ok {
		idx := cur.Index()
		v.parent.RemoveChildAt(idx)
		v.parent.InsertChildAt(idx, el)
		v.byKey[k] = el
		return true
	}
	v.parent.AddChild(el)
	v.byKey[k] = el
	return false
}

// retain removes every child whose key is rejected by keep.
func (v *keyedChildren[K]) retain(keep func(K) bool) {
	for k, el := range v.byKey {
		if !keep(k) {
			v.parent.RemoveChild(el)
			delete(v.byKey, k)
		}
	}
}
