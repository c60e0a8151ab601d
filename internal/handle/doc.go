// Package handle provides generation-checked token tables.
//
// A [Table] hands out opaque [Token] values in place of pointers so that
// identities can cross the C boundary without exposing Go memory. A token
// whose slot has been released, or reused by a later insert, no longer
// resolves: [Table.Get] reports it as absent instead of returning a stale
// value.
//
//	var t handle.Table[*thing]
//	tok := t.Insert(v)
//	if v, ok := t.Get(tok); ok { ... }
//	t.Remove(tok)
package handle
