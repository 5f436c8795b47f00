// Package lua runs user scripts against a document.
//
// A State wraps a gopher-lua runtime with only the base, table, string
// and math libraries open and with dofile, loadfile, load, loadstring,
// require and module removed. Scripts run synchronously on the calling
// goroutine, bounded by an execution timeout.
//
// DocumentModule exposes a document.Editable as the global table doc:
//
//	doc.len()            -> number of bytes
//	doc.get(i)           -> byte at offset i
//	doc.insert(i, s)     -> offset after the inserted text
//	doc.delete(i)        removes the byte at offset i
//	doc.text()           -> the whole document as a string
//	doc.subscribe(fn)    -> subscription id
//	doc.unsubscribe(id)  -> true if the subscription existed
//
// Offsets are 0-based. Go errors are raised as Lua errors. Errors raised
// by Lua observers are logged and never reach the editing code.
//
//	state, err := lua.NewState()
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.Register(lua.NewDocumentModule(doc, log)); err != nil {
//	    return err
//	}
//	err = state.DoString(`doc.insert(doc.len(), "!")`)
package lua
