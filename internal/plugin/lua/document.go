package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gapedit/internal/engine/document"
	"github.com/dshills/gapedit/internal/engine/notify"
	"github.com/dshills/gapedit/internal/logging"
)

// DocumentModule implements the doc API over an editable document.
type DocumentModule struct {
	doc  document.Editable
	log  *logging.Logger
	subs map[notify.ID]*notify.Subscription
}

// NewDocumentModule creates a doc module bound to d.
func NewDocumentModule(d document.Editable, log *logging.Logger) *DocumentModule {
	if log == nil {
		log = logging.Null()
	}
	return &DocumentModule{
		doc:  d,
		log:  log.WithComponent("lua.doc"),
		subs: make(map[notify.ID]*notify.Subscription),
	}
}

// Name returns the module name.
func (m *DocumentModule) Name() string {
	return "doc"
}

// Register registers the module into the Lua state.
func (m *DocumentModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "len", L.NewFunction(m.docLen))
	L.SetField(mod, "get", L.NewFunction(m.get))
	L.SetField(mod, "insert", L.NewFunction(m.insert))
	L.SetField(mod, "delete", L.NewFunction(m.delete))
	L.SetField(mod, "text", L.NewFunction(m.text))
	L.SetField(mod, "subscribe", L.NewFunction(m.subscribe))
	L.SetField(mod, "unsubscribe", L.NewFunction(m.unsubscribe))

	L.SetGlobal(m.Name(), mod)
	return nil
}

// Close removes every observer registered from Lua.
func (m *DocumentModule) Close() {
	for id, sub := range m.subs {
		sub.Unsubscribe()
		delete(m.subs, id)
	}
}

// len() -> number
func (m *DocumentModule) docLen(L *lua.LState) int {
	L.Push(lua.LNumber(m.doc.Len()))
	return 1
}

// get(i) -> number
// Returns the byte at offset i.
func (m *DocumentModule) get(L *lua.LState) int {
	i := L.CheckInt(1)

	b, err := m.doc.Get(i)
	if err != nil {
		L.RaiseError("get: %v", err)
		return 0
	}

	L.Push(lua.LNumber(b))
	return 1
}

// insert(i, s) -> end_offset
// Inserts every byte of s starting at offset i.
func (m *DocumentModule) insert(L *lua.LState) int {
	offset := L.CheckInt(1)
	text := L.CheckString(2)

	// Check up front so a failed call inserts nothing.
	if offset < 0 || offset > m.doc.Len() {
		L.RaiseError("insert: %v: offset %d, length %d", document.ErrIndexOutOfBounds, offset, m.doc.Len())
		return 0
	}

	for k := 0; k < len(text); k++ {
		if err := m.doc.Insert(offset+k, text[k]); err != nil {
			L.RaiseError("insert: %v", err)
			return 0
		}
	}

	L.Push(lua.LNumber(offset + len(text)))
	return 1
}

// delete(i)
// Removes the byte at offset i. Deleting from an empty document does nothing.
func (m *DocumentModule) delete(L *lua.LState) int {
	i := L.CheckInt(1)

	if err := m.doc.Delete(i); err != nil {
		L.RaiseError("delete: %v", err)
	}
	return 0
}

// text() -> string
func (m *DocumentModule) text(L *lua.LState) int {
	var sb strings.Builder
	n := m.doc.Len()
	sb.Grow(n)
	for i := 0; i < n; i++ {
		b, err := m.doc.Get(i)
		if err != nil {
			L.RaiseError("text: %v", err)
			return 0
		}
		sb.WriteByte(b)
	}

	L.Push(lua.LString(sb.String()))
	return 1
}

// subscribe(fn) -> id
// Calls fn with no arguments after every change to the document.
func (m *DocumentModule) subscribe(L *lua.LState) int {
	fn := L.CheckFunction(1)

	sub := m.doc.Subscribe(func() {
		err := L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		})
		if err != nil {
			m.log.Warn("observer failed: %v", err)
		}
	})
	m.subs[sub.ID()] = sub

	L.Push(lua.LString(sub.ID()))
	return 1
}

// unsubscribe(id) -> bool
// Only subscriptions made through this module can be removed.
func (m *DocumentModule) unsubscribe(L *lua.LState) int {
	id := notify.ID(L.CheckString(1))

	sub, ok := m.subs[id]
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	delete(m.subs, id)
	L.Push(lua.LBool(sub.Unsubscribe()))
	return 1
}
