package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// newSandbox returns a Lua state with only the base, table, string and
// math libraries, and without the functions that load code.
func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "module", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// installAPI adds the touchstone table and routes print to the logger.
func (ds *DataSource) installAPI() {
	L := ds.L

	logFn := L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		ds.log.Info("%s: %s", ds.name, strings.Join(parts, " "))
		return 0
	})

	mod := L.NewTable()
	L.SetField(mod, "log", logFn)
	L.SetField(mod, "auto_height", lua.LNumber(-1))
	L.SetGlobal("touchstone", mod)
	L.SetGlobal("print", logFn)
}
