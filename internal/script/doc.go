// Package script provides recycler data sources written in Lua.
//
// Scripts run in a gopher-lua state with the base, table, string and math
// libraries only; code loading functions are removed and every call is
// bounded by a timeout. Scripts may log through touchstone.log or print.
//
// A minimal script:
//
//	local fruit = {"apple", "banana", "cherry"}
//	function rows(section) return #fruit end
//	function title(section, row) return fruit[row + 1] end
//	function select(section, row) touchstone.log("picked " .. fruit[row + 1]) end
package script
