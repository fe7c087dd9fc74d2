package objexpr

import (
	"github.com/kr/pretty"
)

// Dump renders a tree's structure for debugging and log output.
func Dump(n Node) string {
	return pretty.Sprint(n)
}
